package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig          = "config"
	flagAddr            = "addr"
	flagBasePath        = "base-path"
	flagSeed            = "seed"
	flagRequestLog      = "request-log"
	flagShutdownTimeout = "shutdown-timeout"
	flagLogFormat       = "log-format"
	flagLogLevel        = "log-level"
)

func registerFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "JSON config file")
	fs.StringP(flagAddr, "a", d.Addr, "address and port to listen on")
	fs.String(flagBasePath, d.BasePath, "prefix for the REST routes")
	fs.Bool(flagSeed, false, "load the sample catalog on start")
	fs.Bool(flagRequestLog, false, "log every request")
	fs.Duration(flagShutdownTimeout, d.ShutdownTimeout, "grace period for in-flight requests")
	fs.String(flagLogFormat, d.LogFormat, "log format: text, json or zap")
	fs.String(flagLogLevel, d.LogLevel, "log level")
}

// parseFlags copies only the flags that were set, so they win over JSON
// without defaults clobbering it.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case flagAddr:
			cfg.Addr, err = fs.GetString(f.Name)
		case flagBasePath:
			cfg.BasePath, err = fs.GetString(f.Name)
		case flagSeed:
			cfg.Seed, err = fs.GetBool(f.Name)
		case flagRequestLog:
			cfg.RequestLog, err = fs.GetBool(f.Name)
		case flagShutdownTimeout:
			cfg.ShutdownTimeout, err = fs.GetDuration(f.Name)
		case flagLogFormat:
			cfg.LogFormat, err = fs.GetString(f.Name)
		case flagLogLevel:
			cfg.LogLevel, err = fs.GetString(f.Name)
		}
	})
	return err
}
