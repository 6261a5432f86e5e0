package config

import (
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig         = "config"
	FlagEnvFile        = "env-file"
	FlagBackendURL     = "backend-url"
	FlagRequestTimeout = "timeout"
	FlagDataDir        = "data-dir"
	FlagStorage        = "storage"
	FlagWriteMode      = "write-mode"
	FlagLogFormat      = "log-format"
	FlagLogLevel       = "log-level"
	FlagAdminUsername  = "admin-user"
	FlagAdminPassword  = "admin-password"
)

// RegisterFlags adds the configuration flags to fs. Their defaults are the
// built-in defaults; only flags set on the command line override other
// sources.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.String(FlagEnvFile, ".env", "dotenv file with "+EnvPrefix+"* variables")
	fs.StringP(FlagBackendURL, "a", d.BackendURL, "backend REST API root")
	fs.Duration(FlagRequestTimeout, d.RequestTimeout, "per-request timeout (0 = none)")
	fs.String(FlagDataDir, d.DataDir, "directory for local data")
	fs.String(FlagStorage, d.StorageBackend, "local storage backend: sqlite or file")
	fs.String(FlagWriteMode, d.WriteMode, "create behaviour on backend failure: strict or optimistic")
	fs.String(FlagLogFormat, d.LogFormat, "log format: text, json or zap")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
	fs.String(FlagAdminUsername, d.AdminUsername, "admin username")
	fs.String(FlagAdminPassword, d.AdminPassword, "admin password")
}

// parseFlags copies every explicitly set flag into cfg.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	str := func(name string, dst *string) {
		if err != nil || !fs.Changed(name) {
			return
		}
		*dst, err = fs.GetString(name)
	}

	str(FlagBackendURL, &cfg.BackendURL)
	str(FlagDataDir, &cfg.DataDir)
	str(FlagStorage, &cfg.StorageBackend)
	str(FlagWriteMode, &cfg.WriteMode)
	str(FlagLogFormat, &cfg.LogFormat)
	str(FlagLogLevel, &cfg.LogLevel)
	str(FlagAdminUsername, &cfg.AdminUsername)
	str(FlagAdminPassword, &cfg.AdminPassword)
	if err != nil {
		return err
	}

	if fs.Changed(FlagRequestTimeout) {
		cfg.RequestTimeout, err = fs.GetDuration(FlagRequestTimeout)
	}
	return err
}
