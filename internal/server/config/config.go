// Package config handles configuration for the stub backend host,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Config holds runtime settings for the stub backend.
//
// Fields:
//   - Addr: listen address for the HTTP endpoint.
//   - BasePath: prefix the REST routes are mounted under.
//   - Seed: load the sample catalog on start.
//   - RequestLog: log every request.
//   - ShutdownTimeout: how long in-flight requests get on stop.
//   - LogFormat / LogLevel: see logging.New.
type Config struct {
	Addr            string
	BasePath        string
	Seed            bool
	RequestLog      bool
	ShutdownTimeout time.Duration
	LogFormat       string
	LogLevel        string
}

// LoadDefaults matches the storefront client's default backend URL.
func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:8080"
	c.BasePath = "/api"
	c.ShutdownTimeout = 5 * time.Second
	c.LogFormat = "json"
	c.LogLevel = "info"
}

func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("listen address is required"))
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		errs = append(errs, fmt.Errorf("base path %q must start with /", c.BasePath))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	return errors.Join(errs...)
}

// Load builds a Config by applying defaults, then the JSON file named by
// -c/--config, then the remaining flags in args.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("stubbackend", pflag.ContinueOnError)
	registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.LoadDefaults()

	if path, _ := fs.GetString(flagConfig); path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
