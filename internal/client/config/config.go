package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

// Config holds runtime settings for the storefront CLI.
type Config struct {
	// BackendURL is the REST API root, e.g. http://127.0.0.1:8080/api.
	BackendURL string
	// RequestTimeout bounds each backend request; zero means no limit.
	RequestTimeout time.Duration

	DataDir        string
	StorageBackend string
	WriteMode      string

	LogFormat string
	LogLevel  string

	AdminUsername string
	AdminPassword string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 0
	c.DataDir = ".diamondstore"
	c.StorageBackend = StorageSQLite
	c.WriteMode = "strict"
	c.LogFormat = "text"
	c.LogLevel = "warn"
	c.AdminUsername = "admin"
	c.AdminPassword = "5566"
}

// Validate checks values that would otherwise fail much later.
func (c *Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.BackendURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("backend url %q must be an http(s) URL", c.BackendURL))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request timeout must not be negative"))
	}
	if c.StorageBackend != StorageSQLite && c.StorageBackend != StorageFile {
		errs = append(errs, fmt.Errorf("storage %q must be %q or %q", c.StorageBackend, StorageSQLite, StorageFile))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data dir is required"))
	}
	if c.AdminUsername == "" || c.AdminPassword == "" {
		errs = append(errs, errors.New("admin credentials must not be empty"))
	}
	return errors.Join(errs...)
}

// Load builds a Config from defaults, then the JSON file named by --config,
// then the environment (including the --env-file dotenv file), then flags
// that were set explicitly. Later sources win.
func Load(fs *pflag.FlagSet, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path, _ := fs.GetString(FlagConfig); path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, err
		}
	}

	envFile, _ := fs.GetString(FlagEnvFile)
	if err := parseEnv(cfg, envFile, lookupEnv); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, fs); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
