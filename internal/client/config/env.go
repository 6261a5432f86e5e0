package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "STOREFRONT_"

// parseEnv overlays values from the process environment and, with lower
// priority, from the dotenv file at envFile. A missing file is ignored.
func parseEnv(cfg *Config, envFile string, lookupEnv func(string) (string, bool)) error {
	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read env file %s: %w", envFile, err)
		}
	}

	get := func(name string) (string, bool) {
		key := EnvPrefix + name
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	for name, dst := range map[string]*string{
		"BACKEND_URL":    &cfg.BackendURL,
		"DATA_DIR":       &cfg.DataDir,
		"STORAGE":        &cfg.StorageBackend,
		"WRITE_MODE":     &cfg.WriteMode,
		"LOG_FORMAT":     &cfg.LogFormat,
		"LOG_LEVEL":      &cfg.LogLevel,
		"ADMIN_USERNAME": &cfg.AdminUsername,
		"ADMIN_PASSWORD": &cfg.AdminPassword,
	} {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	if v, ok := get("REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREQUEST_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
