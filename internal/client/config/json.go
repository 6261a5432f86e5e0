package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/diamondstore/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// stay nil and leave the current value alone. Durations accept "3s" or
// integer nanoseconds.
type JsonConfig struct {
	BackendURL     *string         `json:"backend_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DataDir        *string         `json:"data_dir"`
	StorageBackend *string         `json:"storage"`
	WriteMode      *string         `json:"write_mode"`
	LogFormat      *string         `json:"log_format"`
	LogLevel       *string         `json:"log_level"`
	AdminUsername  *string         `json:"admin_username"`
	AdminPassword  *string         `json:"admin_password"`
}

func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.BackendURL, jc.BackendURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.StorageBackend, jc.StorageBackend)
	setString(&cfg.WriteMode, jc.WriteMode)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.AdminUsername, jc.AdminUsername)
	setString(&cfg.AdminPassword, jc.AdminPassword)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
