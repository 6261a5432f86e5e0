package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/diamondstore/internal/timex"
)

// JsonConfig is the on-disk shape. Absent keys leave the current value.
type JsonConfig struct {
	Addr            *string         `json:"addr"`
	BasePath        *string         `json:"base_path"`
	Seed            *bool           `json:"seed"`
	RequestLog      *bool           `json:"request_log"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
	LogFormat       *string         `json:"log_format"`
	LogLevel        *string         `json:"log_level"`
}

func parseJSON(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var c JsonConfig
	if err := json.Unmarshal(b, &c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.Addr, c.Addr)
	setIf(&cfg.BasePath, c.BasePath)
	setIf(&cfg.Seed, c.Seed)
	setIf(&cfg.RequestLog, c.RequestLog)
	setIf(&cfg.LogFormat, c.LogFormat)
	setIf(&cfg.LogLevel, c.LogLevel)
	if c.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
