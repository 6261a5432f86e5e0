// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / --config.
//  3. Environment variables prefixed STOREFRONT_, falling back to a dotenv
//     file (--env-file, default ".env") for variables not set in the
//     process environment.
//  4. Command-line flags that were set explicitly.
//
// # JSON schema
//
// Durations can be strings like "3s" or integer nanoseconds:
//
//	{
//	  "backend_url": "http://127.0.0.1:8080/api",
//	  "request_timeout": "5s",
//	  "data_dir": ".diamondstore",
//	  "storage": "sqlite",
//	  "write_mode": "strict",
//	  "log_format": "text",
//	  "log_level": "warn",
//	  "admin_username": "admin",
//	  "admin_password": "5566"
//	}
//
// # Environment
//
//	STOREFRONT_BACKEND_URL, STOREFRONT_REQUEST_TIMEOUT, STOREFRONT_DATA_DIR,
//	STOREFRONT_STORAGE, STOREFRONT_WRITE_MODE, STOREFRONT_LOG_FORMAT,
//	STOREFRONT_LOG_LEVEL, STOREFRONT_ADMIN_USERNAME, STOREFRONT_ADMIN_PASSWORD
package config
