// Package config loads runtime configuration for the portal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-s string   token storage driver
//	-d string   token storage DSN
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "base_url": "https://portal.example.org/api",
//	  "request_timeout": "15s",
//	  "storage_driver": "redis",
//	  "storage_dsn": "redis://127.0.0.1:6379/0",
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
//
// Note: This package does not read environment variables directly.
package config
