package config

import (
	"encoding/json"
	"os"

	"github.com/uni-jay/ican-portal/internal/flagx"
	"github.com/uni-jay/ican-portal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The request
// timeout may be given as a string like "15s" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StorageDriver  string         `json:"storage_driver"`
	StorageDSN     string         `json:"storage_dsn"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
}

// parseJson overlays Config with the non-empty values of the JSON file named
// by -c or -config. Without such a flag it does nothing. It panics on read
// or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.BaseURL, jc.BaseURL)
	overlay(&cfg.StorageDriver, jc.StorageDriver)
	overlay(&cfg.StorageDSN, jc.StorageDSN)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
