package config

import (
	"flag"
	"os"
	"time"

	"github.com/uni-jay/ican-portal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the portal backend
//	-t int      request timeout in seconds
//	-s string   storage driver: sqlite, redis or memory
//	-d string   storage DSN (SQLite path or Redis URL)
//	-l string   log level
//
// Only these flags are parsed; the rest of os.Args is left to other layers.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the portal backend")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "token storage driver (sqlite, redis, memory)")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "token storage DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
