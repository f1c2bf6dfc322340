package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/uni-jay/ican-portal/internal/buildinfo"
	"github.com/uni-jay/ican-portal/internal/devserver"
	"github.com/uni-jay/ican-portal/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	var cfg devserver.Config
	cfg.LoadDefaults()

	var jwtKey string
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&jwtKey, "jwt-key", "", "HS256 signing key for access tokens")
	flag.DurationVar(&cfg.AccessTTL, "access-ttl", cfg.AccessTTL, "access token lifetime")
	flag.BoolVar(&cfg.Dev, "dev", false, "seed a demo member and echo reset codes")
	flag.Parse()
	cfg.JWTKey = []byte(jwtKey)

	newZap := zap.NewProduction
	if cfg.Dev {
		newZap = zap.NewDevelopment
	}
	zl, err := newZap()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	logger := logging.NewZapLogger(zl)
	defer func() { _ = logger.Sync() }()

	srv, err := devserver.New(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "shutdown failed", "error", err)
		}
	}()

	logger.Info(ctx, "devserver listening", "addr", cfg.Addr, "dev", cfg.Dev)
	if err := srv.Listen(); err != nil {
		log.Fatalf("%v", err)
	}
}
