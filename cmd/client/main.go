package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/uni-jay/ican-portal/internal/buildinfo"
	"github.com/uni-jay/ican-portal/internal/client/cli"
	"github.com/uni-jay/ican-portal/internal/client/config"
	"github.com/uni-jay/ican-portal/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
