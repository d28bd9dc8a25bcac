package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/app"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/cli"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/config"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(cfg); err != nil {
		if errors.Is(err, cli.ErrLocked) {
			log.Fatalf("ManagerX is locked: %v", err)
		}
		log.Fatalf("%v", err)
	}
}

func run(cfg *config.Config) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	a, err := app.New(ctx, cfg, logger, app.Options{})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()

	a.Init(ctx)
	return cli.New(a, os.Stdin, os.Stdout).Run(ctx)
}
