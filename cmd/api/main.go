package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/app"
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("trust service: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}

	return application.Run(ctx)
}
