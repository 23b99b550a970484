package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/m3rciful/moviebot/internal/app"
	"github.com/m3rciful/moviebot/internal/config"
	"github.com/m3rciful/moviebot/internal/logger"
	"github.com/m3rciful/moviebot/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("moviebot: %v", err)
	}
}

func run() error {
	// Missing .env is fine; containers inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return telegram.RunTelegram(ctx, application.TelegramRunOptions())
}
