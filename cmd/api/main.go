package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IlyasAtabaev731/retail-ledger/internal/api"
	"github.com/IlyasAtabaev731/retail-ledger/internal/config"
	"github.com/IlyasAtabaev731/retail-ledger/internal/events"
	"github.com/IlyasAtabaev731/retail-ledger/internal/events/kafka"
	"github.com/IlyasAtabaev731/retail-ledger/internal/ledger"
	"github.com/IlyasAtabaev731/retail-ledger/internal/lib/password"
	"github.com/IlyasAtabaev731/retail-ledger/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting application",
		slog.String("env", cfg.Env),
		slog.String("host", cfg.ApiHost),
		slog.Int("port", cfg.ApiPort),
	)

	publishers := events.Fanout{}

	if cfg.Postgres.Enabled {
		journal, err := postgres.New(cfg.Postgres.DSN())
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := journal.Stop(); err != nil {
				log.Error("Failed to close database", "error", err)
			}
		}()
		publishers = append(publishers, journal)
	}

	if cfg.Kafka.Enabled {
		producer := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error("Failed to close kafka writer", "error", err)
			}
		}()
		publishers = append(publishers, producer)
	}

	bank := ledger.New(log, cfg.Ledger, password.NewBcrypt(cfg.Ledger.BcryptCost), publishers)

	apiServer := api.New(cfg, log, bank)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		apiServer.MustStart()
	}()

	<-sigChan
	log.Info("Got signal to shutdown server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(ctx); err != nil {
		log.Error("Stopping server error", "error", err)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}
