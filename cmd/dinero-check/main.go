package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"dineroCheck/internal/config"
	transport "dineroCheck/internal/modules/dinero/interface"
	"dineroCheck/internal/platform/broker"
	"dineroCheck/internal/shared/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Variables already exported in the shell win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}

	settings, err := config.LoadSettings(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error while verifying Dinero connection: %v\n", err)
		return 1
	}

	runID := uuid.NewString()
	logger := logging.ForRun(logging.New(os.Stderr, logging.Config{
		Level:  settings.Logging.Level,
		Format: settings.Logging.Format,
	}), runID)
	slog.SetDefault(logger)
	slog.Debug("settings resolved",
		slog.String("tokenUrl", settings.Endpoints.TokenURL),
		slog.String("apiBaseUrl", settings.Endpoints.APIBaseURL),
		slog.Duration("timeout", settings.Endpoints.Timeout),
		slog.Any("kafkaBrokers", settings.Kafka.Brokers))

	publisher := broker.NewRunPublisher(settings.Kafka.Brokers, settings.Kafka.Topic)
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Warn("publisher close failed", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := transport.NewApp(transport.Options{
		Getenv:    os.Getenv,
		Settings:  settings,
		Publisher: publisher,
		RunID:     runID,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	})
	return app.Run(ctx, os.Args[1:])
}
