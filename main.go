package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/pizza-walk/app"
	"github.com/Black-And-White-Club/pizza-walk/app/observability"
	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
	"github.com/Black-And-White-Club/pizza-walk/config"
	"github.com/joho/godotenv"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	obs := observability.Init(cfg.Observability)
	logger := obs.Provider.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, obs)
	if err != nil {
		logger.Error("Failed to initialize app", attr.Error(err))
		os.Exit(1)
	}

	if err := application.Start(ctx); err != nil {
		logger.Error("Server stopped with error", attr.Error(err))
	}

	logger.Info("Shutting down application")
	if err := application.Close(); err != nil {
		logger.Error("Error during shutdown", attr.Error(err))
	}
	logger.Info("Application shut down gracefully")
}
