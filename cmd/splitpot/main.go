package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mgarnier/splitpot/internal/api"
	"github.com/mgarnier/splitpot/internal/config"
	"github.com/mgarnier/splitpot/internal/logger"
	"github.com/mgarnier/splitpot/internal/store"
)

func main() {
	log := logger.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	// Connect to database
	st, err := store.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer st.Close()

	// Run migrations
	if err := st.RunMigrations(context.Background()); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize API server
	apiServer := api.New(cfg, st, log)

	// Start API server
	go func() {
		if err := apiServer.Start(); err != nil {
			log.WithError(err).Error("API server error")
		}
	}()

	// Wait for signal to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
}
