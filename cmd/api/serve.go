package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/ayuraa/wellness-backend/internal/infrastructure/database/postgres"
	"github.com/ayuraa/wellness-backend/internal/infrastructure/database/redis"
	"github.com/ayuraa/wellness-backend/internal/interfaces/http"
	"github.com/ayuraa/wellness-backend/internal/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run migrations before serving (always on in development)")
	return cmd
}

func runServe(migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.New(cfg.Logging)

	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("Starting %s", cfg.App.Name)

	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	cache, err := redis.NewConnection(cfg, log)
	if err != nil {
		return err
	}
	defer cache.Close()

	if migrate || cfg.IsDevelopment() {
		m := postgres.NewMigration(db.GetDB(), log)
		if err := m.RunAutoMigrations(); err != nil {
			return err
		}
		if err := m.CreateIndexes(); err != nil {
			log.WithError(err).Warn("Index creation failed")
		}
		if cfg.IsDevelopment() {
			if err := m.SeedInitialData(); err != nil {
				log.WithError(err).Warn("Data seeding failed")
			}
		}
	}

	server, err := http.NewServer(cfg, log, db, cache)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down gracefully")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		return err
	}

	log.Info("Server shutdown completed")
	return nil
}
