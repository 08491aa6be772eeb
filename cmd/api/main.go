// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/infrastructure/database/postgres"
	"github.com/boffobaby/inventory-backend/internal/infrastructure/database/redis"
	"github.com/boffobaby/inventory-backend/internal/interfaces/http"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if cfg.Logging.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logrus.SetLevel(level)
	}

	logrus.WithFields(logrus.Fields{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("starting")

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to Redis")
	}
	defer redisClient.Close()

	if err := db.Health(); err != nil {
		logrus.WithError(err).Fatal("database health check failed")
	}
	if err := redisClient.Health(); err != nil {
		logrus.WithError(err).Fatal("redis health check failed")
	}

	migration := postgres.NewMigration(db.GetDB())

	if err := migration.RunAutoMigrations(); err != nil {
		logrus.WithError(err).Fatal("database migration failed")
	}
	if err := migration.CreateIndexes(); err != nil {
		logrus.WithError(err).Warn("index creation failed")
	}

	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			logrus.WithError(err).Warn("data seeding failed")
		}
	}

	server := http.NewServer(cfg, db.GetDB(), redisClient.GetClient())

	go func() {
		if err := server.Start(); err != nil {
			logrus.WithError(err).Fatal("failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logrus.WithError(err).Error("failed to shutdown HTTP server gracefully")
	}
}
