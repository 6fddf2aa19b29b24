package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"sorteos/clients"
	"sorteos/config"
	"sorteos/db"
	"sorteos/service"
)

func main() {
	logrus.SetLevel(logrus.InfoLevel)
	logger := watermill.NewStdLogger(false, false)

	if err := run(logger); err != nil {
		logger.Error("failed to run", err, nil)
		os.Exit(1)
	}
}

func run(logger watermill.LoggerAdapter) error {
	cfg := config.Load()

	backend, err := clients.New(cfg.BackendURL)
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("failed to close redis connection", err, nil)
		}
	}()

	dbConn, err := sqlx.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close db connection", err, nil)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := db.CreateSalesTable(ctx, dbConn); err != nil {
		return fmt.Errorf("creating sale_attempts table: %w", err)
	}

	svc, err := service.New(service.Deps{
		Logger:      logger,
		RedisClient: rdb,
		Backend:     backend,
		SaleRepo:    db.NewSaleRepo(dbConn),
		CacheTTL:    cfg.CatalogCacheTTL,
		HTTPPort:    cfg.HTTPPort,
	})
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	return svc.Run(ctx)
}
