package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"sorteos/catalog"
	"sorteos/clients"
	"sorteos/db"
	"sorteos/http"
	"sorteos/message"
	"sorteos/sale"
)

type Service struct {
	msgRouter  *message.Router
	httpRouter *echo.Echo
	httpAddr   string
}

type Deps struct {
	Logger      watermill.LoggerAdapter
	RedisClient *redis.Client
	Backend     *clients.Clients
	SaleRepo    db.SaleRepo
	CacheTTL    time.Duration
	HTTPPort    string
}

func New(deps Deps) (*Service, error) {
	eventBus, err := message.NewEventBus(deps.RedisClient, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating event bus: %w", err)
	}

	msgRouter, err := message.NewRouter(message.RouterDeps{
		Logger:       deps.Logger,
		RedisClient:  deps.RedisClient,
		SaleRecorder: deps.SaleRepo,
	})
	if err != nil {
		return nil, fmt.Errorf("creating message router: %w", err)
	}

	rafflesClient := clients.NewRafflesClient(deps.Backend)
	salesClient := clients.NewSalesClient(deps.Backend)
	customersClient := clients.NewCustomersClient(deps.Backend)

	cache := catalog.NewCache(deps.RedisClient, deps.CacheTTL)
	loader := catalog.NewLoader(rafflesClient, rafflesClient, cache)

	executor := sale.NewExecutor(salesClient)
	workflow := sale.NewWorkflow(executor, loader, eventBus)

	httpRouter := http.NewRouter(http.RouterDeps{
		Loader:    loader,
		Raffles:   rafflesClient,
		Customers: customersClient,
		Workflow:  workflow,
		Journal:   deps.SaleRepo,
	})

	return &Service{
		msgRouter:  msgRouter,
		httpRouter: httpRouter,
		httpAddr:   ":" + deps.HTTPPort,
	}, nil
}

func (s Service) Run(ctx context.Context) error {
	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.msgRouter.Run(runCtx); err != nil {
			return fmt.Errorf("running messaging router: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		// Wait for message router
		<-s.msgRouter.Running()

		logrus.Info("Starting HTTP server...")
		err := s.httpRouter.Start(s.httpAddr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("starting http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logrus.Info("Shutting down HTTP server...")
		if err := s.httpRouter.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("waiting for shutdown: %w", err)
	}
	logrus.Info("Shutdown complete.")

	return nil
}
