package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"homeledger/internal/amqp"
	"homeledger/internal/backend"
	"homeledger/internal/cli"
	apphttp "homeledger/internal/http"
	"homeledger/internal/identity"
	"homeledger/internal/services"
)

func main() {
	cfg, logger := cli.Bootstrap("homeledger")

	store, err := backend.New(cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize record store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if store.Cleanup != nil {
		defer func() {
			if err := store.Cleanup(); err != nil {
				logger.Error("Record store cleanup failed", "error", err)
			}
		}()
	}

	// Event publishing is optional. Without a broker URL the service
	// runs standalone and the audit trail simply stays empty.
	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		logger.Info("Expense event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Expense event publishing disabled - no AMQP_URL provided")
	}

	expenses := services.NewExpenseService(store.Store, publisher)
	verifier := identity.NewVerifier(cfg.SessionSecret, cfg.SessionCookie)

	srv, err := apphttp.NewServer(cfg, expenses, verifier)
	if err != nil {
		logger.Error("Failed to initialize HTTP server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting homeledger server", "port", cfg.Port, "backend", cfg.DataBackend)
		return srv.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
