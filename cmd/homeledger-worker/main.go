package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"homeledger/internal/amqp"
	"homeledger/internal/cli"
	"homeledger/internal/worker"
)

func main() {
	cfg, logger := cli.Bootstrap("homeledger-worker")

	logger.Info("Starting homeledger-worker")

	if !cfg.EventsEnabled() {
		logger.Error("AMQP_URL is required for the event worker")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auditWorker := worker.NewAuditWorker(repo)

	logger.Info("Consuming expense events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	if err := client.ConsumeExpenseEvents(ctx, auditWorker.HandleEvent); err != nil && ctx.Err() == nil {
		logger.Error("Consumer stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
