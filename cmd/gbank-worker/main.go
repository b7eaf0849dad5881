package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"gbank/internal/amqp"
	"gbank/internal/cli"
	applog "gbank/internal/log"
	"gbank/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting gbank-worker")

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		return
	}
	defer amqpClient.Close()

	refresher := worker.New(repo, cfg.DataDirectory)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	// Reconcile once on startup so a fresh database catches up before
	// the first consumed event.
	if err := refresher.Sweep(ctx); err != nil {
		logger.Error("Startup sweep failed", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := amqpClient.Consume(gctx, refresher.HandleEvent)
		if err != nil && err != context.Canceled {
			logger.Error("Event consumption failed", "error", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.SweepSchedule, func() {
			if err := refresher.Sweep(gctx); err != nil {
				logger.Error("Scheduled sweep failed", "error", err)
			}
		})
		if err != nil {
			logger.Error("Failed to schedule sweep", "error", err, "schedule", cfg.SweepSchedule)
			return err
		}
		scheduler.Start()
		<-gctx.Done()
		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		return
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
