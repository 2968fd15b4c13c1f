// Package main runs the background worker: it consumes queued tasks and
// periodically refreshes the nearly-sold-out announcement.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"conferencecentral/config"
	"conferencecentral/internal/app"
	"conferencecentral/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger(&config.Config{}).Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	if cfg.TaskDriver != config.DriverRedis {
		logger.Error("worker needs TASK_DRIVER=redis", "task_driver", cfg.TaskDriver)
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg, logger, false)
	if err != nil {
		logger.Error("startup", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Go(func() { worker.NewRunner(a.Queue, a.Processor, logger).Run(ctx) })
	wg.Go(func() {
		worker.NewAnnouncementRefresher(a.Announcements, cfg.AnnouncementRefreshInterval, logger).Run(ctx)
	})
	logger.Info("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	wg.Wait()
	logger.Info("worker stopped")
}
