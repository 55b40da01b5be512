// Command booking-consumer reads booking lifecycle events from RabbitMQ and
// appends one audit line per event to a log file.
package main

import (
	"context"
	"errors"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/logger"
	"github.com/iliyamo/venue-booking/internal/queue"
)

func main() {
	cfg := config.LoadConsumer()
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("consuming booking events", zap.String("queue", queue.BookingQueue), zap.String("file", cfg.LogPath))
	if err := queue.NewConsumer(cfg.RabbitURL, cfg.LogPath, log).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("consumer stopped", zap.Error(err))
	}
	log.Info("consumer stopped")
}
