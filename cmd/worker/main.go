package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vkarpenko/freightgate/internal/bootstrap"
	"github.com/vkarpenko/freightgate/internal/config"
	"github.com/vkarpenko/freightgate/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(bootstrap.ServiceName, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: app.Metrics.Handler(),
	}
	go func() {
		logger.Info("metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentIngested(ctx, func(handlerCtx context.Context, documentID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		app.Metrics.StartDocument()
		start := time.Now()

		outcome, err := app.ProcessUC.ProcessByID(processCtx, documentID)
		app.Metrics.FinishDocument(bootstrap.ServiceName, time.Since(start), err)
		if err != nil {
			return err
		}

		app.Metrics.RecordOutcome(bootstrap.ServiceName, outcome)
		logger.Info("document processed",
			"document_id", outcome.DocumentID,
			"doc_type", outcome.DocType,
			"confidence", outcome.Confidence,
			"method", outcome.Method,
			"validation_status", outcome.ValidationStatus,
			"stop_processing", outcome.StopProcessing,
		)
		return nil
	})
	if err != nil {
		logger.Error("worker subscribe failed", "error", err)
		os.Exit(1)
	}
}
