package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkowalczyk/zus-accident-assistant/internal/bootstrap"
	"github.com/mkowalczyk/zus-accident-assistant/internal/config"
	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
	"github.com/mkowalczyk/zus-accident-assistant/internal/observability/logging"
	"github.com/mkowalczyk/zus-accident-assistant/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewServerApp(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		logger.Info("metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("metrics server error: %v", err)
		}
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Events.SubscribeAnalysisCompleted(ctx, func(handlerCtx context.Context, result domain.AnalysisResult) error {
		persistCtx, cancel := context.WithTimeout(handlerCtx, 30*time.Second)
		defer cancel()

		workerMetrics.StartPersist()
		workerMetrics.ObserveQueueLag("worker", time.Since(result.Timestamp))
		start := time.Now()

		persistErr := app.PersistUC.Persist(persistCtx, result)
		workerMetrics.FinishPersist("worker", time.Since(start), persistErr)
		if persistErr != nil {
			logger.Error("persist case failed", "case_id", result.CaseID, "error", persistErr)
			return persistErr
		}
		logger.Info("case persisted", "case_id", result.CaseID)
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
}
