package bootstrap

import (
	"context"
	"fmt"

	"github.com/mkowalczyk/zus-accident-assistant/internal/config"
	"github.com/mkowalczyk/zus-accident-assistant/internal/core/ports"
	"github.com/mkowalczyk/zus-accident-assistant/internal/core/usecase"
	"github.com/mkowalczyk/zus-accident-assistant/internal/infrastructure/export"
	"github.com/mkowalczyk/zus-accident-assistant/internal/infrastructure/inspect"
	"github.com/mkowalczyk/zus-accident-assistant/internal/infrastructure/pipeline"
	"github.com/mkowalczyk/zus-accident-assistant/internal/infrastructure/queue/nats"
	"github.com/mkowalczyk/zus-accident-assistant/internal/infrastructure/repository/postgres"
	"github.com/mkowalczyk/zus-accident-assistant/internal/infrastructure/resilience"
	"github.com/mkowalczyk/zus-accident-assistant/internal/infrastructure/storage/localfs"
	"github.com/mkowalczyk/zus-accident-assistant/internal/observability/metrics"
)

// ClientApp wires everything the analysis CLI needs: the pipeline gateway,
// the run use case, document inspection, report export and event publishing.
type ClientApp struct {
	Config config.Config

	RunUC      *usecase.RunAnalysisUseCase
	RunMetrics *metrics.PipelineRunMetrics
	Prober     ports.DocumentProber
	Exporter   ports.ResultExporter
	Storage    *localfs.Storage
	Events     ports.EventPublisher

	closeFn func()
}

func NewClientApp(cfg config.Config) (*ClientApp, error) {
	gateway := pipeline.New(cfg.PipelineBaseURL, pipeline.Options{
		Token: cfg.PipelineToken,
	})
	runMetrics := metrics.NewPipelineRunMetrics("zant")
	runUC := usecase.NewRunAnalysisUseCase(gateway, usecase.RunConfig{
		PollInterval: cfg.PollInterval(),
		MaxWait:      cfg.MaxWait(),
		Metrics:      runMetrics,
	})

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.Config{}),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	return &ClientApp{
		Config:     cfg,
		RunUC:      runUC,
		RunMetrics: runMetrics,
		Prober:     inspect.NewProber(),
		Exporter:   export.NewExcelExporter(),
		Storage:    storage,
		Events:     queue,

		closeFn: func() {
			queue.Close()
		},
	}, nil
}

func (a *ClientApp) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// ServerApp wires the persistence side shared by the worker and the API.
type ServerApp struct {
	Config config.Config

	Repo      ports.CaseRepository
	Events    ports.EventSubscriber
	PersistUC *usecase.PersistResultUseCase

	closeFn func()
}

func NewServerApp(ctx context.Context, cfg config.Config) (*ServerApp, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewCaseRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	return &ServerApp{
		Config:    cfg,
		Repo:      repo,
		Events:    queue,
		PersistUC: usecase.NewPersistResultUseCase(repo),

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *ServerApp) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
