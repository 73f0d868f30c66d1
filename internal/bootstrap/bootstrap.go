// Package bootstrap assembles the application graph: postgres repositories,
// object storage, the NATS queue, external model clients and the use cases
// on top of them.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vkarpenko/freightgate/internal/config"
	"github.com/vkarpenko/freightgate/internal/core/classify"
	"github.com/vkarpenko/freightgate/internal/core/domain"
	"github.com/vkarpenko/freightgate/internal/core/fields"
	"github.com/vkarpenko/freightgate/internal/core/ports"
	"github.com/vkarpenko/freightgate/internal/core/rules"
	"github.com/vkarpenko/freightgate/internal/core/usecase"
	"github.com/vkarpenko/freightgate/internal/infrastructure/embedding/ollama"
	"github.com/vkarpenko/freightgate/internal/infrastructure/extractor/pdftext"
	"github.com/vkarpenko/freightgate/internal/infrastructure/library"
	"github.com/vkarpenko/freightgate/internal/infrastructure/queue/nats"
	"github.com/vkarpenko/freightgate/internal/infrastructure/report/excel"
	"github.com/vkarpenko/freightgate/internal/infrastructure/repository/postgres"
	"github.com/vkarpenko/freightgate/internal/infrastructure/resilience"
	"github.com/vkarpenko/freightgate/internal/infrastructure/storage/localfs"
	"github.com/vkarpenko/freightgate/internal/infrastructure/vision/gemini"
	"github.com/vkarpenko/freightgate/internal/observability/metrics"
)

const ServiceName = "freightgate-worker"

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.WorkerMetrics

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	ReportUC  ports.ReportExporter

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure documents schema: %w", err)
	}
	samples := postgres.NewSampleRepository(db)
	if err := samples.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure samples schema: %w", err)
	}
	validations := postgres.NewValidationRepository(db)
	if err := validations.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure validations schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	workerMetrics := metrics.NewWorkerMetrics(ServiceName)

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
		Logger:             logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	embedder := ollama.New(cfg.OllamaURL, cfg.OllamaEmbedModel,
		ollama.WithExecutor(resilience.NewExecutor(resilience.DefaultConfig())))

	visionConfig := resilience.DefaultConfig()
	visionConfig.RateLimitRPS = cfg.GeminiRPS
	visionConfig.RateLimitBurst = cfg.GeminiBurst
	vision := gemini.New(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel,
		gemini.WithExecutor(resilience.NewExecutor(visionConfig)))

	sampleLibrary := library.NewCache(samples, cfg.SampleCacheTTL)
	classifier := classify.New(embedder, sampleLibrary, &meteredVision{
		model:   vision,
		metrics: workerMetrics,
	}, logger)

	thresholds, err := config.LoadThresholds(cfg.RulesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load rule thresholds: %w", err)
	}
	registry, err := rules.NewRegistry(rules.GeneralRules(thresholds), rules.DocTypeRules())
	if err != nil {
		return nil, fmt.Errorf("build rule registry: %w", err)
	}
	validator := rules.NewEngine(registry, logger)

	extractor := pdftext.NewExtractor(storage)
	fieldExtractor := fields.NewExtractor()

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(
		repo, storage, extractor, classifier, fieldExtractor, validator, validations)
	reportUC := usecase.NewExportReportUseCase(validations, excel.NewWriter())

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: workerMetrics,

		Queue: queue,
		Repo:  repo,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		ReportUC:  reportUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// meteredVision counts vision invocations around the real client. Paid API
// usage shows up on dashboards even when the classifier absorbs the error.
type meteredVision struct {
	model   ports.VisionModel
	metrics *metrics.WorkerMetrics
}

func (v *meteredVision) ClassifyDocument(ctx context.Context, image []byte, textExcerpt string) (domain.Signal, error) {
	signal, err := v.model.ClassifyDocument(ctx, image, textExcerpt)
	v.metrics.RecordVisionCall(ServiceName, err)
	return signal, err
}
