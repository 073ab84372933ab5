package bootstrap

import (
	"context"
	"fmt"
	"path"

	"github.com/ymatsuda/docfiler/internal/config"
	"github.com/ymatsuda/docfiler/internal/core/classify"
	"github.com/ymatsuda/docfiler/internal/core/domain"
	"github.com/ymatsuda/docfiler/internal/core/naming"
	"github.com/ymatsuda/docfiler/internal/core/pipeline"
	"github.com/ymatsuda/docfiler/internal/core/ports"
	"github.com/ymatsuda/docfiler/internal/core/usecase"
	"github.com/ymatsuda/docfiler/internal/infrastructure/export/excel"
	"github.com/ymatsuda/docfiler/internal/infrastructure/extractor/pdftext"
	"github.com/ymatsuda/docfiler/internal/infrastructure/index/neo4j"
	"github.com/ymatsuda/docfiler/internal/infrastructure/ocr/vision"
	"github.com/ymatsuda/docfiler/internal/infrastructure/queue/nats"
	"github.com/ymatsuda/docfiler/internal/infrastructure/repository/postgres"
	"github.com/ymatsuda/docfiler/internal/infrastructure/resilience"
	"github.com/ymatsuda/docfiler/internal/infrastructure/storage/graph"
	"github.com/ymatsuda/docfiler/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	SearchUC  ports.DocumentSearcher
	ExportUC  ports.LogExportService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	store, err := newFileStore(cfg, executor)
	if err != nil {
		return nil, fmt.Errorf("init file store: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	index, err := neo4j.New(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	if err != nil {
		queue.Close()
		return nil, fmt.Errorf("init document index: %w", err)
	}

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		queue.Close()
		return nil, fmt.Errorf("load classification rules: %w", err)
	}
	classifier, err := classify.New(rules)
	if err != nil {
		queue.Close()
		return nil, fmt.Errorf("build classifier: %w", err)
	}
	filingPipeline := pipeline.New(classifier, naming.NewBuilder())

	ocr := vision.NewWithOptions(cfg.VisionAPIKey, vision.Options{
		BaseURL:            cfg.VisionBaseURL,
		ResilienceExecutor: executor,
	})
	textLayer := pdftext.New()

	ingestUC := usecase.NewIngestDocumentUseCase(repo, store, queue)
	processUC := usecase.NewProcessDocumentUseCase(
		repo, store, ocr, textLayer, filingPipeline, index,
		folderRoutes(cfg.BaseFolder), path.Join(cfg.BaseFolder, config.FallbackFolder()),
	)
	searchUC := usecase.NewSearchDocumentsUseCase(index)
	exportUC := usecase.NewExportLogUseCase(repo, excel.NewExporter())

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		SearchUC:  searchUC,
		ExportUC:  exportUC,

		closeFn: func() {
			queue.Close()
			_ = index.Close(context.Background())
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func newFileStore(cfg config.Config, executor *resilience.Executor) (ports.FileStore, error) {
	switch cfg.StorageBackend {
	case "onedrive":
		return graph.New(graph.Config{
			TenantID:           cfg.GraphTenantID,
			ClientID:           cfg.GraphClientID,
			ClientSecret:       cfg.GraphClientSecret,
			DriveUser:          cfg.GraphDriveUser,
			ResilienceExecutor: executor,
		})
	case "local", "":
		return localfs.New(cfg.StoragePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func folderRoutes(baseFolder string) map[domain.Category]string {
	routes := make(map[domain.Category]string)
	for category, folder := range config.Routes() {
		routes[category] = path.Join(baseFolder, folder)
	}
	return routes
}
