package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/elix1er/ai-news-aggregator/internal/config"
	"github.com/elix1er/ai-news-aggregator/internal/domain"
	"github.com/elix1er/ai-news-aggregator/internal/infrastructure/parser"
	"github.com/elix1er/ai-news-aggregator/internal/infrastructure/storage"
	"github.com/elix1er/ai-news-aggregator/internal/logging"
	"github.com/elix1er/ai-news-aggregator/internal/scanner"
	"github.com/elix1er/ai-news-aggregator/internal/usecase"
)

// Application wires configs to use cases.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	archive  *storage.Archive
}

// New builds a runnable application instance. A nil client gets one with
// the configured timeout.
func New(cfg config.Config, baseLogger *slog.Logger, client *http.Client) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTP.Timeout}
	}

	registry := scanner.NewRegistry()
	registry.Register(parser.NewFeedScanner(client, cfg.HTTP.UserAgent))
	registry.Register(parser.NewScrapeScanner(client, cfg.HTTP.BrowserUserAgent))

	source := parser.NewStrategySource(registry, cfg.Sources, parser.StrategySourceOptions{
		MaxItems:      cfg.Fetch.MaxItems,
		Concurrency:   cfg.Fetch.Concurrency,
		SourceTimeout: cfg.Fetch.SourceTimeout,
	}, baseLogger.With("component", "source"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Writer:     storage.NewMarkdownWriter(cfg.Output.Dir, cfg.Output.Extension),
		Keywords:   cfg.Keywords,
		RunTimeout: cfg.Fetch.RunTimeout,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	return &Application{
		cfg:      cfg,
		pipeline: pipeline,
		archive:  storage.NewArchive(cfg.Output.Dir, cfg.Output.Extension),
	}
}

// Run performs a single aggregation pass.
func (a *Application) Run(ctx context.Context) (usecase.Report, error) {
	return a.pipeline.Run(ctx)
}

// Sources returns the configured source registry.
func (a *Application) Sources() []domain.SourceDescriptor {
	return a.cfg.Sources
}

// Recent lists the newest persisted documents.
func (a *Application) Recent(limit int) ([]storage.Document, error) {
	return a.archive.Recent(limit)
}
