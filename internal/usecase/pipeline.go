package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/elix1er/ai-news-aggregator/internal/domain"
	"github.com/elix1er/ai-news-aggregator/internal/ports"
)

var errNotConfigured = errors.New("pipeline is not configured")

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source   ports.ItemSource
	Writer   ports.DocumentWriter
	Keywords []string
	// RunTimeout bounds the collection phase of a run; zero disables it.
	RunTimeout time.Duration
	Logger     *slog.Logger
}

// Pipeline implements the aggregation workflow.
type Pipeline struct {
	source     ports.ItemSource
	writer     ports.DocumentWriter
	keywords   []string
	runTimeout time.Duration
	logger     *slog.Logger
}

// Report summarizes one run.
type Report struct {
	Sources  int
	Fetched  int
	Accepted int
	Written  int
	Failed   int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		source:     deps.Source,
		writer:     deps.Writer,
		keywords:   deps.Keywords,
		runTimeout: deps.RunTimeout,
		logger:     logger,
	}
}

// Run fetches every source, keeps relevant items and writes them. Only a
// missing dependency or an unusable output directory fails the run; source
// and per-item write failures are logged and skipped.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	var report Report
	if p.source == nil || p.writer == nil {
		return report, errNotConfigured
	}

	p.logger.Info("starting AI news aggregation")

	if err := p.writer.Prepare(); err != nil {
		p.logger.Error("output directory unavailable", "error", err)
		return report, err
	}

	accepted, err := p.collect(ctx, &report)
	if err != nil {
		return report, err
	}

	if len(accepted) == 0 {
		p.logger.Info("no relevant news found")
		return report, nil
	}

	for _, item := range accepted {
		path, err := p.writer.Write(item)
		if err != nil {
			report.Failed++
			p.logger.Error("write failed", "title", item.Title, "error", err)
			continue
		}
		report.Written++
		p.logger.Info("written", "path", path)
	}

	p.logger.Info("AI news aggregation completed",
		"sources", report.Sources,
		"fetched", report.Fetched,
		"accepted", report.Accepted,
		"written", report.Written,
		"failed", report.Failed,
	)

	return report, nil
}

// collect gathers every batch and returns the relevant items in source order.
func (p *Pipeline) collect(ctx context.Context, report *Report) ([]domain.NewsItem, error) {
	if p.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.runTimeout)
		defer cancel()
	}

	batches, err := p.source.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect sources: %w", err)
	}

	var accepted []domain.NewsItem
	for _, batch := range batches {
		report.Sources++
		report.Fetched += len(batch.Items)

		relevant := p.filter(batch)
		if len(relevant) == 0 {
			p.logger.Info("no relevant content found for source", "url", batch.Source.URL)
			continue
		}
		accepted = append(accepted, relevant...)
	}
	report.Accepted = len(accepted)

	return accepted, nil
}

func (p *Pipeline) filter(batch ports.Batch) []domain.NewsItem {
	relevant := make([]domain.NewsItem, 0, len(batch.Items))
	for _, item := range batch.Items {
		if !IsRelevant(item.RelevanceText(), p.keywords) {
			p.logger.Info("filtered out", "title", item.Title, "url", batch.Source.URL)
			continue
		}
		relevant = append(relevant, item)
	}
	return relevant
}
