package parser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/elix1er/ai-news-aggregator/internal/domain"
	"github.com/elix1er/ai-news-aggregator/internal/ports"
	"github.com/elix1er/ai-news-aggregator/internal/scanner"
)

// StrategySourceOptions tunes how sources are fetched.
type StrategySourceOptions struct {
	// MaxItems caps items per source; zero means scanner.DefaultMaxItems.
	MaxItems int
	// Concurrency bounds parallel fetches; values below 1 mean sequential.
	Concurrency int
	// SourceTimeout bounds a single source fetch; zero disables it.
	SourceTimeout time.Duration
}

// StrategySource implements ports.ItemSource via registered scanner strategies.
type StrategySource struct {
	registry *scanner.Registry
	sources  []domain.SourceDescriptor
	opts     StrategySourceOptions
	logger   *slog.Logger
}

var _ ports.ItemSource = (*StrategySource)(nil)

// NewStrategySource wires scanner registry with the configured sources.
func NewStrategySource(reg *scanner.Registry, sources []domain.SourceDescriptor, opts StrategySourceOptions, log *slog.Logger) *StrategySource {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &StrategySource{
		registry: reg,
		sources:  sources,
		opts:     opts,
		logger:   log,
	}
}

// Collect runs every source through its scanner. A source that fails is
// logged and contributes an empty batch; batches keep registry order.
func (s *StrategySource) Collect(ctx context.Context) ([]ports.Batch, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	s.debug("collect", "sources", len(s.sources), "concurrency", s.opts.Concurrency)

	batches := make([]ports.Batch, len(s.sources))
	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)

	for i, src := range s.sources {
		i, src := i, src
		batches[i].Source = src
		g.Go(func() error {
			batches[i].Items = s.scanOne(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	return batches, nil
}

func (s *StrategySource) scanOne(ctx context.Context, src domain.SourceDescriptor) []domain.NewsItem {
	s.info("processing source", "kind", src.Kind, "url", src.URL)

	strategy, err := s.registry.ResolveKind(src.Kind)
	if err != nil {
		s.logError("resolve scanner", "url", src.URL, "error", err)
		return nil
	}

	if s.opts.SourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SourceTimeout)
		defer cancel()
	}

	started := time.Now()
	items, err := strategy.Scan(ctx, scanner.Request{Source: src, MaxItems: s.opts.MaxItems})
	if err != nil {
		s.logError("fetch source failed", "kind", src.Kind, "url", src.URL, "error", err)
		return nil
	}

	s.debug("source produced items", "url", src.URL, "count", len(items), "elapsed", time.Since(started))
	return items
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) info(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *StrategySource) logError(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}
