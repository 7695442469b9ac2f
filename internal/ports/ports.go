package ports

import (
	"context"

	"github.com/elix1er/ai-news-aggregator/internal/domain"
)

// Batch is what one source produced during a run.
type Batch struct {
	Source domain.SourceDescriptor
	Items  []domain.NewsItem
}

// ItemSource pulls fresh items from every configured upstream source.
// Per-source failures are absorbed; the error is reserved for misconfiguration.
type ItemSource interface {
	Collect(ctx context.Context) ([]Batch, error)
}

// DocumentWriter persists accepted items as documents.
type DocumentWriter interface {
	// Prepare makes sure the destination exists.
	Prepare() error
	// Write stores one item and returns the path written.
	Write(item domain.NewsItem) (string, error)
}
