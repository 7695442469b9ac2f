package scanner

import (
	"context"
	"fmt"

	"github.com/elix1er/ai-news-aggregator/internal/domain"
)

// DefaultMaxItems caps how many entries or blocks one source contributes.
const DefaultMaxItems = 10

// Request carries all parameters required to scan one source.
type Request struct {
	Source   domain.SourceDescriptor
	MaxItems int
}

// Limit returns the effective item cap for the request.
func (r Request) Limit() int {
	if r.MaxItems <= 0 {
		return DefaultMaxItems
	}
	return r.MaxItems
}

// Scanner captures a single source adapter (feed, scrape).
type Scanner interface {
	Name() string
	Scan(ctx context.Context, req Request) ([]domain.NewsItem, error)
}

// Registry keeps a mapping from source kinds to their adapters.
type Registry struct {
	scanners map[string]Scanner
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scanners: map[string]Scanner{}}
}

// Register adds or replaces a scanner implementation.
func (r *Registry) Register(scanner Scanner) {
	if r.scanners == nil {
		r.scanners = map[string]Scanner{}
	}
	r.scanners[scanner.Name()] = scanner
}

// Resolve returns a scanner by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scanner, error) {
	if scanner, ok := r.scanners[name]; ok {
		return scanner, nil
	}
	return nil, fmt.Errorf("scanner %s is not registered", name)
}

// ResolveKind returns the scanner registered for a source kind.
func (r *Registry) ResolveKind(kind domain.SourceKind) (Scanner, error) {
	return r.Resolve(string(kind))
}
