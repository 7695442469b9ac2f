package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Sentinel defaults substituted when a source lacks the expected field.
const (
	NoTitle       = "No Title"
	NoDescription = "No Description"
)

const (
	// MaxDescriptionLen is the number of characters kept before truncation.
	MaxDescriptionLen = 200
	// Ellipsis marks a truncated description.
	Ellipsis = "..."
)

// SourceKind selects the adapter used for a source.
type SourceKind string

const (
	KindFeed   SourceKind = "feed"
	KindScrape SourceKind = "scrape"
)

// Valid reports whether the kind has an adapter.
func (k SourceKind) Valid() bool {
	return k == KindFeed || k == KindScrape
}

// SelectorSet locates article blocks and their fields inside a scraped page.
type SelectorSet struct {
	Article     string `yaml:"article"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

// SourceDescriptor is one entry of the source registry.
type SourceDescriptor struct {
	Kind      SourceKind   `yaml:"kind"`
	URL       string       `yaml:"url"`
	Selectors *SelectorSet `yaml:"selectors,omitempty"`
}

// Validate checks the descriptor is usable by its adapter.
func (s SourceDescriptor) Validate() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("source %q: unknown kind %q", s.URL, s.Kind)
	}
	if strings.TrimSpace(s.URL) == "" {
		return fmt.Errorf("source of kind %s has empty url", s.Kind)
	}
	if s.Kind == KindScrape && s.Selectors == nil {
		return fmt.Errorf("scrape source %q: selectors are required", s.URL)
	}
	return nil
}

// NewsItem is the normalized shape every adapter produces.
type NewsItem struct {
	Title       string
	Description string
	Link        string
	PublishedAt time.Time
}

// RelevanceText is the text matched against keywords.
func (n NewsItem) RelevanceText() string {
	return n.Title + " " + n.Description
}

// TruncateDescription keeps the first MaxDescriptionLen characters and
// appends Ellipsis when anything was cut.
func TruncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= MaxDescriptionLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxDescriptionLen]) + Ellipsis
}
