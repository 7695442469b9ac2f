package parser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/elix1er/ai-news-aggregator/internal/domain"
	"github.com/elix1er/ai-news-aggregator/internal/scanner"
)

// DefaultFeedUserAgent identifies the aggregator to feed publishers.
const DefaultFeedUserAgent = "ainews/1.0 (+https://github.com/elix1er/ai-news-aggregator)"

// FeedScanner reads RSS, Atom and JSON feeds.
type FeedScanner struct {
	client    *http.Client
	userAgent string
	now       func() time.Time
}

var _ scanner.Scanner = (*FeedScanner)(nil)

// NewFeedScanner wires an HTTP client; a nil client gets a 20s timeout.
func NewFeedScanner(client *http.Client, userAgent string) *FeedScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if userAgent == "" {
		userAgent = DefaultFeedUserAgent
	}
	return &FeedScanner{client: client, userAgent: userAgent, now: time.Now}
}

// Name identifies the strategy inside the registry.
func (f *FeedScanner) Name() string {
	return string(domain.KindFeed)
}

// Scan fetches the feed and maps its first entries to news items.
func (f *FeedScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.NewsItem, error) {
	base, err := url.Parse(req.Source.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed url %s: %w", req.Source.URL, err)
	}

	fp := gofeed.NewParser()
	fp.Client = f.client
	fp.UserAgent = f.userAgent

	feed, err := fp.ParseURLWithContext(req.Source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", req.Source.URL, err)
	}

	limit := req.Limit()
	now := f.now()
	items := make([]domain.NewsItem, 0, min(limit, len(feed.Items)))
	for _, entry := range feed.Items {
		if len(items) == limit {
			break
		}
		if entry == nil {
			continue
		}

		items = append(items, normalize(rawItem{
			title:       entry.Title,
			description: entryDescription(entry),
			link:        entryLink(entry),
			publishedAt: entryPublished(entry),
		}, base, now))
	}

	return items, nil
}

// entryDescription walks description, snippet and full content and returns
// the first candidate with text left after stripping markup.
func entryDescription(entry *gofeed.Item) string {
	candidates := []string{entry.Description, entrySnippet(entry), entry.Content}
	for _, candidate := range candidates {
		if text := stripMarkup(candidate); text != "" {
			return text
		}
	}
	return ""
}

func entrySnippet(entry *gofeed.Item) string {
	if it := entry.ITunesExt; it != nil {
		if it.Summary != "" {
			return it.Summary
		}
		if it.Subtitle != "" {
			return it.Subtitle
		}
	}
	for _, ext := range entry.Extensions["media"]["description"] {
		if ext.Value != "" {
			return ext.Value
		}
	}
	return ""
}

func entryLink(entry *gofeed.Item) string {
	if entry.Link != "" {
		return entry.Link
	}
	for _, link := range entry.Links {
		if link != "" {
			return link
		}
	}
	return ""
}

func entryPublished(entry *gofeed.Item) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	return time.Time{}
}
