package parser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/elix1er/ai-news-aggregator/internal/domain"
	"github.com/elix1er/ai-news-aggregator/internal/scanner"
)

// DefaultBrowserUserAgent is sent to sites that reject non-browser clients.
const DefaultBrowserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

// ScrapeScanner extracts articles from HTML pages via a selector set.
type ScrapeScanner struct {
	client    *http.Client
	userAgent string
	now       func() time.Time
}

var _ scanner.Scanner = (*ScrapeScanner)(nil)

// NewScrapeScanner wires an HTTP client; a nil client gets a 20s timeout.
func NewScrapeScanner(client *http.Client, userAgent string) *ScrapeScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if userAgent == "" {
		userAgent = DefaultBrowserUserAgent
	}
	return &ScrapeScanner{client: client, userAgent: userAgent, now: time.Now}
}

// Name identifies the strategy inside the registry.
func (s *ScrapeScanner) Name() string {
	return string(domain.KindScrape)
}

// Scan downloads the page and extracts up to req.Limit() article blocks.
func (s *ScrapeScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.NewsItem, error) {
	if req.Source.Selectors == nil {
		return nil, fmt.Errorf("no selectors provided for %s", req.Source.URL)
	}

	base, err := url.Parse(req.Source.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid page url %s: %w", req.Source.URL, err)
	}

	doc, err := s.fetchDocument(ctx, req.Source.URL)
	if err != nil {
		return nil, err
	}

	return extractItems(doc, *req.Source.Selectors, base, req.Limit(), s.now()), nil
}

func (s *ScrapeScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", pageURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document %s: %w", pageURL, err)
	}

	return doc, nil
}

func extractItems(doc *goquery.Document, sel domain.SelectorSet, base *url.URL, limit int, now time.Time) []domain.NewsItem {
	blocks := doc.Selection
	if sel.Article != "" {
		blocks = doc.Find(sel.Article)
	}

	items := make([]domain.NewsItem, 0, min(limit, blocks.Length()))
	blocks.EachWithBreak(func(_ int, block *goquery.Selection) bool {
		items = append(items, normalize(parseBlock(block, sel), base, now))
		return len(items) < limit
	})

	return items
}

// parseBlock reads the fields of one article block; empty selectors leave
// the field blank so normalize substitutes its default.
func parseBlock(block *goquery.Selection, sel domain.SelectorSet) rawItem {
	var raw rawItem

	if sel.Title != "" {
		raw.title = strings.TrimSpace(block.Find(sel.Title).Text())
	}
	if sel.Description != "" {
		raw.description = strings.TrimSpace(block.Find(sel.Description).Text())
	}
	if sel.Link != "" {
		raw.link, _ = block.Find(sel.Link).First().Attr("href")
	}

	return raw
}
