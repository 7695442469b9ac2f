package parser

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elix1er/ai-news-aggregator/internal/domain"
	"github.com/elix1er/ai-news-aggregator/internal/scanner"
)

var wiredSelectors = domain.SelectorSet{
	Article:     "div.summary-item",
	Title:       "h3",
	Description: "div.summary-item__dek",
	Link:        "a",
}

const categoryPage = `<html><body>
<div class="summary-item">
  <a href="/story/agents-at-work/"><h3>  Agents at
    work </h3></a>
  <div class="summary-item__dek">How machine learning  agents are changing offices.</div>
</div>
<div class="summary-item">
  <a href="https://elsewhere.example.org/robotics">Robotics</a>
</div>
<div class="other">ignored</div>
</body></html>`

func TestParseBlock(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(categoryPage))
	require.NoError(t, err)

	raw := parseBlock(doc.Find("div.summary-item").First(), wiredSelectors)
	assert.Equal(t, "Agents at\n    work", raw.title)
	assert.Equal(t, "How machine learning  agents are changing offices.", raw.description)
	assert.Equal(t, "/story/agents-at-work/", raw.link)

	empty := parseBlock(doc.Find("div.other").First(), domain.SelectorSet{})
	assert.Equal(t, rawItem{}, empty)
}

func TestScrapeScannerScan(t *testing.T) {
	t.Parallel()

	agents := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents <- r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(categoryPage))
	}))
	defer server.Close()

	now := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)
	sc := NewScrapeScanner(server.Client(), "")
	sc.now = func() time.Time { return now }

	pageURL := server.URL + "/category/artificial-intelligence/"
	items, err := sc.Scan(context.Background(), scanner.Request{
		Source: domain.SourceDescriptor{Kind: domain.KindScrape, URL: pageURL, Selectors: &wiredSelectors},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, DefaultBrowserUserAgent, <-agents)

	assert.Equal(t, "Agents at work", items[0].Title)
	assert.Equal(t, "How machine learning agents are changing offices.", items[0].Description)
	assert.Equal(t, server.URL+"/story/agents-at-work/", items[0].Link)
	assert.True(t, items[0].PublishedAt.Equal(now))

	assert.Equal(t, domain.NoTitle, items[1].Title)
	assert.Equal(t, domain.NoDescription, items[1].Description)
	assert.Equal(t, "https://elsewhere.example.org/robotics", items[1].Link)
}

func TestScrapeScannerWholeDocumentWithoutArticleSelector(t *testing.T) {
	t.Parallel()

	server := serveFixture(t, "text/html", `<html><body><h1>Deep learning digest</h1><p>Weekly notes</p></body></html>`)

	items, err := NewScrapeScanner(server.Client(), "").Scan(context.Background(), scanner.Request{
		Source: domain.SourceDescriptor{
			Kind:      domain.KindScrape,
			URL:       server.URL,
			Selectors: &domain.SelectorSet{Title: "h1", Description: "p"},
		},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Deep learning digest", items[0].Title)
	assert.Equal(t, "Weekly notes", items[0].Description)
	assert.Equal(t, server.URL, items[0].Link)
}

func TestScrapeScannerLimitsBlocksAndTruncates(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, `<div class="article-card"><h2>Card %d</h2><p>%s</p><a href="card-%d">more</a></div>`,
			i, strings.Repeat("z", 300), i)
	}
	b.WriteString("</body></html>")
	server := serveFixture(t, "text/html", b.String())

	items, err := NewScrapeScanner(server.Client(), "").Scan(context.Background(), scanner.Request{
		Source: domain.SourceDescriptor{
			Kind: domain.KindScrape,
			URL:  server.URL + "/ai-and-machine-learning",
			Selectors: &domain.SelectorSet{
				Article: "div.article-card", Title: "h2", Description: "p", Link: "a",
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, items, scanner.DefaultMaxItems)

	assert.Equal(t, "Card 9", items[9].Title)
	assert.Equal(t, strings.Repeat("z", 200)+"...", items[0].Description)
	assert.Equal(t, server.URL+"/card-3", items[3].Link)
}

func TestScrapeScannerFailures(t *testing.T) {
	t.Parallel()

	forbidden := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bots not welcome", http.StatusForbidden)
	}))
	defer forbidden.Close()

	sc := NewScrapeScanner(nil, "")

	items, err := sc.Scan(context.Background(), scanner.Request{
		Source: domain.SourceDescriptor{Kind: domain.KindScrape, URL: forbidden.URL, Selectors: &wiredSelectors},
	})
	assert.ErrorContains(t, err, "403")
	assert.Empty(t, items)

	items, err = sc.Scan(context.Background(), scanner.Request{
		Source: domain.SourceDescriptor{Kind: domain.KindScrape, URL: forbidden.URL},
	})
	assert.ErrorContains(t, err, "no selectors")
	assert.Empty(t, items)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	items, err = sc.Scan(ctx, scanner.Request{
		Source: domain.SourceDescriptor{Kind: domain.KindScrape, URL: forbidden.URL, Selectors: &wiredSelectors},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, items)
}
