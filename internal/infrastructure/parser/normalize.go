package parser

import (
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/elix1er/ai-news-aggregator/internal/domain"
)

// strictPolicy drops every element and keeps only text.
var strictPolicy = bluemonday.StrictPolicy()

// rawItem is an entry as extracted, before defaults and limits apply.
type rawItem struct {
	title       string
	description string
	link        string
	publishedAt time.Time
}

// normalize applies sentinel defaults, truncation and link resolution.
func normalize(raw rawItem, base *url.URL, now time.Time) domain.NewsItem {
	title := collapseSpace(raw.title)
	if title == "" {
		title = domain.NoTitle
	}

	description := collapseSpace(raw.description)
	if description == "" {
		description = domain.NoDescription
	} else {
		description = domain.TruncateDescription(description)
	}

	publishedAt := raw.publishedAt
	if publishedAt.IsZero() {
		publishedAt = now
	}

	return domain.NewsItem{
		Title:       title,
		Description: description,
		Link:        resolveLink(raw.link, base),
		PublishedAt: publishedAt,
	}
}

// stripMarkup removes tags and entities and collapses whitespace.
func stripMarkup(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resolveLink makes href absolute against base; an empty or unparsable href
// falls back to base itself.
func resolveLink(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return base.String()
	}

	ref, err := url.Parse(href)
	if err != nil {
		return base.String()
	}
	if ref.IsAbs() {
		return href
	}
	return base.ResolveReference(ref).String()
}
