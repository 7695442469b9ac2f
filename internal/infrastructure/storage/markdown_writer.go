package storage

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/elix1er/ai-news-aggregator/internal/domain"
	"github.com/elix1er/ai-news-aggregator/internal/ports"
)

const (
	// DefaultExtension is the document extension the site generator globs for.
	DefaultExtension = ".mdx"

	// maxBaseLen keeps names under common filesystem limits.
	maxBaseLen = 200

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
	dateLayout      = "2006-01-02"
)

// MarkdownWriter persists news items as frontmatter documents, one file per item.
type MarkdownWriter struct {
	dir string
	ext string

	mu      sync.Mutex
	claimed map[string]string
}

var _ ports.DocumentWriter = (*MarkdownWriter)(nil)

// NewMarkdownWriter writes into dir using ext (DefaultExtension when empty).
func NewMarkdownWriter(dir, ext string) *MarkdownWriter {
	return &MarkdownWriter{
		dir:     dir,
		ext:     normalizeExt(ext),
		claimed: map[string]string{},
	}
}

// Prepare creates the output directory and its parents.
func (w *MarkdownWriter) Prepare() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", w.dir, err)
	}
	return nil
}

// Write renders the item and stores it under its derived filename.
func (w *MarkdownWriter) Write(item domain.NewsItem) (string, error) {
	path := filepath.Join(w.dir, w.claim(item)+w.ext)
	if err := os.WriteFile(path, RenderDocument(item), 0o644); err != nil {
		return "", fmt.Errorf("write document %s: %w", path, err)
	}
	return path, nil
}

// claim returns the filename base for item. Within one writer a base taken
// by a different link is suffixed with a short hash of the link; the same
// link reuses its base and overwrites.
func (w *MarkdownWriter) claim(item domain.NewsItem) string {
	base := FileBase(item)

	w.mu.Lock()
	defer w.mu.Unlock()

	owner, taken := w.claimed[base]
	if !taken || owner == item.Link {
		w.claimed[base] = item.Link
		return base
	}

	alt := base + "_" + linkHash(item.Link)
	w.claimed[alt] = item.Link
	return alt
}

// FileBase derives the deterministic filename base from date and title.
func FileBase(item domain.NewsItem) string {
	base := SanitizeFilename(item.PublishedAt.UTC().Format(dateLayout) + "-" + item.Title)
	if len(base) > maxBaseLen {
		base = base[:maxBaseLen]
	}
	return base
}

// SanitizeFilename lowercases s and replaces every character outside
// [A-Za-z0-9] with an underscore.
func SanitizeFilename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// RenderDocument produces the frontmatter header followed by the body.
func RenderDocument(item domain.NewsItem) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: \"%s\"\n", escapeQuoted(item.Title))
	fmt.Fprintf(&b, "date: \"%s\"\n", item.PublishedAt.UTC().Format(timestampLayout))
	fmt.Fprintf(&b, "link: \"%s\"\n", escapeQuoted(item.Link))
	b.WriteString("---\n\n")
	b.WriteString(item.Description)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "[Read more](%s)\n", item.Link)
	return []byte(b.String())
}

func escapeQuoted(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func linkHash(link string) string {
	sum := sha1.Sum([]byte(link))
	return hex.EncodeToString(sum[:])[:8]
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
