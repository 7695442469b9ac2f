package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elix1er/ai-news-aggregator/internal/domain"
)

func TestArchiveRecentOrdersByFilenameDescending(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewMarkdownWriter(dir, "")
	require.NoError(t, w.Prepare())

	for day := 1; day <= 5; day++ {
		_, err := w.Write(domain.NewsItem{
			Title:       fmt.Sprintf("AI roundup %d", day),
			Description: "Weekly notes.",
			Link:        fmt.Sprintf("https://example.com/%d", day),
			PublishedAt: time.Date(2025, time.March, day, 12, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts.mdx"), 0o755))

	docs, err := NewArchive(dir, "").Recent(3)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "2025_03_05_ai_roundup_5.mdx", docs[0].Name)
	assert.Equal(t, "AI roundup 5", docs[0].Title)
	assert.Equal(t, "https://example.com/5", docs[0].Link)
	assert.Equal(t, "2025_03_03_ai_roundup_3.mdx", docs[2].Name)

	all, err := NewArchive(dir, ".mdx").Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestArchiveRecentMissingDir(t *testing.T) {
	t.Parallel()

	_, err := NewArchive(filepath.Join(t.TempDir(), "missing"), "").Recent(10)
	assert.Error(t, err)
}

func TestParseDocument(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument([]byte("---\r\ntitle: \"Hi\"\r\ndate: \"2025-01-01T00:00:00.000Z\"\r\nlink: \"https://x.example\"\r\n---\r\n\r\nBody text\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hi", doc.Title)
	assert.Equal(t, "Body text", doc.Body)

	_, err = ParseDocument([]byte("no header here"))
	assert.ErrorIs(t, err, errNoFrontmatter)

	_, err = ParseDocument([]byte("---\ntitle: \"open\"\n"))
	assert.ErrorIs(t, err, errUnclosedFrontmatter)

	_, err = ParseDocument([]byte("---\ntitle: [unterminated\n---\nbody"))
	assert.ErrorContains(t, err, "decode frontmatter")
}
