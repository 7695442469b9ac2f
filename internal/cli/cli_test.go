package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Lab</title>
<item><title>AI model card guidance</title><link>https://lab.example.com/cards</link><description>How to publish one.</description><pubDate>Wed, 02 Apr 2025 09:00:00 GMT</pubDate></item>
<item><title>Deep learning recap</title><link>https://lab.example.com/recap</link><description>Notes.</description><pubDate>Thu, 03 Apr 2025 09:00:00 GMT</pubDate></item>
<item><title>Cafeteria menu</title><link>https://lab.example.com/menu</link><description>Soup.</description></item>
</channel></rss>`

func setupCLITest(t *testing.T) (configPath, outDir string) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testFeed)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	configPath = filepath.Join(dir, "ainews.yaml")
	outDir = filepath.Join(dir, "news")
	body := fmt.Sprintf("logging:\n  level: info\nsources:\n  - kind: feed\n    url: %s/feed.xml\n", srv.URL)
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))

	t.Setenv("AINEWS_CONFIG", "")
	t.Setenv("AINEWS_OUTPUT_DIR", "")
	t.Setenv("AINEWS_LOG_LEVEL", "")
	t.Setenv("NO_COLOR", "1")

	return configPath, outDir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootRunsAggregation(t *testing.T) {
	configPath, outDir := setupCLITest(t)

	stdout, _, err := execute(t, "--config", configPath, "--output", outDir)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Contains(t, stdout, "AI news aggregation completed")
	assert.Contains(t, stdout, `title="Cafeteria menu"`)
	assert.Contains(t, stdout, "[OK] 2 documents written to "+outDir)
}

func TestRecentListsWrittenDocuments(t *testing.T) {
	configPath, outDir := setupCLITest(t)

	_, _, err := execute(t, "run", "--config", configPath, "--output", outDir, "--log-level", "error")
	require.NoError(t, err)

	stdout, _, err := execute(t, "recent", "--config", configPath, "--output", outDir, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Recent documents")
	assert.Contains(t, stdout, "Deep learning recap")
	assert.Contains(t, stdout, "2025-04-03")
	assert.NotContains(t, stdout, "AI model card guidance")
}

func TestRecentEmptyDirectory(t *testing.T) {
	configPath, outDir := setupCLITest(t)
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	stdout, _, err := execute(t, "recent", "--config", configPath, "--output", outDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "[WARN] no documents in "+outDir)
}

func TestSourcesPrintsRegistry(t *testing.T) {
	_, _ = setupCLITest(t)

	stdout, _, err := execute(t, "sources")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sources")
	assert.Contains(t, stdout, "https://techcrunch.com/category/artificial-intelligence/feed/")
	assert.Contains(t, stdout, "div.article-card")
}

func TestRootRejectsBadInput(t *testing.T) {
	configPath, _ := setupCLITest(t)

	_, _, err := execute(t, "--config", configPath, "--log-level", "loud")
	assert.ErrorContains(t, err, `invalid log level "loud"`)

	_, _, err = execute(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "loading config")

	_, _, err = execute(t, "--config", configPath, "--output", " ")
	assert.ErrorContains(t, err, "output directory is empty")

	_, _, err = execute(t, "unexpected-arg")
	assert.Error(t, err)
}
