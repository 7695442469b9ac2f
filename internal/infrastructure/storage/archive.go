package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultWindow is how many documents the site generator renders.
const DefaultWindow = 100

var (
	errNoFrontmatter       = errors.New("document has no frontmatter")
	errUnclosedFrontmatter = errors.New("frontmatter is not closed")
)

// Document is a persisted news item read back from disk.
type Document struct {
	Name  string `yaml:"-"`
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
	Link  string `yaml:"link"`
	Body  string `yaml:"-"`
}

// Archive reads the output directory the way the site generator does.
type Archive struct {
	dir string
	ext string
}

// NewArchive reads documents with ext (DefaultExtension when empty) from dir.
func NewArchive(dir, ext string) *Archive {
	return &Archive{dir: dir, ext: normalizeExt(ext)}
}

// Recent returns up to limit documents ordered by filename, newest first.
// A non-positive limit means DefaultWindow.
func (a *Archive) Recent(limit int) ([]Document, error) {
	if limit <= 0 {
		limit = DefaultWindow
	}

	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", a.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), a.ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if len(names) > limit {
		names = names[:limit]
	}

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(a.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", name, err)
		}
		doc, err := ParseDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("parse document %s: %w", name, err)
		}
		doc.Name = name
		docs = append(docs, doc)
	}

	return docs, nil
}

// ParseDocument splits the YAML frontmatter from the body.
func ParseDocument(raw []byte) (Document, error) {
	const fence = "---\n"

	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(raw, []byte(fence)) {
		return Document{}, errNoFrontmatter
	}
	rest := raw[len(fence):]

	end := bytes.Index(rest, []byte("\n"+fence))
	if end < 0 {
		return Document{}, errUnclosedFrontmatter
	}

	var doc Document
	if err := yaml.Unmarshal(rest[:end], &doc); err != nil {
		return Document{}, fmt.Errorf("decode frontmatter: %w", err)
	}
	doc.Body = strings.TrimSpace(string(rest[end+1+len(fence):]))

	return doc, nil
}
