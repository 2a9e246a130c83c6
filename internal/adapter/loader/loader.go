package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"docrag/internal/domain"
	"docrag/internal/port"
)

// extractFunc extracts cleaned text and type metadata from one file.
type extractFunc func(path string) (string, map[string]string, error)

// extractors maps supported extensions to their extraction functions.
// Files with any other extension are silently skipped.
var extractors = map[string]extractFunc{
	".txt":  extractText,
	".md":   extractText,
	".docx": extractDocx,
	".doc":  extractDocx,
	".pdf":  extractPDF,
}

// Directory loads documents from a flat directory, one document per
// recognized file. Order follows the directory listing and is not
// guaranteed stable across operating systems.
type Directory struct {
	dir      string
	includes []string
	excludes []string
	enricher port.Enricher
}

// NewDirectory creates a directory loader. Include and exclude patterns
// are doublestar globs matched against filenames; empty includes match
// everything. A nil enricher disables enrichment.
func NewDirectory(dir string, includes, excludes []string, enricher port.Enricher) *Directory {
	return &Directory{
		dir:      dir,
		includes: includes,
		excludes: excludes,
		enricher: enricher,
	}
}

// Load scans the directory and extracts one document per supported
// file. A failure to extract one file is recorded and skipped; it never
// aborts the scan. Documents whose cleaned content is empty are
// dropped.
func (l *Directory) Load(ctx context.Context) (port.LoadResult, error) {
	var result port.LoadResult

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return result, fmt.Errorf("failed to read directory %s: %w", l.dir, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		extract, ok := extractors[strings.ToLower(filepath.Ext(name))]
		if !ok {
			continue
		}
		if !l.shouldInclude(name) || l.shouldExclude(name) {
			continue
		}
		result.FilesFound++

		path := filepath.Join(l.dir, name)
		content, meta, err := extract(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}

		meta["source"] = name
		meta["path"] = path

		doc := domain.Document{Content: content, Metadata: meta}
		if l.enricher != nil {
			doc = l.enrich(ctx, doc, &result)
		}

		result.Documents = append(result.Documents, doc)
	}

	return result, nil
}

// enrich appends the extractor's insights, entities and summary to the
// document content. Enrichment is additive: on any failure the original
// document is returned unchanged and the failure is recorded as a
// warning.
func (l *Directory) enrich(ctx context.Context, doc domain.Document, result *port.LoadResult) domain.Document {
	ex, err := l.enricher.Extract(ctx, doc.Content)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("enrich %s: %v (kept original)", doc.Source(), err))
		return doc
	}

	meta := make(map[string]string, len(doc.Metadata)+1)
	for k, v := range doc.Metadata {
		meta[k] = v
	}
	meta["enriched"] = "true"

	content := fmt.Sprintf(
		"Original Content:\n%s\n\nKey Insights:\n%s\n\nImportant Entities:\n%s\n\nSummary:\n%s",
		doc.Content, ex.Insights, ex.Entities, ex.Summary,
	)

	return domain.Document{Content: content, Metadata: meta}
}

func (l *Directory) shouldInclude(name string) bool {
	if len(l.includes) == 0 {
		return true
	}
	for _, pattern := range l.includes {
		matched, err := doublestar.Match(pattern, name)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (l *Directory) shouldExclude(name string) bool {
	for _, pattern := range l.excludes {
		matched, err := doublestar.Match(pattern, name)
		if err == nil && matched {
			return true
		}
	}
	return false
}
