package port

import (
	"context"

	"docrag/internal/domain"
)

// DocumentLoader reads a source directory and produces cleaned documents.
type DocumentLoader interface {
	// Load scans the directory and returns one document per readable
	// supported file. Per-file failures are recorded in the result and
	// never abort the scan.
	Load(ctx context.Context) (LoadResult, error)
}

// LoadResult reports what a directory scan produced.
type LoadResult struct {
	Documents []domain.Document
	// FilesFound counts supported files seen, including ones that were
	// later skipped or dropped.
	FilesFound int
	// Errors holds one message per file that failed extraction.
	Errors []string
}
