package port

import (
	"context"

	"docrag/internal/domain"
)

// Retriever finds the chunks most similar to a query.
type Retriever interface {
	// Retrieve returns up to k chunks ordered by descending similarity.
	// Asking for more chunks than the index holds is not an error.
	Retrieve(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error)
}
