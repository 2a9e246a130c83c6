package port

import (
	"context"

	"docrag/internal/domain"
)

// ChatModel is a chat-completion language model.
type ChatModel interface {
	// Chat sends the prompt and returns the model's reply.
	Chat(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}

// Enricher extracts structured information from a document's content.
// Enrichment is strictly additive: callers keep the original document
// when extraction fails.
type Enricher interface {
	Extract(ctx context.Context, content string) (domain.Extraction, error)
}
