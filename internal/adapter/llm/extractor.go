package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"docrag/internal/domain"
	"docrag/internal/port"
)

const extractPrompt = `Extract structured information from the text below.
Respond with a JSON object containing exactly these keys:
  "insights": key insights and main points
  "entities": important entities and concepts
  "summary": a concise summary

Respond with the JSON object only, no surrounding prose.

Text:
%s`

// Extractor asks a chat model for insights, entities and a summary of
// a document. The response is validated immediately: a reply missing
// any required field is an error, never a partial result.
type Extractor struct {
	chat port.ChatModel
}

func NewExtractor(chat port.ChatModel) *Extractor {
	return &Extractor{chat: chat}
}

func (e *Extractor) Extract(ctx context.Context, content string) (domain.Extraction, error) {
	var ex domain.Extraction

	reply, err := e.chat.Chat(ctx, fmt.Sprintf(extractPrompt, content))
	if err != nil {
		return ex, fmt.Errorf("extraction call failed: %w", err)
	}

	if err := json.Unmarshal([]byte(stripFences(reply)), &ex); err != nil {
		return ex, fmt.Errorf("extraction returned invalid JSON: %w", err)
	}

	if ex.Insights == "" || ex.Entities == "" || ex.Summary == "" {
		return domain.Extraction{}, fmt.Errorf("extraction response missing required fields")
	}

	return ex, nil
}

// stripFences removes a markdown code fence if the model wrapped its
// JSON in one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
