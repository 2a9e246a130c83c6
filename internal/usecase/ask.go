package usecase

import (
	"context"
	"fmt"
	"strings"

	"docrag/internal/domain"
	"docrag/internal/port"
)

// answerPrompt instructs the model to answer strictly from the supplied
// context. The fallback sentence is a prompt-level instruction, not a
// code-enforced guarantee.
const answerPrompt = `Use the following pieces of context to answer the question. If you don't know the answer based on the context, say "I don't have enough information to answer that."

Context:
%s

Question: %s

Answer: `

// Answerer runs one retrieval-augmented generation: retrieve top-k
// chunks, fill the prompt template, call the chat model, and return the
// answer together with the exact chunks used.
type Answerer struct {
	retriever port.Retriever
	chat      port.ChatModel
	topK      int
}

func NewAnswerer(retriever port.Retriever, chat port.ChatModel, topK int) *Answerer {
	if topK <= 0 {
		topK = 4
	}
	return &Answerer{
		retriever: retriever,
		chat:      chat,
		topK:      topK,
	}
}

// Ask answers the query from indexed content. Retrieval and generation
// errors surface to the caller: an unanswered query must be
// distinguishable from an "insufficient context" answer.
func (a *Answerer) Ask(ctx context.Context, query string) (domain.Answer, error) {
	if a.chat == nil {
		return domain.Answer{}, fmt.Errorf("no chat model configured")
	}

	chunks, err := a.retriever.Retrieve(ctx, query, a.topK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieval failed: %w", err)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	prompt := fmt.Sprintf(answerPrompt, strings.Join(texts, "\n\n"), query)

	reply, err := a.chat.Chat(ctx, prompt)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("generation failed: %w", err)
	}

	return domain.Answer{
		Text:    strings.TrimSpace(reply),
		Sources: chunks,
	}, nil
}
