package cli

import (
	"fmt"
	"time"

	"docrag/config"
	"docrag/internal/adapter/chunker"
	"docrag/internal/adapter/embedding"
	"docrag/internal/adapter/llm"
	"docrag/internal/adapter/loader"
	"docrag/internal/port"
	"docrag/internal/usecase"
)

// newEngine wires the pipeline from config. The chat model is only
// constructed when the command generates answers, so retrieval-only
// commands work without it.
func newEngine(cfg *config.Config, needChat bool) (*usecase.Engine, error) {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	var chat port.ChatModel
	if needChat || cfg.Loader.Enrich {
		chat, err = llm.NewOpenAIChat(llm.Options{
			Model:       cfg.LLM.Model,
			APIKeyEnv:   cfg.LLM.APIKeyEnv,
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     time.Duration(cfg.LLM.TimeoutS) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
	}

	var enricher port.Enricher
	if cfg.Loader.Enrich {
		enricher = llm.NewExtractor(chat)
	}

	docs := loader.NewDirectory(cfg.Loader.DataDir, cfg.Loader.Includes, cfg.Loader.Excludes, enricher)
	splitter := chunker.NewRecursive(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)

	return usecase.NewEngine(usecase.EngineParams{
		Loader:    docs,
		Chunker:   splitter,
		Embedder:  embedder,
		Chat:      chat,
		IndexPath: config.IndexDBPath(cfg.Loader.IndexDir),
		TopK:      cfg.Retrieve.TopK,
		MinScore:  cfg.Retrieve.MinScore,
		BatchSize: cfg.Embedding.BatchSize,
	}), nil
}

func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	opts := embedding.Options{
		Model:     cfg.Embedding.Model,
		APIKeyEnv: cfg.Embedding.APIKeyEnv,
		BaseURL:   cfg.Embedding.BaseURL,
		Dimension: cfg.Embedding.Dimension,
		BatchSize: cfg.Embedding.BatchSize,
		Timeout:   time.Duration(cfg.Embedding.TimeoutS) * time.Second,
	}

	switch cfg.Embedding.Provider {
	case "openai":
		return embedding.NewOpenAIEmbedder(opts)
	case "ollama":
		return embedding.NewOllamaEmbedder(opts)
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
}

