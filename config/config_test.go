package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chunker.ChunkSize != 1000 {
		t.Errorf("expected ChunkSize=1000, got %d", cfg.Chunker.ChunkSize)
	}
	if cfg.Chunker.ChunkOverlap != 200 {
		t.Errorf("expected ChunkOverlap=200, got %d", cfg.Chunker.ChunkOverlap)
	}
	if cfg.Retrieve.TopK != 4 {
		t.Errorf("expected TopK=4, got %d", cfg.Retrieve.TopK)
	}
	if cfg.Retrieve.MinScore != 0 {
		t.Errorf("expected MinScore disabled by default, got %f", cfg.Retrieve.MinScore)
	}
	if cfg.LLM.Temperature != 0 {
		t.Errorf("expected Temperature=0, got %f", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens != 2048 {
		t.Errorf("expected MaxTokens=2048, got %d", cfg.LLM.MaxTokens)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "docrag.yaml")

	content := `
chunker:
  chunk_size: 500
  chunk_overlap: 50
retrieve:
  top_k: 8
  min_score: 0.25
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Chunker.ChunkSize != 500 {
		t.Errorf("expected ChunkSize=500, got %d", cfg.Chunker.ChunkSize)
	}
	if cfg.Retrieve.TopK != 8 {
		t.Errorf("expected TopK=8, got %d", cfg.Retrieve.TopK)
	}
	if cfg.Retrieve.MinScore != 0.25 {
		t.Errorf("expected MinScore=0.25, got %f", cfg.Retrieve.MinScore)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default embedding model, got %s", cfg.Embedding.Model)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DOCRAG_DATA_DIR", "/tmp/docs")
	t.Setenv("DOCRAG_TOP_K", "7")

	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Loader.DataDir != "/tmp/docs" {
		t.Errorf("expected DataDir from env, got %s", cfg.Loader.DataDir)
	}
	if cfg.Retrieve.TopK != 7 {
		t.Errorf("expected TopK=7 from env, got %d", cfg.Retrieve.TopK)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	content := "chunker:\n  chunk_size: 333\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "docrag.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chunker.ChunkSize != 333 {
		t.Errorf("expected ChunkSize=333, got %d", cfg.Chunker.ChunkSize)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "docrag.yaml")

	cfg := DefaultConfig()
	cfg.Retrieve.TopK = 9
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Retrieve.TopK != 9 {
		t.Errorf("expected TopK=9 after reload, got %d", loaded.Retrieve.TopK)
	}
}
