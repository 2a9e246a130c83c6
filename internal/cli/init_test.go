package cli

import (
	"os"
	"path/filepath"
	"testing"

	"docrag/config"
)

func TestScaffold(t *testing.T) {
	dir := t.TempDir()

	if err := scaffold(dir); err != nil {
		t.Fatalf("scaffold: %v", err)
	}

	cfgPath := filepath.Join(dir, "docrag.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
	if cfg.Chunker.ChunkSize != 1000 || cfg.Retrieve.TopK != 4 {
		t.Errorf("scaffolded config lost defaults: %+v", cfg)
	}

	info, err := os.Stat(filepath.Join(dir, cfg.Loader.DataDir))
	if err != nil || !info.IsDir() {
		t.Errorf("data directory not created: %v", err)
	}
}

func TestScaffold_ExistingConfig(t *testing.T) {
	dir := t.TempDir()
	if err := scaffold(dir); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if err := scaffold(dir); err == nil {
		t.Fatal("expected error for existing config")
	}
}
