package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the document QA pipeline.
type Config struct {
	Loader    LoaderConfig    `yaml:"loader"`
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
}

// LoaderConfig holds document loading configuration.
type LoaderConfig struct {
	// DataDir is the flat directory of source documents.
	DataDir string `yaml:"data_dir" env:"DOCRAG_DATA_DIR"`
	// IndexDir holds the persisted vector index. It is a cache: safe to
	// delete and rebuild from DataDir.
	IndexDir string   `yaml:"index_dir" env:"DOCRAG_INDEX_DIR"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	// Enrich runs the information-extraction enricher over each loaded
	// document before indexing.
	Enrich bool `yaml:"enrich" env:"DOCRAG_ENRICH"`
}

// ChunkerConfig holds text splitting configuration.
type ChunkerConfig struct {
	ChunkSize    int `yaml:"chunk_size" env:"DOCRAG_CHUNK_SIZE"`
	ChunkOverlap int `yaml:"chunk_overlap" env:"DOCRAG_CHUNK_OVERLAP"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", "mock"
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string `yaml:"base_url" env:"DOCRAG_EMBEDDING_URL"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
	TimeoutS  int    `yaml:"timeout_seconds"`
}

// LLMConfig holds chat-completion configuration.
type LLMConfig struct {
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url" env:"DOCRAG_LLM_URL"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutS    int     `yaml:"timeout_seconds"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k" env:"DOCRAG_TOP_K"`
	// MinScore filters results below this similarity (0 = disabled).
	MinScore float64 `yaml:"min_score"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Loader: LoaderConfig{
			DataDir:  "data",
			IndexDir: filepath.Join("models", "index"),
			Includes: []string{"*.txt", "*.md", "*.docx", "*.doc", "*.pdf"},
			Excludes: []string{},
			Enrich:   false,
		},
		Chunker: ChunkerConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			BaseURL:   "https://api.openai.com/v1",
			Dimension: 1536,
			BatchSize: 100,
			TimeoutS:  60,
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			BaseURL:     "https://api.openai.com/v1",
			Temperature: 0,
			MaxTokens:   2048,
			TimeoutS:    120,
		},
		Retrieve: RetrieveConfig{
			TopK:     4,
			MinScore: 0, // Disabled by default, see retrieve tests
		},
	}
}

// Load loads configuration from a YAML file, applying defaults for
// missing fields and environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg) // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return applyEnv(cfg)
}

// LoadFromDir loads configuration from a directory (looks for docrag.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "docrag.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".docrag", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return applyEnv(DefaultConfig())
}

// applyEnv overlays environment variables onto the loaded config.
func applyEnv(cfg *Config) (*Config, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IndexDBPath returns the path to the index database inside the index
// directory.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, "index.db")
}

// EnsureIndexDir ensures the index directory exists.
func EnsureIndexDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
