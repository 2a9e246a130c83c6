package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"docrag/internal/domain"
	"docrag/internal/port"
)

var (
	bucketEntries  = []byte("entries")
	bucketManifest = []byte("manifest")
	keyManifest    = []byte("info")
)

const schemaVersion = 1

// Manifest records what an index was built from, so an incompatible
// index is detected at load time and rebuilt instead of queried.
type Manifest struct {
	SchemaVersion int    `json:"schema_version"`
	Model         string `json:"model"`
	Dimension     int    `json:"dimension"`
	ChunkCount    int    `json:"chunk_count"`
	CreatedAt     int64  `json:"created_at"`
}

type storedEntry struct {
	Vector   []float32         `json:"v"`
	Text     string            `json:"t"`
	Metadata map[string]string `json:"m,omitempty"`
}

type entry struct {
	vector   []float32
	text     string
	metadata map[string]string
}

// Index is an immutable in-memory snapshot of one persisted index
// generation. Rebuilds produce a new Index; the driver swaps handles
// after a successful build, so readers never observe a half-written
// index.
type Index struct {
	manifest Manifest
	entries  map[string]entry
}

// ProgressFunc reports build progress: chunks embedded so far out of
// the total.
type ProgressFunc func(processed, total int)

// Build embeds every chunk, persists the complete index (vectors, chunk
// text, metadata) at path, and returns a handle over it. The index is
// written to a temporary file and renamed into place, atomically
// replacing any previous index. An embedding failure aborts the build;
// nothing is persisted.
func Build(ctx context.Context, path string, chunks []domain.Chunk, embedder port.Embedder, batchSize int, progress ProgressFunc) (*Index, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("build: %w", domain.ErrNoDocuments)
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	entries := make(map[string]entry, len(chunks))
	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[i:end]

		texts := make([]string, len(batch))
		for j, c := range batch {
			texts[j] = c.Text
		}

		vectors, err := embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding failed: %w", err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(batch))
		}

		for j, c := range batch {
			if len(vectors[j]) != embedder.Dimension() {
				return nil, fmt.Errorf("vector dimension mismatch: expected %d, got %d", embedder.Dimension(), len(vectors[j]))
			}
			entries[c.ID] = entry{
				vector:   vectors[j],
				text:     c.Text,
				metadata: c.Metadata,
			}
		}

		if progress != nil {
			progress(end, len(chunks))
		}
	}

	manifest := Manifest{
		SchemaVersion: schemaVersion,
		Model:         embedder.ModelName(),
		Dimension:     embedder.Dimension(),
		ChunkCount:    len(entries),
		CreatedAt:     time.Now().Unix(),
	}

	if err := persist(path, manifest, entries); err != nil {
		return nil, err
	}

	return &Index{manifest: manifest, entries: entries}, nil
}

// persist writes the full index to path+".tmp" and renames it over
// path.
func persist(path string, manifest Manifest, entries map[string]entry) error {
	tmp := path + ".tmp"
	_ = os.Remove(tmp)

	db, err := bbolt.Open(tmp, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		eb, err := tx.CreateBucketIfNotExists(bucketEntries)
		if err != nil {
			return err
		}
		mb, err := tx.CreateBucketIfNotExists(bucketManifest)
		if err != nil {
			return err
		}

		for id, e := range entries {
			data, err := json.Marshal(storedEntry{
				Vector:   e.vector,
				Text:     e.text,
				Metadata: e.metadata,
			})
			if err != nil {
				return err
			}
			if err := eb.Put([]byte(id), data); err != nil {
				return err
			}
		}

		data, err := json.Marshal(manifest)
		if err != nil {
			return err
		}
		return mb.Put(keyManifest, data)
	})
	if err != nil {
		db.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write index: %w", err)
	}

	if err := db.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close index file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace index: %w", err)
	}

	return nil
}

// Open loads a previously persisted index. It returns an error wrapping
// domain.ErrIndexAbsent when the file is missing, unreadable, or was
// built with an incompatible schema, model or dimension — the caller
// rebuilds instead of crashing.
func Open(path, model string, dimension int) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexAbsent, path)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable index file: %v", domain.ErrIndexAbsent, err)
	}
	defer db.Close()

	var manifest Manifest
	entries := make(map[string]entry)

	err = db.View(func(tx *bbolt.Tx) error {
		mb := tx.Bucket(bucketManifest)
		if mb == nil {
			return fmt.Errorf("manifest bucket missing")
		}
		data := mb.Get(keyManifest)
		if data == nil {
			return fmt.Errorf("manifest missing")
		}
		if err := json.Unmarshal(data, &manifest); err != nil {
			return fmt.Errorf("manifest corrupt: %v", err)
		}
		if manifest.SchemaVersion != schemaVersion {
			return fmt.Errorf("schema version %d, want %d", manifest.SchemaVersion, schemaVersion)
		}
		if manifest.Model != model {
			return fmt.Errorf("built with model %q, configured %q", manifest.Model, model)
		}
		if manifest.Dimension != dimension {
			return fmt.Errorf("built with dimension %d, configured %d", manifest.Dimension, dimension)
		}

		eb := tx.Bucket(bucketEntries)
		if eb == nil {
			return fmt.Errorf("entries bucket missing")
		}
		return eb.ForEach(func(k, v []byte) error {
			var stored storedEntry
			if err := json.Unmarshal(v, &stored); err != nil {
				return fmt.Errorf("entry corrupt: %v", err)
			}
			entries[string(k)] = entry{
				vector:   stored.Vector,
				text:     stored.Text,
				metadata: stored.Metadata,
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexAbsent, err)
	}

	return &Index{manifest: manifest, entries: entries}, nil
}

// Search returns the top-k entries by cosine similarity to the query
// vector, in descending score order. Requesting more entries than the
// index holds returns all of them. A positive minScore filters results
// below it; zero disables the threshold.
func (ix *Index) Search(query []float32, k int, minScore float64) ([]domain.ScoredChunk, error) {
	if len(query) != ix.manifest.Dimension {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", ix.manifest.Dimension, len(query))
	}
	if k <= 0 {
		return nil, nil
	}

	scored := make([]domain.ScoredChunk, 0, len(ix.entries))
	for id, e := range ix.entries {
		score := cosineSimilarity(query, e.vector)
		if minScore > 0 && score < minScore {
			continue
		}
		scored = append(scored, domain.ScoredChunk{
			Chunk: domain.Chunk{ID: id, Text: e.text, Metadata: e.metadata},
			Score: score,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Stats reports the size of the loaded index. Document count is the
// number of distinct sources across the stored chunks.
func (ix *Index) Stats() domain.Stats {
	totalLen := 0
	sources := make(map[string]struct{})
	for _, e := range ix.entries {
		totalLen += len(e.text)
		if src := e.metadata["source"]; src != "" {
			sources[src] = struct{}{}
		}
	}
	avg := 0.0
	if len(ix.entries) > 0 {
		avg = float64(totalLen) / float64(len(ix.entries))
	}
	return domain.Stats{
		TotalDocs:   len(sources),
		TotalChunks: len(ix.entries),
		AvgChunkLen: avg,
	}
}

// Manifest returns the manifest the index was built with.
func (ix *Index) Manifest() Manifest {
	return ix.manifest
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
