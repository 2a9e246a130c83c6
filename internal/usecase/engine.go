package usecase

import (
	"context"
	"fmt"
	"sync"

	"docrag/internal/adapter/store"
	"docrag/internal/domain"
	"docrag/internal/port"
)

// State is the engine's position in its lifecycle.
type State int

const (
	StateNoIndex State = iota
	StateLoading
	StateIndexing
	StateReady
	StateRebuilding
)

func (s State) String() string {
	switch s {
	case StateNoIndex:
		return "no-index"
	case StateLoading:
		return "loading"
	case StateIndexing:
		return "indexing"
	case StateReady:
		return "ready"
	case StateRebuilding:
		return "rebuilding"
	default:
		return "unknown"
	}
}

// EngineParams wires the engine's collaborators.
type EngineParams struct {
	Loader    port.DocumentLoader
	Chunker   port.Chunker
	Embedder  port.Embedder
	Chat      port.ChatModel
	IndexPath string
	TopK      int
	MinScore  float64
	BatchSize int
}

// Engine orchestrates the pipeline: load-or-rebuild the index, then
// answer queries against it. It holds the current index generation
// behind a mutex; a rebuild prepares the next generation off to the
// side and swaps it in only after a successful build, so queries never
// observe a half-written index.
type Engine struct {
	loader    port.DocumentLoader
	chunker   port.Chunker
	embedder  port.Embedder
	indexPath string
	minScore  float64
	batchSize int
	answerer  *Answerer

	mu       sync.Mutex
	state    State
	index    *store.Index
	building bool
}

func NewEngine(p EngineParams) *Engine {
	e := &Engine{
		loader:    p.Loader,
		chunker:   p.Chunker,
		embedder:  p.Embedder,
		indexPath: p.IndexPath,
		minScore:  p.MinScore,
		batchSize: p.BatchSize,
		state:     StateNoIndex,
	}
	e.answerer = NewAnswerer(e, p.Chat, p.TopK)
	return e
}

// State reports the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Stats reports the current index size, if one is loaded.
func (e *Engine) Stats() (domain.Stats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index == nil {
		return domain.Stats{}, false
	}
	return e.index.Stats(), true
}

// Open attempts to load a previously persisted index. On success the
// engine is Ready without re-reading source documents. An absent index
// is reported as domain.ErrIndexAbsent; the caller decides to rebuild.
func (e *Engine) Open(_ context.Context) error {
	idx, err := store.Open(e.indexPath, e.embedder.ModelName(), e.embedder.Dimension())
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.index = idx
	e.state = StateReady
	e.mu.Unlock()
	return nil
}

// RebuildResult reports what a rebuild processed.
type RebuildResult struct {
	FilesFound      int
	DocumentsLoaded int
	ChunksCreated   int
	Warnings        []string
}

// Rebuild re-runs the full pipeline: load documents, chunk, embed,
// persist, then swap the new index in. A previously loaded index keeps
// serving queries until the swap. If the build fails, the previous
// generation (if any) remains in place.
func (e *Engine) Rebuild(ctx context.Context, progress store.ProgressFunc) (*RebuildResult, error) {
	e.mu.Lock()
	if e.building {
		e.mu.Unlock()
		return nil, fmt.Errorf("rebuild already in progress")
	}
	e.building = true
	if e.index == nil {
		e.state = StateLoading
	} else {
		e.state = StateRebuilding
	}
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.building = false
		if e.index != nil {
			e.state = StateReady
		} else {
			e.state = StateNoIndex
		}
		e.mu.Unlock()
	}()

	loaded, err := e.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading failed: %w", err)
	}

	result := &RebuildResult{
		FilesFound:      loaded.FilesFound,
		DocumentsLoaded: len(loaded.Documents),
		Warnings:        loaded.Errors,
	}
	if len(loaded.Documents) == 0 {
		return result, domain.ErrNoDocuments
	}

	e.mu.Lock()
	if e.index == nil {
		e.state = StateIndexing
	}
	e.mu.Unlock()

	var chunks []domain.Chunk
	for _, doc := range loaded.Documents {
		docChunks, err := e.chunker.Chunk(doc)
		if err != nil {
			return result, fmt.Errorf("chunking %s failed: %w", doc.Source(), err)
		}
		chunks = append(chunks, docChunks...)
	}
	result.ChunksCreated = len(chunks)

	idx, err := store.Build(ctx, e.indexPath, chunks, e.embedder, e.batchSize, progress)
	if err != nil {
		return result, fmt.Errorf("index build failed: %w", err)
	}

	e.mu.Lock()
	e.index = idx
	e.state = StateReady
	e.mu.Unlock()

	return result, nil
}

// currentIndex returns the index generation serving queries, or nil.
func (e *Engine) currentIndex() *store.Index {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// Retrieve embeds the query and searches the current index. Queries
// before an index is available are rejected with domain.ErrNotReady.
func (e *Engine) Retrieve(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error) {
	idx := e.currentIndex()
	if idx == nil {
		return nil, domain.ErrNotReady
	}

	vectors, err := e.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding returned empty result")
	}

	return idx.Search(vectors[0], k, e.minScore)
}

// NewSession starts an empty conversation.
func (e *Engine) NewSession() *Session {
	return NewSession()
}

// Ask answers one query and, when a session is given, appends the
// question and answer to its history. The session is only updated on
// success.
func (e *Engine) Ask(ctx context.Context, session *Session, query string) (domain.Answer, error) {
	if e.currentIndex() == nil {
		return domain.Answer{}, domain.ErrNotReady
	}

	answer, err := e.answerer.Ask(ctx, query)
	if err != nil {
		return domain.Answer{}, err
	}

	if session != nil {
		session.Append(domain.RoleUser, query)
		session.Append(domain.RoleAssistant, answer.Text)
	}

	return answer, nil
}
