package domain

// Document is one ingested source file after extraction and cleaning.
// Content is always non-empty; documents that clean down to nothing are
// dropped by the loader before they enter the pipeline.
type Document struct {
	Content  string
	Metadata map[string]string
}

// Source returns the original filename recorded by the loader.
func (d Document) Source() string {
	return d.Metadata["source"]
}

// Chunk is a bounded slice of a document's content. Metadata is the
// parent document's metadata, unmodified.
type Chunk struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	Chunk
	Score float64
}

// Answer is the result of one RAG query: the generated text plus the
// exact chunks that filled the prompt's context slot, in retrieval order.
type Answer struct {
	Text    string
	Sources []ScoredChunk
}

// Turn is one entry of a session's conversation history.
type Turn struct {
	Role string
	Text string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Extraction is the structured output of the document enricher.
// All three fields are required; a response missing any of them is
// rejected rather than partially applied.
type Extraction struct {
	Insights string `json:"insights"`
	Entities string `json:"entities"`
	Summary  string `json:"summary"`
}

// Stats describes a built index.
type Stats struct {
	TotalDocs   int
	TotalChunks int
	AvgChunkLen float64
}
