package domain

import "errors"

var (
	// ErrIndexAbsent signals that no usable persisted index exists at the
	// configured location: missing, empty, corrupted, or built with an
	// incompatible schema or embedding model. Callers rebuild instead of
	// crashing.
	ErrIndexAbsent = errors.New("index absent")

	// ErrNotReady is returned for queries issued before an index has been
	// loaded or built.
	ErrNotReady = errors.New("no index loaded: process documents first")

	// ErrNoDocuments is returned when a build finds nothing to index.
	// An empty index is never persisted.
	ErrNoDocuments = errors.New("no documents loaded")
)
