package usecase

import (
	"sync"

	"docrag/internal/domain"
)

// Session holds one conversation's ordered turns. Turns are append-only
// during the session and cleared only by an explicit Clear. Sessions
// live in memory and are not persisted across restarts.
type Session struct {
	mu    sync.Mutex
	turns []domain.Turn
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Append(role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, domain.Turn{Role: role, Text: text})
}

// Turns returns a copy of the conversation history.
func (s *Session) Turns() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Clear discards the history.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}
