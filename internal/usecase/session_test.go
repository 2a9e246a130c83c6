package usecase

import (
	"testing"

	"docrag/internal/domain"
)

func TestSession(t *testing.T) {
	s := NewSession()
	s.Append(domain.RoleUser, "hello")
	s.Append(domain.RoleAssistant, "hi")

	turns := s.Turns()
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}

	// Turns returns a copy; mutating it must not affect the session.
	turns[0].Text = "mutated"
	if s.Turns()[0].Text != "hello" {
		t.Error("Turns exposed internal storage")
	}

	s.Clear()
	if len(s.Turns()) != 0 {
		t.Error("Clear left turns behind")
	}
}
