package llm

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type fixedChat struct {
	reply     string
	err       error
	gotPrompt string
}

func (f *fixedChat) Chat(_ context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.reply, f.err
}

func (f *fixedChat) ModelName() string { return "fixed-chat" }

func TestExtract(t *testing.T) {
	chat := &fixedChat{reply: `{"insights":"point one","entities":"Acme","summary":"short"}`}
	ex, err := NewExtractor(chat).Extract(context.Background(), "document body")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if ex.Insights != "point one" || ex.Entities != "Acme" || ex.Summary != "short" {
		t.Errorf("extraction = %+v", ex)
	}
	if !strings.Contains(chat.gotPrompt, "document body") {
		t.Errorf("prompt missing document content:\n%s", chat.gotPrompt)
	}
}

func TestExtract_FencedJSON(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{
			name:  "json fence",
			reply: "```json\n{\"insights\":\"i\",\"entities\":\"e\",\"summary\":\"s\"}\n```",
		},
		{
			name:  "bare fence",
			reply: "```\n{\"insights\":\"i\",\"entities\":\"e\",\"summary\":\"s\"}\n```",
		},
		{
			name:  "surrounding whitespace",
			reply: "  \n{\"insights\":\"i\",\"entities\":\"e\",\"summary\":\"s\"}\n  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := NewExtractor(&fixedChat{reply: tt.reply}).Extract(context.Background(), "x")
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if ex.Insights != "i" || ex.Entities != "e" || ex.Summary != "s" {
				t.Errorf("extraction = %+v", ex)
			}
		})
	}
}

func TestExtract_MissingField(t *testing.T) {
	chat := &fixedChat{reply: `{"insights":"i","entities":"e"}`}
	if _, err := NewExtractor(chat).Extract(context.Background(), "x"); err == nil {
		t.Fatal("expected error for missing summary field")
	}
}

func TestExtract_InvalidJSON(t *testing.T) {
	chat := &fixedChat{reply: "Sure! Here are the insights: ..."}
	if _, err := NewExtractor(chat).Extract(context.Background(), "x"); err == nil {
		t.Fatal("expected error for non-JSON reply")
	}
}

func TestExtract_ChatError(t *testing.T) {
	chat := &fixedChat{err: fmt.Errorf("timeout")}
	_, err := NewExtractor(chat).Extract(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "extraction call failed") {
		t.Errorf("err = %v, want wrapped chat error", err)
	}
}
