package session

import (
	"testing"

	"github.com/user/llmcli/pkg/llm"
)

func TestSetSystemKeepsSingleSystemMessage(t *testing.T) {
	s := New()
	s.Add(llm.RoleUser, "hi")
	s.SetSystem("first")
	s.SetSystem("second")

	systems := 0
	for _, msg := range s.Messages {
		if msg.Role == llm.RoleSystem {
			systems++
		}
	}
	if systems != 1 {
		t.Fatalf("expected exactly one system message, got %d", systems)
	}
	if s.Messages[0].Role != llm.RoleSystem || s.Messages[0].Content != "second" {
		t.Errorf("expected latest system prompt at position 0, got %+v", s.Messages[0])
	}
	if s.Messages[1].Content != "hi" {
		t.Errorf("user message lost: %+v", s.Messages)
	}
}

func TestSetSystemOnEmptySession(t *testing.T) {
	s := New()
	s.SetSystem("be terse")

	if len(s.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(s.Messages))
	}
	if s.Messages[0].Role != llm.RoleSystem || s.Messages[0].Content != "be terse" {
		t.Errorf("unexpected message: %+v", s.Messages[0])
	}
}

func TestClearRemovesEverything(t *testing.T) {
	s := New()
	s.SetSystem("sys")
	s.Add(llm.RoleUser, "hi")
	s.Add(llm.RoleAssistant, "hello")

	s.Clear()
	if len(s.Messages) != 0 {
		t.Errorf("expected empty transcript, got %d messages", len(s.Messages))
	}
}

func TestSystemLookup(t *testing.T) {
	s := New()
	if _, ok := s.System(); ok {
		t.Error("expected no system prompt on empty session")
	}

	s.SetSystem("be terse")
	got, ok := s.System()
	if !ok || got != "be terse" {
		t.Errorf("expected 'be terse', got %q (ok=%v)", got, ok)
	}
}
