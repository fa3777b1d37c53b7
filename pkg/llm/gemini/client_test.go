package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/user/llmcli/pkg/llm"
)

func newTestChatbot(t *testing.T, serverURL string) *Chatbot {
	t.Helper()
	c, err := New("gemini-1.5-flash", "test-key")
	if err != nil {
		t.Fatal(err)
	}
	c.url = serverURL
	return c
}

func TestNewValidatesModel(t *testing.T) {
	if _, err := New("not-a-real-model", "key"); !errors.Is(err, llm.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestNewResolvesAPIKey(t *testing.T) {
	t.Setenv(apiKeyEnv, "")
	if _, err := New("gemini-1.5-flash", ""); !errors.Is(err, llm.ErrAPIKeyMissing) {
		t.Errorf("expected ErrAPIKeyMissing, got %v", err)
	}

	t.Setenv(apiKeyEnv, "env-key")
	c, err := New("gemini-1.5-flash", "")
	if err != nil {
		t.Fatal(err)
	}
	if c.apiKey != "env-key" {
		t.Errorf("expected env fallback key, got %q", c.apiKey)
	}

	// An explicit key wins over the environment.
	c, err = New("gemini-1.5-flash", "explicit-key")
	if err != nil {
		t.Fatal(err)
	}
	if c.apiKey != "explicit-key" {
		t.Errorf("expected explicit key, got %q", c.apiKey)
	}
}

func TestSwitchModel(t *testing.T) {
	c, err := New("gemini-1.5-flash", "key")
	if err != nil {
		t.Fatal(err)
	}

	if err := c.SwitchModel("gemini-1.5-pro"); err != nil {
		t.Fatal(err)
	}
	if c.Model() != "Gemini 1.5 Pro" {
		t.Errorf("expected 'Gemini 1.5 Pro', got %q", c.Model())
	}
	urlAfterSwitch := c.url

	// A failed switch leaves model and URL untouched.
	if err := c.SwitchModel("not-a-real-model"); !errors.Is(err, llm.ErrInvalidModel) {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
	if c.Model() != "Gemini 1.5 Pro" {
		t.Errorf("model changed on failed switch: %q", c.Model())
	}
	if c.url != urlAfterSwitch {
		t.Errorf("url changed on failed switch")
	}
}

func TestSwitchModelCoversCatalog(t *testing.T) {
	c, err := New("gemini-1.5-flash", "key")
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range c.AvailableModels() {
		if err := c.SwitchModel(id); err != nil {
			t.Errorf("switch to %q: %v", id, err)
		}
	}
}

func TestSendMessageRequestFormat(t *testing.T) {
	var got wireRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type 'application/json', got %q", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, frame("ok"))
	}))
	defer server.Close()

	c := newTestChatbot(t, server.URL)
	stream, err := c.SendMessage(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "be terse"},
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "hello"},
		{Role: llm.RoleUser, Content: "bye"},
	})
	if err != nil {
		t.Fatal(err)
	}
	for range stream {
	}

	if got.SystemInstruction == nil || len(got.SystemInstruction.Parts) != 1 || got.SystemInstruction.Parts[0].Text != "be terse" {
		t.Errorf("system message not extracted into system_instruction: %+v", got.SystemInstruction)
	}
	wantRoles := []string{"user", "model", "user"}
	wantTexts := []string{"hi", "hello", "bye"}
	if len(got.Contents) != len(wantRoles) {
		t.Fatalf("expected %d contents, got %d", len(wantRoles), len(got.Contents))
	}
	for i := range wantRoles {
		if got.Contents[i].Role != wantRoles[i] {
			t.Errorf("content %d: expected role %q, got %q", i, wantRoles[i], got.Contents[i].Role)
		}
		if got.Contents[i].Parts[0].Text != wantTexts[i] {
			t.Errorf("content %d: expected text %q, got %q", i, wantTexts[i], got.Contents[i].Parts[0].Text)
		}
	}
}

func TestSendMessageStreams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, frame("Hello")+frame(" world"))
	}))
	defer server.Close()

	c := newTestChatbot(t, server.URL)
	stream, err := c.SendMessage(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatal(err)
	}

	var texts []string
	for chunk := range stream {
		if chunk.Err != nil {
			t.Fatalf("unexpected chunk error: %v", chunk.Err)
		}
		texts = append(texts, chunk.Text)
	}
	if len(texts) != 2 || texts[0] != "Hello" || texts[1] != " world" {
		t.Errorf("unexpected increments: %q", texts)
	}
}

func TestSendMessageServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":400,"message":"bad request"}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	c := newTestChatbot(t, server.URL)
	_, err := c.SendMessage(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})

	var serverErr *llm.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", serverErr.StatusCode)
	}
	if serverErr.Body == "" {
		t.Error("expected error body to be preserved")
	}
}

func TestSendMessageNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := newTestChatbot(t, server.URL)
	_, err := c.SendMessage(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})

	var netErr *llm.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}
