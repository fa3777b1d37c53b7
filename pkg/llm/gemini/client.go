// Package gemini implements the llm.Chatbot interface for the Google
// Gemini generative language API, using its streamed SSE response format.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/user/llmcli/pkg/llm"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta/models/"

// apiKeyEnv is the environment fallback consulted when no key is passed
// explicitly.
const apiKeyEnv = "GEMINI_API_KEY"

// catalog is the static set of supported models, in display order.
var catalog = []struct {
	ID    string
	Label string
}{
	{"gemini-2.0-flash", "Gemini 2.0 Flash"},
	{"gemini-1.5-flash", "Gemini 1.5 Flash"},
	{"gemini-1.5-flash-8b", "Gemini 1.5 Flash-8B"},
	{"gemini-1.5-pro", "Gemini 1.5 Pro"},
}

// Chatbot is an HTTP-backed chatbot talking to the Gemini API.
type Chatbot struct {
	model      string
	apiKey     string
	url        string
	httpClient *http.Client
}

// New creates a Gemini chatbot for the given model id. The API key is
// resolved from the argument first, then from the GEMINI_API_KEY
// environment variable.
func New(model, apiKey string) (*Chatbot, error) {
	if !validModel(model) {
		return nil, llm.ErrUnknownModel
	}
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv)
	}
	if apiKey == "" {
		return nil, llm.ErrAPIKeyMissing
	}
	return &Chatbot{
		model:  model,
		apiKey: apiKey,
		url:    endpoint(model, apiKey),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

func validModel(id string) bool {
	for _, m := range catalog {
		if m.ID == id {
			return true
		}
	}
	return false
}

// endpoint builds the streaming URL for a model. alt=sse selects
// newline-delimited "data: "-prefixed JSON frames.
func endpoint(model, apiKey string) string {
	return baseURL + model + ":streamGenerateContent?alt=sse&key=" + apiKey
}

// Name returns the display name of the chatbot.
func (c *Chatbot) Name() string {
	return "Gemini"
}

// Model returns the label of the active model.
func (c *Chatbot) Model() string {
	for _, m := range catalog {
		if m.ID == c.model {
			return m.Label
		}
	}
	return c.model
}

// AvailableModels returns the model ids in catalog order.
func (c *Chatbot) AvailableModels() []string {
	ids := make([]string, len(catalog))
	for i, m := range catalog {
		ids[i] = m.ID
	}
	return ids
}

// SwitchModel activates a new model id and recomputes the request URL.
// On failure the active model and URL are unchanged.
func (c *Chatbot) SwitchModel(id string) error {
	if !validModel(id) {
		return llm.ErrInvalidModel
	}
	c.model = id
	c.url = endpoint(id, c.apiKey)
	return nil
}

// wirePart is a single text part in the Gemini wire format.
type wirePart struct {
	Text string `json:"text"`
}

// wireContent is a role-tagged message in the Gemini wire format.
type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

// wireRequest is the streamGenerateContent request body.
type wireRequest struct {
	SystemInstruction *wireContent  `json:"system_instruction,omitempty"`
	Contents          []wireContent `json:"contents"`
}

// wireResponse is one streamed response frame.
type wireResponse struct {
	Candidates []struct {
		Content wireContent `json:"content"`
	} `json:"candidates"`
}

// buildRequest translates a transcript into the wire format. A System
// message is extracted into system_instruction; the rest map in order,
// with the assistant role rendered as "model".
func buildRequest(messages []llm.Message) wireRequest {
	var req wireRequest
	for _, msg := range messages {
		if msg.Role == llm.RoleSystem {
			req.SystemInstruction = &wireContent{
				Parts: []wirePart{{Text: msg.Content}},
			}
			continue
		}
		role := "user"
		if msg.Role == llm.RoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, wireContent{
			Role:  role,
			Parts: []wirePart{{Text: msg.Content}},
		})
	}
	return req
}

// SendMessage sends the conversation and streams back response chunks.
// The returned channel is closed when the response completes or the
// transport fails; assembling the reply is the caller's responsibility.
func (c *Chatbot) SendMessage(ctx context.Context, messages []llm.Message) (<-chan llm.StreamChunk, error) {
	body, err := json.Marshal(buildRequest(messages))
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &llm.ServerError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	ch := make(chan llm.StreamChunk)
	go func() {
		defer close(ch)
		defer resp.Body.Close()
		decodeStream(resp.Body, ch)
	}()
	return ch, nil
}

// classifyTransport maps a transport failure onto the chat error taxonomy.
func classifyTransport(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return llm.ErrTimeout
	}
	return &llm.NetworkError{Err: err}
}
