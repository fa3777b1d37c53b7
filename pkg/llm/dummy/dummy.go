// Package dummy provides an offline chatbot that echoes canned responses.
// It exercises the full llm.Chatbot contract without any transport, which
// makes it useful for tests and for trying the REPL without an API key.
package dummy

import (
	"context"
	"fmt"

	"github.com/user/llmcli/pkg/llm"
)

var availableModels = []string{"1", "2"}

// Chatbot is the canned-response chatbot.
type Chatbot struct {
	model string
}

// New creates a dummy chatbot for the given model id.
func New(model string) (*Chatbot, error) {
	if !valid(model) {
		return nil, llm.ErrUnknownModel
	}
	return &Chatbot{model: model}, nil
}

func valid(id string) bool {
	for _, m := range availableModels {
		if m == id {
			return true
		}
	}
	return false
}

// Name returns the display name of the chatbot.
func (c *Chatbot) Name() string {
	return "Dummy"
}

// Model returns the label of the active model.
func (c *Chatbot) Model() string {
	switch c.model {
	case "1":
		return "Model 1"
	case "2":
		return "Model 2"
	}
	return "Invalid Model"
}

// AvailableModels returns the model ids in catalog order.
func (c *Chatbot) AvailableModels() []string {
	return availableModels
}

// SwitchModel activates a new model id.
func (c *Chatbot) SwitchModel(id string) error {
	if !valid(id) {
		return llm.ErrInvalidModel
	}
	c.model = id
	return nil
}

// SendMessage yields a single canned chunk derived from the last message.
func (c *Chatbot) SendMessage(_ context.Context, messages []llm.Message) (<-chan llm.StreamChunk, error) {
	reply := "Dummy response to empty conversation."
	if len(messages) > 0 {
		last := messages[len(messages)-1]
		if last.Role == llm.RoleUser {
			reply = fmt.Sprintf("Dummy response to: %q.", last.Content)
		} else {
			reply = "Dummy response."
		}
	}

	ch := make(chan llm.StreamChunk, 1)
	ch <- llm.StreamChunk{Text: reply}
	close(ch)
	return ch, nil
}
