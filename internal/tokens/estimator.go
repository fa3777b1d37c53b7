// Package tokens estimates the token footprint of a transcript.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/user/llmcli/pkg/llm"
)

// Estimator counts approximate tokens over conversation messages. The
// count is an estimate: the backend's own tokenizer may differ slightly,
// which is fine for the informational use it gets here.
type Estimator struct {
	tokenizer *tiktoken.Tiktoken
}

// New creates an estimator backed by the cl100k_base encoding.
func New() (*Estimator, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("get tokenizer: %w", err)
	}
	return &Estimator{tokenizer: enc}, nil
}

// Count returns the approximate token count of all message content.
func (e *Estimator) Count(messages []llm.Message) int {
	total := 0
	for _, msg := range messages {
		total += len(e.tokenizer.Encode(msg.Content, nil, nil))
	}
	return total
}
