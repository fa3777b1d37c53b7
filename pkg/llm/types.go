package llm

import (
	"encoding/json"
	"fmt"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UnmarshalJSON accepts the canonical role names plus "model", which
// Gemini-flavored transcripts use for assistant messages.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "system", "user", "assistant":
		*r = Role(s)
	case "model":
		*r = RoleAssistant
	default:
		return fmt.Errorf("unknown role %q", s)
	}
	return nil
}

// Message represents a chat message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// StreamChunk is one increment of a streamed chatbot response: either a
// text fragment or a failure. A chunk carrying a transport error is always
// the final item on its stream; a decode failure (ErrUnexpectedResponse)
// invalidates only that one frame.
type StreamChunk struct {
	Text string
	Err  error
}
