package llm

import "context"

// Chatbot defines the interface for interacting with chat backends.
// Implementations handle protocol-specific details such as request
// formatting, authentication, and response parsing. The model catalog of
// each implementation is static and known at build time.
type Chatbot interface {
	// Name returns the display name of the chatbot, constant per variant.
	Name() string

	// Model returns a human-readable label for the active model.
	Model() string

	// AvailableModels returns the ordered list of model ids this chatbot
	// can be switched to.
	AvailableModels() []string

	// SwitchModel activates the given model id. It returns ErrInvalidModel
	// for ids outside the catalog and leaves the active model unchanged in
	// that case.
	SwitchModel(id string) error

	// SendMessage sends the full conversation and returns a channel of
	// incremental response chunks, delivered in network arrival order. The
	// channel is closed when the response is complete or the transport
	// fails; callers are expected to drain it. A returned error means the
	// request never produced a stream.
	SendMessage(ctx context.Context, messages []Message) (<-chan StreamChunk, error)
}
