package llm

import (
	"errors"
	"fmt"
)

// Creation errors, returned when constructing a chatbot. Fatal at startup,
// recoverable when the user switches chatbots mid-session.
var (
	ErrUnknownChatbot = errors.New("unknown chatbot")
	ErrUnknownModel   = errors.New("unknown model")
	ErrAPIKeyMissing  = errors.New("API key missing")
)

// ErrInvalidModel is returned by SwitchModel for ids outside the catalog.
// The prior model stays active.
var ErrInvalidModel = errors.New("invalid model")

// Chat errors, surfaced per turn. A failed turn discards the partial
// assistant reply; the conversation itself survives.
var (
	// ErrTimeout indicates the transport exceeded its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrUnexpectedResponse indicates a successful request whose body did
	// not match the expected schema. The detail is deliberately withheld:
	// it is not actionable by the user.
	ErrUnexpectedResponse = errors.New("unexpected response from chatbot")
)

// NetworkError wraps a transport failure other than a timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError represents a non-success HTTP status from the backend.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d", e.StatusCode)
}
