// Package session holds the live conversation transcript and the
// file-backed store for named snapshots of it.
package session

import "github.com/user/llmcli/pkg/llm"

// Session is the ordered, mutable transcript of the current conversation.
// It carries at most one system message. Only the chat engine and the
// command interpreter mutate it; chatbots receive the messages read-only.
type Session struct {
	Messages []llm.Message `json:"messages"`
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Add appends a message to the transcript.
func (s *Session) Add(role llm.Role, content string) {
	s.Messages = append(s.Messages, llm.Message{Role: role, Content: content})
}

// Clear empties the transcript, including any system message.
func (s *Session) Clear() {
	s.Messages = s.Messages[:0]
}

// SetSystem replaces the system prompt: any existing system message is
// removed and the new one is inserted at position 0.
func (s *Session) SetSystem(content string) {
	kept := s.Messages[:0]
	for _, msg := range s.Messages {
		if msg.Role != llm.RoleSystem {
			kept = append(kept, msg)
		}
	}
	s.Messages = append([]llm.Message{{Role: llm.RoleSystem, Content: content}}, kept...)
}

// System returns the system prompt content, if one is set.
func (s *Session) System() (string, bool) {
	for _, msg := range s.Messages {
		if msg.Role == llm.RoleSystem {
			return msg.Content, true
		}
	}
	return "", false
}
