// Package chatbots constructs concrete chatbot variants from the closed,
// statically known provider set.
package chatbots

import (
	"github.com/user/llmcli/pkg/llm"
	"github.com/user/llmcli/pkg/llm/dummy"
	"github.com/user/llmcli/pkg/llm/gemini"
)

// Info describes one registered chatbot variant.
type Info struct {
	Key          string
	Description  string
	DefaultModel string
}

// registry lists the known variants in display order. The set is closed:
// adding a variant means adding a case to New as well.
var registry = []Info{
	{Key: "gemini", Description: "Google Gemini", DefaultModel: "gemini-1.5-flash"},
	{Key: "dummy", Description: "Dummy", DefaultModel: "1"},
}

// New constructs the chatbot named by key. The apiKey applies only to
// variants that need one; ErrUnknownChatbot is returned for keys outside
// the registry.
func New(key, model, apiKey string) (llm.Chatbot, error) {
	switch key {
	case "gemini":
		return gemini.New(model, apiKey)
	case "dummy":
		return dummy.New(model)
	default:
		return nil, llm.ErrUnknownChatbot
	}
}

// All returns the registered variants in display order.
func All() []Info {
	return registry
}

// DefaultModel returns the built-in default model id for a chatbot key,
// or "" for unknown keys.
func DefaultModel(key string) string {
	for _, info := range registry {
		if info.Key == key {
			return info.DefaultModel
		}
	}
	return ""
}
