package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user/llmcli/internal/chatbots"
	"github.com/user/llmcli/internal/config"
	"github.com/user/llmcli/internal/session"
	"github.com/user/llmcli/internal/tokens"
	"github.com/user/llmcli/internal/ui"
	"github.com/user/llmcli/pkg/llm"
)

// errQuit is the distinguished outcome of the quit command. Only the
// engine's loop interprets it; everything else treats commands as
// success-or-recoverable-failure.
var errQuit = errors.New("user requested exit")

// Command argument errors.
var (
	errInvalidCommand     = errors.New("invalid command")
	errMissingPrompt      = errors.New("system prompt is required")
	errMissingChatbotName = errors.New("chatbot name is required")
	errMissingModelName   = errors.New("model name is required")
	errMissingFilename    = errors.New("filename is required")
)

// commandContext grants a command borrowed access to the engine's
// collaborators for the duration of one execution. Nothing retains these
// references past that scope.
type commandContext struct {
	session   *session.Session
	chatbot   *llm.Chatbot
	store     *session.Store
	printer   *ui.Printer
	cfg       *config.Config
	estimator *tokens.Estimator
}

// runCommand parses one sigil-prefixed line and executes it. Parsing is
// stateless: the line is split on whitespace and the first token selects
// the command. All failures except errQuit are recoverable.
func runCommand(line string, c *commandContext) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return errInvalidCommand
	}

	switch parts[0] {
	case "/clear", "/c":
		c.session.Clear()
		c.printer.App("Context cleared.")

	case "/system", "/sys":
		if len(parts) < 2 {
			return errMissingPrompt
		}
		c.session.SetSystem(strings.Join(parts[1:], " "))
		c.printer.App("System prompt set.")

	case "/chatbot", "/cb":
		if len(parts) < 2 {
			return errMissingChatbotName
		}
		return switchChatbot(parts[1], c)

	case "/list_chatbots", "/lb":
		c.printer.App("Available chatbots:")
		for _, info := range chatbots.All() {
			c.printer.App("\t" + info.Key + " - " + info.Description)
		}

	case "/model", "/m":
		if len(parts) < 2 {
			return errMissingModelName
		}
		if err := (*c.chatbot).SwitchModel(parts[1]); err != nil {
			c.printer.Error(err.Error())
			return nil
		}
		c.printer.App("Chatbot model changed to " + (*c.chatbot).Model())

	case "/list_models", "/lm":
		c.printer.App("Available models:")
		for _, model := range (*c.chatbot).AvailableModels() {
			c.printer.App("\t" + model)
		}

	case "/info", "/i":
		c.printer.App("Current chatbot: " + (*c.chatbot).Name())
		c.printer.App("Current model: " + (*c.chatbot).Model())
		if prompt, ok := c.session.System(); ok {
			c.printer.App("System prompt: " + prompt)
		}
		if c.estimator != nil {
			c.printer.App(fmt.Sprintf("Context size: ~%d tokens", c.estimator.Count(c.session.Messages)))
		}

	case "/save", "/s":
		if len(parts) < 2 {
			return errMissingFilename
		}
		if err := c.store.Save(parts[1], c.session); err != nil {
			return err
		}
		c.printer.App("Session saved to " + parts[1] + ".json")

	case "/load", "/l":
		if len(parts) < 2 {
			return errMissingFilename
		}
		loaded, err := c.store.Load(parts[1])
		if err != nil {
			return err
		}
		*c.session = *loaded
		c.printer.App("Session loaded from " + parts[1] + ".json")

	case "/delete", "/d":
		if len(parts) < 2 {
			return errMissingFilename
		}
		if err := c.store.Delete(parts[1]); err != nil {
			return err
		}
		c.printer.App("Session " + parts[1] + ".json deleted.")

	case "/sessions", "/se":
		names, err := c.store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			c.printer.Error("No saved sessions found.")
			return nil
		}
		c.printer.App("Saved sessions:")
		for _, name := range names {
			c.printer.App("\t" + name)
		}

	case "/help", "/h":
		printHelp(c.printer)

	case "/quit", "/q":
		c.printer.App("Quitting...")
		return errQuit

	default:
		return errInvalidCommand
	}

	return nil
}

// switchChatbot replaces the active chatbot wholesale. On construction
// failure the active chatbot is left untouched.
func switchChatbot(name string, c *commandContext) error {
	model := chatbots.DefaultModel(name)
	if name == c.cfg.DefaultChatbot && c.cfg.DefaultModel != "" {
		model = c.cfg.DefaultModel
	}

	replacement, err := chatbots.New(name, model, c.cfg.APIKeys.Gemini)
	if err != nil {
		if errors.Is(err, llm.ErrUnknownChatbot) {
			c.printer.Error("Invalid chatbot.")
			return nil
		}
		return err
	}

	*c.chatbot = replacement
	c.printer.App("Chatbot changed to " + replacement.Name())
	return nil
}

func printHelp(p *ui.Printer) {
	p.App("Available commands:")
	p.App("\t/clear or /c - Clear the conversation history (including system prompt)")
	p.App("\t/system <prompt> or /sys <prompt> - Set the system prompt")
	p.App("\t/chatbot <chatbot> or /cb <chatbot> - Change the chatbot")
	p.App("\t/list_chatbots or /lb - List all available chatbots")
	p.App("\t/model <model> or /m <model> - Change the chatbot model")
	p.App("\t/list_models or /lm - List all available models for current chatbot")
	p.App("\t/info or /i - Display current chatbot and model information")
	p.App("\t/save <filename> or /s <filename> - Save the session")
	p.App("\t/load <filename> or /l <filename> - Load a saved session")
	p.App("\t/delete <filename> or /d <filename> - Delete a session")
	p.App("\t/sessions or /se - List all saved sessions")
	p.App("\t/help or /h - List all available commands")
	p.App("\t/quit or /q - Exit the application")
}
