// Package chat drives the interactive REPL: it owns the transcript and
// the active chatbot, and routes each input line to the command
// interpreter or the chat-send path.
package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/user/llmcli/internal/config"
	"github.com/user/llmcli/internal/session"
	"github.com/user/llmcli/internal/tokens"
	"github.com/user/llmcli/internal/ui"
	"github.com/user/llmcli/pkg/llm"
)

// Engine is the session orchestrator. It is single-threaded by
// construction: the loop never reads new input while a response stream is
// open, so at most one request is in flight.
type Engine struct {
	cfg         *config.Config
	session     *session.Session
	chatbot     llm.Chatbot
	store       *session.Store
	printer     *ui.Printer
	reader      LineReader
	estimator   *tokens.Estimator
	interactive bool
}

// New creates an engine around an already-constructed chatbot and an
// optionally pre-seeded session. estimator may be nil.
func New(
	cfg *config.Config,
	sess *session.Session,
	chatbot llm.Chatbot,
	store *session.Store,
	printer *ui.Printer,
	reader LineReader,
	estimator *tokens.Estimator,
	interactive bool,
) *Engine {
	return &Engine{
		cfg:         cfg,
		session:     sess,
		chatbot:     chatbot,
		store:       store,
		printer:     printer,
		reader:      reader,
		estimator:   estimator,
		interactive: interactive,
	}
}

// Run executes the REPL until quit, EOF, or interrupt. In non-interactive
// mode exactly one line is processed before returning. All recoverable
// errors are reported and absorbed here; Run only returns an error for
// input-source failures.
func (e *Engine) Run(ctx context.Context) error {
	for {
		line, err := e.reader.ReadLine(e.printer.Prompt())
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			// Ignored; the loop repeats.
		case strings.HasPrefix(line, "/"):
			if err := e.dispatch(line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				e.printer.Error(err.Error())
			}
		default:
			e.chatTurn(ctx, line)
		}

		if !e.interactive {
			return nil
		}
	}
}

// dispatch executes one command with borrowed access to the engine's
// collaborators, scoped to this call.
func (e *Engine) dispatch(line string) error {
	return runCommand(line, &commandContext{
		session:   e.session,
		chatbot:   &e.chatbot,
		store:     e.store,
		printer:   e.printer,
		cfg:       e.cfg,
		estimator: e.estimator,
	})
}

// chatTurn appends the user message, streams the reply, and appends the
// assembled assistant message. On a stream error the partial reply is
// discarded; the user message stays, the question was asked but went
// unanswered.
func (e *Engine) chatTurn(ctx context.Context, input string) {
	turnID := uuid.New().String()
	e.session.Add(llm.RoleUser, input)

	slog.Debug("sending message",
		"turn_id", turnID,
		"chatbot", e.chatbot.Name(),
		"model", e.chatbot.Model(),
		"messages", len(e.session.Messages),
	)

	stream, err := e.chatbot.SendMessage(ctx, e.session.Messages)
	if err != nil {
		slog.Debug("request failed", "turn_id", turnID, "error", err)
		e.printer.Error(err.Error())
		return
	}

	e.printer.ChatbotPrefix(e.chatbot.Name())

	// Drain the whole stream before anything else: increments print in
	// arrival order and the first error is remembered.
	var reply strings.Builder
	var streamErr error
	for chunk := range stream {
		if chunk.Err != nil {
			if streamErr == nil {
				streamErr = chunk.Err
			}
			continue
		}
		e.printer.Text(chunk.Text)
		reply.WriteString(chunk.Text)
	}
	e.printer.Text("\n")

	if streamErr != nil {
		slog.Debug("stream failed", "turn_id", turnID, "error", streamErr)
		e.printer.Error(streamErr.Error())
		return
	}

	e.session.Add(llm.RoleAssistant, reply.String())
}
