package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/user/llmcli/internal/chat"
	"github.com/user/llmcli/internal/chatbots"
	"github.com/user/llmcli/internal/session"
	"github.com/user/llmcli/internal/tokens"
	"github.com/user/llmcli/internal/ui"
)

var (
	chatbotFlag string
	modelFlag   string
	systemFlag  string
)

func init() {
	rootCmd.Flags().StringVarP(&chatbotFlag, "chatbot", "b", "", "chatbot to talk to (default from config)")
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", "", "model id to use (default from config)")
	rootCmd.Flags().StringVar(&systemFlag, "system", "", "system prompt to seed the conversation with")
}

// runChat starts the REPL. Construction failures here are fatal; once the
// loop runs, every failure is recoverable and reported in-session.
func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	name := chatbotFlag
	if name == "" {
		name = cfg.DefaultChatbot
	}
	model := modelFlag
	if model == "" {
		if name == cfg.DefaultChatbot && cfg.DefaultModel != "" {
			model = cfg.DefaultModel
		} else {
			model = chatbots.DefaultModel(name)
		}
	}

	bot, err := chatbots.New(name, model, cfg.APIKeys.Gemini)
	if err != nil {
		return fmt.Errorf("create chatbot %q: %w", name, err)
	}

	sess := session.New()
	if systemFlag != "" {
		sess.SetSystem(systemFlag)
	}

	estimator, err := tokens.New()
	if err != nil {
		slog.Warn("token estimator unavailable", "error", err)
		estimator = nil
	}

	// Terminal attachment, not a flag, decides interactive vs one-shot
	// piped mode.
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	var reader chat.LineReader
	if interactive {
		reader = chat.NewTerminalReader(cfg.HistoryFile())
	} else {
		reader = chat.NewPipeReader(os.Stdin)
	}
	defer reader.Close()

	engine := chat.New(
		cfg,
		sess,
		bot,
		session.NewStore(cfg.SessionDir()),
		ui.NewPrinter(os.Stdout),
		reader,
		estimator,
		interactive,
	)
	return engine.Run(context.Background())
}
