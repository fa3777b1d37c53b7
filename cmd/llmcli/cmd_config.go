package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/llmcli/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Init(cfgPath)
		if err != nil {
			return fmt.Errorf("init config: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Config file at %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "default_chatbot = %s\n", cfg.DefaultChatbot)
		fmt.Fprintf(os.Stdout, "default_model = %s\n", cfg.DefaultModel)
		fmt.Fprintf(os.Stdout, "data_dir = %s\n", cfg.DataDir)
		fmt.Fprintf(os.Stdout, "history_path = %s\n", cfg.HistoryFile())
		fmt.Fprintf(os.Stdout, "log_level = %s\n", cfg.LogLevel)
		key := "(unset)"
		if cfg.APIKeys.Gemini != "" {
			key = "***"
		}
		fmt.Fprintf(os.Stdout, "api_keys.gemini = %s\n", key)
		return nil
	},
}
