package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/llmcli/internal/session"
)

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionListCmd, sessionDeleteCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage saved sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := session.NewStore(cfg.SessionDir())

		names, err := store.List()
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(names) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMESSAGES")
		for _, name := range names {
			count := 0
			if s, err := store.Load(name); err == nil {
				count = len(s.Messages)
			}
			fmt.Fprintf(w, "%s\t%d\n", name, count)
		}
		return w.Flush()
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := session.NewStore(cfg.SessionDir())

		if err := store.Delete(args[0]); err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return fmt.Errorf("session %q not found", args[0])
			}
			return fmt.Errorf("delete session: %w", err)
		}
		fmt.Printf("Session %s.json deleted.\n", args[0])
		return nil
	},
}
