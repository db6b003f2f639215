package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verdicthq/verdict/internal/config"
	"github.com/verdicthq/verdict/internal/session"
)

func newSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "View and manage session logs",
		Long: `View and manage session event logs.

Session logs are NDJSON files written during client runs. They record the
full lifecycle: submission, phase changes, workspace activity, and errors.`,
	}

	cmd.AddCommand(newSessionListCommand())
	cmd.AddCommand(newSessionViewCommand())

	return cmd
}

func newSessionListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded session logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg, err := config.Load(".")
				if err != nil {
					return err
				}
				dir = cfg.Paths.Sessions
			}

			files, err := session.ListSessions(dir)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					fmt.Println("No session logs found.")
					return nil
				}
				return fmt.Errorf("listing sessions: %w", err)
			}

			if len(files) == 0 {
				fmt.Println("No session logs found.")
				return nil
			}

			fmt.Printf("%-40s %-8s %s\n", "File", "Events", "Modified")
			fmt.Println("─────────────────────────────────────────────────────────────────")
			for _, f := range files {
				fmt.Printf("%-40s %-8d %s\n", f.Name, f.NumEvents, f.ModTime.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to search for session logs (default from config)")

	return cmd
}

func newSessionViewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <session-file>",
		Short: "View a session timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := session.ReadEvents(args[0])
			if err != nil {
				return fmt.Errorf("reading session: %w", err)
			}

			session.RenderTimeline(os.Stdout, events)
			return nil
		},
	}

	return cmd
}
