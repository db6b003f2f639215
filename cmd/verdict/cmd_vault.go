package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newVaultCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Manage the local verdict archive",
		Long: `Manage the local verdict archive.

Every verdict the client fetches is archived locally, so past evaluations
stay readable when the backend is unreachable.`,
	}

	cmd.AddCommand(newVaultListCommand())
	cmd.AddCommand(newVaultShowCommand())
	cmd.AddCommand(newVaultClearCommand())

	return cmd
}

func newVaultListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			entries, err := a.vault.List()
			if err != nil {
				return fmt.Errorf("listing vault: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("No archived verdicts.")
				return nil
			}

			fmt.Printf("%-24s %-10s %-6s %-20s %s\n", "Job", "Decision", "Score", "Saved", "Idea")
			fmt.Println("──────────────────────────────────────────────────────────────────────────────")
			for _, e := range entries {
				fmt.Printf("%-24s %-10s %-6d %-20s %s\n",
					e.JobID, e.Decision, e.Score, e.SavedAt.Format("2006-01-02 15:04:05"), e.IdeaTitle)
			}
			return nil
		},
	}
}

func newVaultShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show an archived verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			env, ok := a.vault.Get(args[0])
			if !ok {
				return fmt.Errorf("no archived verdict for job %s", args[0])
			}
			renderVerdict(os.Stdout, env)
			return nil
		},
	}
}

func newVaultClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all archived verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.vault.Clear(); err != nil {
				return fmt.Errorf("clearing vault: %w", err)
			}
			fmt.Println("Vault cleared.")
			return nil
		},
	}
}
