package main

import (
	"github.com/spf13/cobra"
)

func newVerdictCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verdict <job-id>",
		Short: "Show the verdict for a completed evaluation",
		Long: `Show the verdict for a completed evaluation.

The verdict is fetched from the backend and archived locally; when the
backend is unreachable the archived copy is shown instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()
			return showVerdict(cmd.Context(), a, args[0])
		},
	}
	return cmd
}
