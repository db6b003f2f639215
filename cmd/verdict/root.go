package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verdict",
		Short: "Verdict - CLI for brutally honest startup idea evaluation",
		Long: `Verdict submits startup ideas to a panel of adversarial AI agents and
tracks the evaluation to its final verdict.

After the verdict lands you get a workspace: an execution plan you can
work through, simulated stakeholder interviews, and rebuttal threads to
argue back.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newSubmitCommand())
	cmd.AddCommand(newStatusCommand())
	cmd.AddCommand(newWatchCommand())
	cmd.AddCommand(newVerdictCommand())
	cmd.AddCommand(newWorkspaceCommand())
	cmd.AddCommand(newCreditsCommand())
	cmd.AddCommand(newVaultCommand())
	cmd.AddCommand(newSessionCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
