package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verdicthq/verdict/internal/workflow"
)

var statusTranscript bool

func newStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the current state of an evaluation",
		Args:  cobra.ExactArgs(1),
		RunE:  statusE,
	}

	cmd.Flags().BoolVarP(&statusTranscript, "transcript", "t", false, "Include the full agent transcript")

	return cmd
}

func statusE(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	snapshot, err := a.client.FetchStatus(cmd.Context(), jobID)
	if err != nil {
		return err
	}

	machine := workflow.NewMachine()
	machine.Begin(jobID)
	machine.Apply(snapshot)

	fmt.Printf("Job:    %s\n", jobID)
	if snapshot.IdeaTitle != "" {
		fmt.Printf("Idea:   %s\n", snapshot.IdeaTitle)
	}
	fmt.Printf("Phase:  %s\n", machine.Phase())
	fmt.Printf("Status: %s\n", machine.Message())

	if len(snapshot.TranscriptEntries) > 0 {
		fmt.Printf("\n%d transcript entries", len(snapshot.TranscriptEntries))
		if !statusTranscript {
			fmt.Printf(" (use --transcript to show them)")
		}
		fmt.Println()
	}

	if statusTranscript {
		isTTY := term.IsTerminal(int(os.Stdout.Fd()))
		fmt.Println()
		for _, entry := range snapshot.TranscriptEntries {
			printTranscriptEntry(entry, isTTY)
		}
	}

	if machine.WorkspaceReachable() {
		fmt.Printf("\nView the verdict:     verdict verdict %s\n", jobID)
		fmt.Printf("Open the workspace:   verdict workspace %s\n", jobID)
	}
	return nil
}
