package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verdicthq/verdict/internal/api"
	"github.com/verdicthq/verdict/internal/credits"
	"github.com/verdicthq/verdict/internal/session"
)

var (
	submitMode  string
	submitWatch bool
)

func newSubmitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit [idea-file]",
		Short: "Submit a startup idea for evaluation",
		Long: `Submit a startup idea document to the agent panel.

The idea can come from a file argument, piped stdin, or an interactive
prompt when neither is given. Deep evaluations cost one credit; short
evaluations are free.`,
		Args: cobra.MaximumNArgs(1),
		RunE: submitE,
	}

	cmd.Flags().StringVarP(&submitMode, "mode", "m", "", "Evaluation mode: deep or short (default from config)")
	cmd.Flags().BoolVarP(&submitWatch, "watch", "w", false, "Watch the evaluation after submitting")

	return cmd
}

func submitE(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	mode := api.Mode(submitMode)
	if mode == "" {
		mode = api.Mode(a.cfg.Defaults.Mode)
	}
	if mode != api.ModeDeep && mode != api.ModeShort {
		return fmt.Errorf("unknown mode %q (want deep or short)", mode)
	}

	ctx := cmd.Context()

	// Fail fast on a known-zero balance before any document work.
	ledger := credits.NewLedger(a.client.FetchCredits)
	if _, err := ledger.Refresh(ctx); err != nil {
		// Balance unknown: submission proceeds, the backend enforces.
		_ = a.log.Log(session.NewEvent(session.EventError, //nolint:errcheck
			session.ErrorData("credit balance unavailable", map[string]any{"error": err.Error()})))
	}
	if err := ledger.CheckSubmission(mode); err != nil {
		return err
	}

	document, err := readDocument(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(document) == "" {
		return &api.ValidationError{Message: "idea document is empty"}
	}

	_ = a.log.Log(session.NewEvent(session.EventSessionStart, session.SessionStartData(string(mode)))) //nolint:errcheck

	result, err := a.client.Submit(ctx, document, mode)
	if err != nil {
		_ = a.log.Log(session.NewEvent(session.EventError, //nolint:errcheck
			session.ErrorData("submission failed", map[string]any{"error": err.Error()})))
		return err
	}

	ledger.Debit(mode)
	if balance, known := ledger.Balance(); known {
		_ = a.log.Log(session.NewEvent(session.EventCredits, session.CreditsData(balance, "debit"))) //nolint:errcheck
	}
	_ = a.log.Log(session.NewEvent(session.EventSubmitted, //nolint:errcheck
		session.SubmittedData(result.JobID, result.IdeaTitle, string(mode))))

	if result.IdeaTitle != "" {
		fmt.Printf("Submitted %q\n", result.IdeaTitle)
	}
	fmt.Printf("Job ID: %s\n", result.JobID)

	if submitWatch {
		return watchJob(ctx, a, result.JobID)
	}

	fmt.Printf("\nTrack progress with:  verdict watch %s\n", result.JobID)
	return nil
}

// readDocument resolves the idea text: file argument, piped stdin, or an
// interactive editor prompt.
func readDocument(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading idea file: %w", err)
		}
		return string(data), nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	return promptForIdea()
}

// promptForIdea collects the idea interactively.
func promptForIdea() (string, error) {
	var idea string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Your startup idea").
				Description("Describe the problem, the solution, and who pays. The agents are not kind to vague pitches.").
				CharLimit(8000).
				Value(&idea).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("the idea cannot be empty")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return idea, nil
}
