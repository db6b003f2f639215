package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verdicthq/verdict/internal/api"
	"github.com/verdicthq/verdict/internal/markup"
	"github.com/verdicthq/verdict/internal/poller"
	"github.com/verdicthq/verdict/internal/session"
	"github.com/verdicthq/verdict/internal/spinner"
	"github.com/verdicthq/verdict/internal/workflow"
	"github.com/verdicthq/verdict/internal/workspace"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <job-id>",
		Short: "Watch a running evaluation until the verdict lands",
		Long: `Watch an evaluation job, streaming agent transcript entries as they
arrive. Polling stops on its own once the job completes or fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()
			return watchJob(cmd.Context(), a, args[0])
		},
	}
	return cmd
}

// watchJob runs the poll/render loop for one job. It returns once the job
// reaches a terminal phase (printing the verdict on completion) or the
// context is canceled.
func watchJob(ctx context.Context, a *app, jobID string) error {
	machine := workflow.NewMachine()
	machine.Begin(jobID)

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	var spin *spinner.Spinner
	if isTTY {
		spin = spinner.New(os.Stdout, machine.Message())
		spin.Start()
	}

	// Terminal snapshot wakes the waiter; transcript entries are printed
	// as they appear.
	terminal := make(chan struct{})
	printed := 0

	onChange := func(s *api.JobSession) {
		prev := machine.Phase()
		phase := machine.Apply(s)

		if phase != prev {
			_ = a.log.Log(session.NewEvent(session.EventPhaseChange, //nolint:errcheck
				session.PhaseChangeData(jobID, string(prev), string(phase), len(s.TranscriptEntries))))
		}

		for ; printed < len(s.TranscriptEntries); printed++ {
			entry := s.TranscriptEntries[printed]
			if spin != nil {
				spin.Stop()
				spin = nil
			}
			printTranscriptEntry(entry, isTTY)
		}

		if spin != nil {
			spin.SetMessage(machine.Message())
		}
		if phase.Terminal() {
			close(terminal)
		}
	}

	p := poller.New(jobID, a.client.FetchStatus, onChange,
		poller.WithInterval(a.cfg.Poll.Interval),
		// A failed fetch raises the error axis without losing the last
		// known phase; the next good tick clears it.
		poller.WithOnError(machine.ApplyError))
	p.Start(ctx)
	defer p.Stop()

	select {
	case <-ctx.Done():
		p.Stop() // waits for the loop, so no callback can touch the spinner after
		if spin != nil {
			spin.Stop()
		}
		return ctx.Err()
	case <-terminal:
	}

	if spin != nil {
		spin.Stop()
	}

	if machine.Phase() == workflow.PhaseFailed {
		_ = a.log.Log(session.NewEvent(session.EventError, //nolint:errcheck
			session.ErrorData(machine.Message(), map[string]any{"job_id": jobID})))
		return fmt.Errorf("evaluation failed: %s", machine.Message())
	}

	return showVerdict(ctx, a, jobID)
}

// showVerdict fetches, persists, and renders the verdict for a completed
// job. The vault copy is written before rendering so a render crash never
// loses the verdict.
func showVerdict(ctx context.Context, a *app, jobID string) error {
	env, err := a.client.FetchVerdict(ctx, jobID)
	if err != nil {
		// Remote miss: fall back to the local archive.
		if cached, ok := a.vault.Get(jobID); ok {
			fmt.Fprintln(os.Stderr, "backend unavailable, showing archived verdict")
			renderVerdict(os.Stdout, cached)
			return nil
		}
		return err
	}
	if env.Verdict == nil {
		return fmt.Errorf("verdict not ready: %s", env.Message)
	}

	if err := a.vault.Put(jobID, env); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not archive verdict: %v\n", err)
	}

	ws := workspace.NewController(a.client, jobID)
	ws.PersistVerdict(ctx, env)

	_ = a.log.Log(session.NewEvent(session.EventVerdictReceived, //nolint:errcheck
		session.VerdictReceivedData(jobID, string(env.Verdict.Decision), env.Verdict.OverallScore())))

	renderVerdict(os.Stdout, env)
	return nil
}

// printTranscriptEntry renders one agent turn, styled when on a TTY.
func printTranscriptEntry(entry api.TranscriptEntry, isTTY bool) {
	message := markup.Plain(entry.Message)
	if isTTY {
		message = markup.Render(entry.Message)
	}
	fmt.Printf("%s\n%s\n\n", agentHeader(entry, isTTY), message)
}
