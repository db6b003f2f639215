package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/verdicthq/verdict/internal/api"
	"github.com/verdicthq/verdict/internal/markup"
	"github.com/verdicthq/verdict/internal/session"
	"github.com/verdicthq/verdict/internal/workflow"
	"github.com/verdicthq/verdict/internal/workspace"
)

func newWorkspaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace <job-id>",
		Short: "Open the interactive workspace for a completed evaluation",
		Long: `Open the interactive workspace for a completed evaluation.

The workspace holds the execution plan, simulated stakeholder interviews,
and rebuttal threads. It is only reachable once the job has completed.`,
		Args: cobra.ExactArgs(1),
		RunE: workspaceE,
	}
	return cmd
}

func workspaceE(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()

	snapshot, err := a.client.FetchStatus(ctx, jobID)
	if err != nil {
		return err
	}
	machine := workflow.NewMachine()
	machine.Begin(jobID)
	machine.Apply(snapshot)
	if !machine.WorkspaceReachable() {
		return fmt.Errorf("workspace is not available: %s", machine.Message())
	}

	ws := workspace.NewController(a.client, jobID)
	if err := ws.Activate(ctx); err != nil {
		return err
	}

	fmt.Printf("Workspace for %q\n\n", snapshot.IdeaTitle)
	return workspaceLoop(ctx, a, ws)
}

// workspaceLoop drives the action menu until the user quits.
func workspaceLoop(ctx context.Context, a *app, ws *workspace.Controller) error {
	for {
		var action string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Workspace").
				Options(
					huh.NewOption("View execution plan", "plan"),
					huh.NewOption("Toggle a task", "toggle"),
					huh.NewOption("Interview a persona", "interview"),
					huh.NewOption("Send a rebuttal", "rebut"),
					huh.NewOption("Show verdict", "verdict"),
					huh.NewOption("Quit", "quit"),
				).
				Value(&action),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		var err error
		switch action {
		case "plan":
			err = showPlan(ws)
		case "toggle":
			err = togglePlanTask(ctx, a, ws)
		case "interview":
			err = runPersonaInterview(ctx, a, ws)
		case "rebut":
			err = sendRebuttal(ctx, a, ws)
		case "verdict":
			err = showVerdict(ctx, a, ws.JobID())
		case "quit":
			return nil
		}
		if err != nil {
			// Workspace operations fail independently; the loop survives.
			fmt.Fprintln(os.Stderr, api.UserMessage(err))
		}
	}
}

//nolint:errcheck // display-only writes; errors are not actionable
func showPlan(ws *workspace.Controller) error {
	plan, err := ws.Plan()
	if err != nil {
		return fmt.Errorf("execution plan unavailable: %w", err)
	}
	if plan == nil {
		return errors.New("execution plan not loaded yet")
	}

	fmt.Println(sectionStyle.Render("Checklist"))
	for _, t := range plan.Checklist {
		fmt.Printf("  [%s] %s\n", checkmark(t.Completed), t.Title)
		if t.Rationale != "" {
			fmt.Printf("      %s\n", dimStyle.Render(t.Rationale))
		}
	}

	if len(plan.SprintPlan) > 0 {
		fmt.Println()
		fmt.Println(sectionStyle.Render("Sprint plan"))
		for _, t := range plan.SprintPlan {
			fmt.Printf("  [%s] Day %d: %s\n", checkmark(t.Completed), t.Day, t.Task)
		}
	}
	fmt.Println()
	return nil
}

func togglePlanTask(ctx context.Context, a *app, ws *workspace.Controller) error {
	plan, err := ws.Plan()
	if err != nil || plan == nil {
		return errors.New("execution plan unavailable; cannot toggle tasks")
	}

	type taskRef struct {
		id        string
		list      api.ListKind
		completed bool
	}

	var options []huh.Option[taskRef]
	for _, t := range plan.Checklist {
		label := fmt.Sprintf("[%s] %s", checkmark(t.Completed), t.Title)
		options = append(options, huh.NewOption(label, taskRef{t.ID, api.ListChecklist, t.Completed}))
	}
	for _, t := range plan.SprintPlan {
		label := fmt.Sprintf("[%s] Day %d: %s", checkmark(t.Completed), t.Day, t.Task)
		options = append(options, huh.NewOption(label, taskRef{t.ID, api.ListSprint, t.Completed}))
	}
	if len(options) == 0 {
		return errors.New("the plan has no tasks")
	}

	var picked taskRef
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[taskRef]().Title("Toggle which task?").Options(options...).Value(&picked),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	if err := ws.ToggleTask(ctx, picked.id, picked.list, !picked.completed); err != nil {
		return err
	}
	_ = a.log.Log(session.NewEvent(session.EventTaskToggle, //nolint:errcheck
		session.TaskToggleData(ws.JobID(), picked.id, string(picked.list), !picked.completed)))
	return showPlan(ws)
}

func runPersonaInterview(ctx context.Context, a *app, ws *workspace.Controller) error {
	persona, err := pickPersona(ws, "Interview which persona?")
	if err != nil || persona == nil {
		return err
	}

	fmt.Printf("Interviewing %s...\n\n", persona.Name)
	resp, err := ws.RunInterview(ctx, persona.ID)
	if err != nil {
		return err
	}

	_ = a.log.Log(session.NewEvent(session.EventInterview, //nolint:errcheck
		session.InterviewData(ws.JobID(), persona.ID, 0)))
	printInterviewResponse(persona.Name, resp)
	return nil
}

func sendRebuttal(ctx context.Context, a *app, ws *workspace.Controller) error {
	persona, err := pickPersona(ws, "Rebut which persona?")
	if err != nil || persona == nil {
		return err
	}

	if ws.Thread(persona.ID) == nil {
		return fmt.Errorf("interview %s first, then argue back", persona.Name)
	}

	var message string
	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title(fmt.Sprintf("Your rebuttal to %s", persona.Name)).
			CharLimit(4000).
			Value(&message).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("a rebuttal needs substance")
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	resp, err := ws.Rebut(ctx, persona.ID, message)
	if err != nil {
		return err
	}

	turns := 0
	if th := ws.Thread(persona.ID); th != nil {
		turns = len(th.History)
	}
	_ = a.log.Log(session.NewEvent(session.EventRebuttal, //nolint:errcheck
		session.InterviewData(ws.JobID(), persona.ID, turns)))
	printInterviewResponse(persona.Name, resp)
	return nil
}

// pickPersona shows the roster select. A nil persona with nil error means
// the user aborted.
func pickPersona(ws *workspace.Controller, title string) (*api.Persona, error) {
	personas, err := ws.Personas()
	if err != nil {
		return nil, fmt.Errorf("persona roster unavailable: %w", err)
	}
	if len(personas) == 0 {
		return nil, errors.New("no personas available")
	}

	var picked int
	options := make([]huh.Option[int], len(personas))
	for i, p := range personas {
		label := p.Name
		if p.Role != "" {
			label = fmt.Sprintf("%s (%s)", p.Name, p.Role)
		}
		options[i] = huh.NewOption(label, i)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().Title(title).Options(options...).Value(&picked),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}
	return &personas[picked], nil
}

//nolint:errcheck // display-only writes; errors are not actionable
func printInterviewResponse(name string, resp *api.InterviewResponse) {
	fmt.Println(neutralStyle.Render("── " + name))
	fmt.Println(markup.Render(resp.Summary))
	for _, c := range resp.Concerns {
		fmt.Printf("  ⚠ %s\n", c)
	}
	if resp.WillingnessToPay != "" {
		fmt.Printf("  💵 %s\n", resp.WillingnessToPay)
	}
	if resp.Verdict != "" {
		fmt.Printf("  → %s\n", resp.Verdict)
	}
	fmt.Println()
}

func checkmark(done bool) string {
	if done {
		return "x"
	}
	return " "
}
