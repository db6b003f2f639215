// Package workspace owns the three post-verdict sub-resources hung off one
// completed job: the execution plan, the interview persona roster, and the
// per-persona rebuttal threads. Each is individually loadable, individually
// failable, and individually refreshable without blocking the others.
package workspace

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/verdicthq/verdict/internal/api"
	"github.com/verdicthq/verdict/internal/validation"
)

// Thread is the client-held conversation state for one persona.
type Thread struct {
	PersonaID      string
	LatestResponse *api.InterviewResponse
	History        []api.InterviewTurn
}

// Controller coordinates workspace state for a single completed job. All
// network calls go through the accessor; the controller reconciles
// client-visible state with server-confirmed state and never applies a
// partial merge.
type Controller struct {
	svc    api.Service
	jobID  string
	logger *slog.Logger

	mu sync.Mutex

	plan            *api.ExecutionPlan
	planErr         error
	togglesInFlight map[string]bool

	personas    []api.Persona
	personasErr error

	threads        map[string]*Thread
	rebutsInFlight map[string]bool

	saved map[string]bool // persistence guard, keyed by job id
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController creates a workspace controller for jobID. The caller is
// responsible for only activating it once the job has completed.
func NewController(svc api.Service, jobID string, opts ...Option) *Controller {
	c := &Controller{
		svc:             svc,
		jobID:           jobID,
		logger:          slog.Default(),
		togglesInFlight: make(map[string]bool),
		threads:         make(map[string]*Thread),
		rebutsInFlight:  make(map[string]bool),
		saved:           make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// JobID returns the job this workspace is bound to.
func (c *Controller) JobID() string {
	return c.jobID
}

// Activate loads the plan and the persona roster concurrently. A failure in
// one sub-resource is recorded on that sub-resource and does not abort the
// other; Activate itself only fails when the context dies.
func (c *Controller) Activate(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := c.LoadPlan(ctx); err != nil {
			c.logger.Debug("plan load failed", "job", c.jobID, "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := c.LoadPersonas(ctx); err != nil {
			c.logger.Debug("persona load failed", "job", c.jobID, "error", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// --- plan sub-controller ---

// LoadPlan fetches the execution plan, replacing any previous copy.
func (c *Controller) LoadPlan(ctx context.Context) error {
	plan, err := c.svc.FetchExecutionPlan(ctx, c.jobID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.planErr = err
	if err != nil {
		return err
	}
	c.plan = plan
	return nil
}

// Plan returns the current plan and the error of the latest load attempt.
func (c *Controller) Plan() (*api.ExecutionPlan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plan, c.planErr
}

// TaskPending reports whether a toggle for taskID is in flight; the UI
// disables that single row's control while true.
func (c *Controller) TaskPending(taskID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.togglesInFlight[taskID]
}

// ToggleTask flips one task's completion state through the server. The row
// is locked against duplicate toggles for the duration of the request, and
// the response replaces the entire plan object. The client never flips the
// boolean locally: the server may adjust more than the one task, and a
// partial merge would diverge from server truth.
func (c *Controller) ToggleTask(ctx context.Context, taskID string, list api.ListKind, completed bool) error {
	c.mu.Lock()
	if c.togglesInFlight[taskID] {
		c.mu.Unlock()
		return &api.ValidationError{Message: "a toggle for this task is already in flight"}
	}
	c.togglesInFlight[taskID] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.togglesInFlight, taskID)
		c.mu.Unlock()
	}()

	plan, err := c.svc.ToggleTask(ctx, c.jobID, taskID, list, completed)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.plan = plan
	c.planErr = nil
	c.mu.Unlock()
	return nil
}

// --- persona sub-controller ---

// LoadPersonas fetches the roster once; later calls are no-ops unless the
// first fetch failed.
func (c *Controller) LoadPersonas(ctx context.Context) error {
	c.mu.Lock()
	if c.personas != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	personas, err := c.svc.ListPersonas(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.personasErr = err
	if err != nil {
		return err
	}
	c.personas = personas
	return nil
}

// Personas returns the roster and the error of the latest load attempt.
func (c *Controller) Personas() ([]api.Persona, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.personas, c.personasErr
}

// Thread returns a copy of the conversation state for a persona, or nil if
// no interview has run yet.
func (c *Controller) Thread(personaID string) *Thread {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.threads[personaID]
	if !ok {
		return nil
	}
	return &Thread{
		PersonaID:      t.PersonaID,
		LatestResponse: t.LatestResponse,
		History:        append([]api.InterviewTurn(nil), t.History...),
	}
}

// Pending reports whether an interview operation for personaID is in
// flight; the UI disables that persona's affordance while true.
func (c *Controller) Pending(personaID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rebutsInFlight[personaID]
}

// RunInterview asks a persona for its initial take. Re-invoking is safe:
// the latest response is simply replaced and the thread history is left
// untouched. Operations on different personas proceed independently.
func (c *Controller) RunInterview(ctx context.Context, personaID string) (*api.InterviewResponse, error) {
	if err := c.acquire(personaID); err != nil {
		return nil, err
	}
	defer c.release(personaID)

	resp, err := c.svc.RunInterview(ctx, c.jobID, personaID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	t := c.ensureThreadLocked(personaID)
	t.LatestResponse = resp
	c.mu.Unlock()
	return resp, nil
}

// Rebut sends a founder rebuttal on a persona's thread. An empty or
// whitespace-only message is rejected locally with no network call. On
// success, exactly one founder turn and one persona turn are appended to
// the client-held history. The per-persona pending flag clears on every
// path, so a failed rebuttal never leaves the thread stuck "sending".
func (c *Controller) Rebut(ctx context.Context, personaID, message string) (*api.InterviewResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &api.ValidationError{Message: "rebuttal message is empty"}
	}

	if err := c.acquire(personaID); err != nil {
		return nil, err
	}
	defer c.release(personaID)

	c.mu.Lock()
	history := append([]api.InterviewTurn(nil), c.ensureThreadLocked(personaID).History...)
	c.mu.Unlock()

	resp, err := c.svc.Rebut(ctx, c.jobID, personaID, message, history)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	t := c.ensureThreadLocked(personaID)
	t.LatestResponse = resp
	t.History = append(t.History,
		api.InterviewTurn{Role: api.RoleFounder, Message: message},
		api.InterviewTurn{Role: api.RolePersona, Message: resp.Summary},
	)
	c.mu.Unlock()
	return resp, nil
}

func (c *Controller) acquire(personaID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rebutsInFlight[personaID] {
		return &api.ValidationError{Message: "an interview operation for this persona is already in flight"}
	}
	c.rebutsInFlight[personaID] = true
	return nil
}

func (c *Controller) release(personaID string) {
	c.mu.Lock()
	delete(c.rebutsInFlight, personaID)
	c.mu.Unlock()
}

func (c *Controller) ensureThreadLocked(personaID string) *Thread {
	t, ok := c.threads[personaID]
	if !ok {
		t = &Thread{PersonaID: personaID}
		c.threads[personaID] = t
	}
	return t
}

// --- verdict persistence ---

// PersistVerdict writes the verdict to the long-term sink exactly once per
// job id for the lifetime of this controller, no matter how many times the
// completed snapshot is observed. Sink failures are logged and swallowed:
// they must never block the user from viewing an already-fetched verdict.
// The return value reports whether a write was actually attempted.
func (c *Controller) PersistVerdict(ctx context.Context, env *api.VerdictEnvelope) bool {
	if env == nil || env.Verdict == nil {
		return false
	}

	c.mu.Lock()
	if c.saved[c.jobID] {
		c.mu.Unlock()
		return false
	}
	c.saved[c.jobID] = true
	c.mu.Unlock()

	if errs := validation.ValidateVerdict(env.Verdict); len(errs) > 0 {
		c.logger.Warn("verdict failed schema validation; skipping persistence",
			"job", c.jobID, "violations", len(errs), "first", errs[0])
		return false
	}

	if err := c.svc.SaveVerdict(ctx, c.jobID, env.Verdict, env.Status, env.IdeaTitle); err != nil {
		c.logger.Warn("verdict persistence failed", "job", c.jobID, "error", err)
	}
	return true
}
