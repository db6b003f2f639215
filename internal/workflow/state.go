// Package workflow derives the small discrete UI state shown while an
// evaluation runs. Transitions are driven only by poller notifications and
// explicit user actions; a job that has reached a terminal phase never
// regresses.
package workflow

import (
	"sync"

	"github.com/verdicthq/verdict/internal/api"
)

// Phase is the discrete state the client renders.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhasePending   Phase = "pending"
	PhaseRunning   Phase = "running"
	PhaseCompleted Phase = "completed"
	PhaseFailed    Phase = "failed"
)

// Terminal reports whether the phase can never change again for this job.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// Machine tracks the workflow phase for one job id. The transport-error
// axis is independent of the phase: an error can co-occur with a stale
// last-known status.
type Machine struct {
	mu       sync.Mutex
	jobID    string
	phase    Phase
	errMsg   string // transport-error axis, "" when clear
	snapshot *api.JobSession
}

// NewMachine creates a machine in the idle phase.
func NewMachine() *Machine {
	return &Machine{phase: PhaseIdle}
}

// Begin marks a submission in flight for jobID and enters loading.
func (m *Machine) Begin(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobID = jobID
	m.phase = PhaseLoading
	m.errMsg = ""
	m.snapshot = nil
}

// Apply ingests a status snapshot. Snapshots for other job ids are ignored,
// as is any pending/running snapshot arriving after a terminal phase was
// observed for this job. It returns the resulting phase.
func (m *Machine) Apply(s *api.JobSession) Phase {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.jobID != "" && s.ID != m.jobID {
		return m.phase
	}

	next := phaseFor(s.Status)
	if m.phase.Terminal() && !next.Terminal() {
		// No regression from completed/failed back to pending/running.
		return m.phase
	}

	m.phase = next
	m.errMsg = ""
	m.snapshot = s
	return m.phase
}

// ApplyError raises the transport-error axis without touching the
// last-known phase or snapshot.
func (m *Machine) ApplyError(err error) {
	if err == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errMsg = err.Error()
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Err returns the transport error message, or "" when the error axis is
// clear.
func (m *Machine) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

// Snapshot returns the last applied snapshot, or nil.
func (m *Machine) Snapshot() *api.JobSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// WorkspaceReachable reports whether the post-verdict workspace may be
// entered.
func (m *Machine) WorkspaceReachable() bool {
	return m.Phase() == PhaseCompleted
}

// Message returns the explanatory line rendered for the current phase. For
// the failed phase the job's own error string is surfaced verbatim.
func (m *Machine) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhaseIdle:
		return "Submit an idea to start an evaluation."
	case PhaseLoading:
		return "Submitting..."
	case PhasePending:
		return "Queued — processing will begin shortly."
	case PhaseRunning:
		return "The agents are analyzing your idea."
	case PhaseCompleted:
		return "Evaluation complete — review the transcript and verdict."
	case PhaseFailed:
		if m.snapshot != nil && m.snapshot.Error != "" {
			return m.snapshot.Error
		}
		return "The evaluation failed."
	default:
		return ""
	}
}

func phaseFor(s api.JobStatus) Phase {
	switch s {
	case api.StatusPending:
		return PhasePending
	case api.StatusRunning:
		return PhaseRunning
	case api.StatusCompleted:
		return PhaseCompleted
	case api.StatusFailed:
		return PhaseFailed
	default:
		// Unknown statuses keep the loading treatment rather than erroring.
		return PhaseLoading
	}
}
