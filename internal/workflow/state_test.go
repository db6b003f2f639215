package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdicthq/verdict/internal/api"
)

func session(id string, status api.JobStatus) *api.JobSession {
	return &api.JobSession{ID: id, Status: status}
}

func TestHappyPathTransitions(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, PhaseIdle, m.Phase())

	m.Begin("job-1")
	assert.Equal(t, PhaseLoading, m.Phase())

	assert.Equal(t, PhasePending, m.Apply(session("job-1", api.StatusPending)))
	assert.Equal(t, PhaseRunning, m.Apply(session("job-1", api.StatusRunning)))
	assert.Equal(t, PhaseCompleted, m.Apply(session("job-1", api.StatusCompleted)))
	assert.True(t, m.WorkspaceReachable())
}

func TestNoRegressionAfterTerminal(t *testing.T) {
	m := NewMachine()
	m.Begin("job-1")

	m.Apply(session("job-1", api.StatusPending))
	m.Apply(session("job-1", api.StatusRunning))
	m.Apply(session("job-1", api.StatusCompleted))

	// Any interleaving of manual refresh and scheduled ticks may redeliver
	// older snapshots; they must never win.
	assert.Equal(t, PhaseCompleted, m.Apply(session("job-1", api.StatusRunning)))
	assert.Equal(t, PhaseCompleted, m.Apply(session("job-1", api.StatusPending)))
	assert.Equal(t, PhaseCompleted, m.Phase())
}

func TestFailedIsTerminalToo(t *testing.T) {
	m := NewMachine()
	m.Begin("job-1")

	m.Apply(session("job-1", api.StatusFailed))
	assert.Equal(t, PhaseFailed, m.Apply(session("job-1", api.StatusRunning)))
	assert.False(t, m.WorkspaceReachable())
}

func TestOtherJobSnapshotsIgnored(t *testing.T) {
	m := NewMachine()
	m.Begin("job-1")
	m.Apply(session("job-1", api.StatusRunning))

	assert.Equal(t, PhaseRunning, m.Apply(session("job-2", api.StatusCompleted)))
	assert.Equal(t, PhaseRunning, m.Phase())
}

func TestErrorAxisIsIndependent(t *testing.T) {
	m := NewMachine()
	m.Begin("job-1")
	m.Apply(session("job-1", api.StatusRunning))

	m.ApplyError(errors.New("connection reset"))
	assert.Equal(t, PhaseRunning, m.Phase(), "stale last-known status survives a transport error")
	assert.Equal(t, "connection reset", m.Err())

	// A successful snapshot clears the error axis.
	m.Apply(session("job-1", api.StatusRunning))
	assert.Empty(t, m.Err())
}

func TestMessages(t *testing.T) {
	m := NewMachine()
	m.Begin("job-1")

	m.Apply(session("job-1", api.StatusPending))
	assert.Contains(t, m.Message(), "processing will begin")

	m.Apply(session("job-1", api.StatusRunning))
	assert.Contains(t, m.Message(), "analyzing")

	m.Apply(session("job-1", api.StatusCompleted))
	assert.Contains(t, m.Message(), "transcript and verdict")
}

func TestFailedMessageSurfacesJobErrorVerbatim(t *testing.T) {
	m := NewMachine()
	m.Begin("job-1")

	failed := session("job-1", api.StatusFailed)
	failed.Error = "evaluation engine exploded: out of patience"
	m.Apply(failed)

	require.Equal(t, "evaluation engine exploded: out of patience", m.Message())
}
