package session

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of session event.
type EventType string

const (
	EventSessionStart    EventType = "session_start"
	EventSessionEnd      EventType = "session_complete"
	EventSubmitted       EventType = "job_submitted"
	EventPhaseChange     EventType = "phase_change"
	EventVerdictReceived EventType = "verdict_received"
	EventInterview       EventType = "interview"
	EventRebuttal        EventType = "rebuttal"
	EventTaskToggle      EventType = "task_toggle"
	EventCredits         EventType = "credits"
	EventError           EventType = "error"
)

// Event is a single timestamped entry in a session log.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]any) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Type:      t,
		Data:      data,
	}
}

// SessionStartData returns event data for a session start. The session id is
// generated here and never reused.
func SessionStartData(mode string) map[string]any {
	return map[string]any{
		"session_id": uuid.NewString(),
		"mode":       mode,
	}
}

// SessionCompleteData returns event data for a session end.
func SessionCompleteData(durationMs int64) map[string]any {
	return map[string]any{
		"duration_ms": durationMs,
	}
}

// SubmittedData returns event data for an accepted submission.
func SubmittedData(jobID, ideaTitle, mode string) map[string]any {
	return map[string]any{
		"job_id":     jobID,
		"idea_title": ideaTitle,
		"mode":       mode,
	}
}

// PhaseChangeData returns event data for a workflow phase transition.
func PhaseChangeData(jobID, from, to string, transcriptLen int) map[string]any {
	return map[string]any{
		"job_id":         jobID,
		"from":           from,
		"to":             to,
		"transcript_len": transcriptLen,
	}
}

// VerdictReceivedData returns event data for a fetched verdict.
func VerdictReceivedData(jobID, decision string, score int) map[string]any {
	return map[string]any{
		"job_id":   jobID,
		"decision": decision,
		"score":    score,
	}
}

// InterviewData returns event data for a persona interview or rebuttal.
func InterviewData(jobID, personaID string, turns int) map[string]any {
	return map[string]any{
		"job_id":     jobID,
		"persona_id": personaID,
		"turns":      turns,
	}
}

// TaskToggleData returns event data for an execution plan task toggle.
func TaskToggleData(jobID, taskID, list string, completed bool) map[string]any {
	return map[string]any{
		"job_id":    jobID,
		"task_id":   taskID,
		"list":      list,
		"completed": completed,
	}
}

// CreditsData returns event data for a balance change.
func CreditsData(balance int, source string) map[string]any {
	return map[string]any{
		"balance": balance,
		"source":  source,
	}
}

// ErrorData returns event data for an error.
func ErrorData(message string, details map[string]any) map[string]any {
	d := map[string]any{
		"message": message,
	}
	for k, v := range details {
		d[k] = v
	}
	return d
}
