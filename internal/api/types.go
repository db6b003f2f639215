package api

import "time"

// JobStatus is the lifecycle state of an evaluation job as reported by the
// backend.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Terminal reports whether a job in this status will never change again.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// JobSession is one evaluation run, identified by an opaque backend-assigned
// id. Snapshots are replaced whole on every fetch; the client never patches
// individual fields.
type JobSession struct {
	ID                string            `json:"id"`
	Status            JobStatus         `json:"status"`
	TranscriptEntries []TranscriptEntry `json:"transcript"`
	Error             string            `json:"error,omitempty"`
	IdeaTitle         string            `json:"ideaTitle,omitempty"`
}

// TranscriptEntry is one agent turn in the evaluation debate. Messages may
// contain lightweight markup: lines wrapped in ** render bold, lines starting
// with a bullet glyph render as list items.
type TranscriptEntry struct {
	AgentName string         `json:"agentName"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Round     int            `json:"round,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Decision is the closed vocabulary of verdict outcomes. Unrecognized values
// are preserved and render under a default style.
type Decision string

const (
	DecisionProceed   Decision = "proceed"
	DecisionPivot     Decision = "pivot"
	DecisionKill      Decision = "kill"
	DecisionNeedsWork Decision = "needs-work"
)

// KillShot is a single fatal-flaw finding surfaced by an agent.
type KillShot struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	SourceAgent string `json:"sourceAgent"`
}

// TestPlanItem is one day of the validation test plan.
type TestPlanItem struct {
	Day             int    `json:"day"`
	Task            string `json:"task"`
	SuccessCriteria string `json:"successCriteria"`
}

// InvestorReadiness summarizes how fundable the idea looks as-is.
type InvestorReadiness struct {
	Score        int      `json:"score"`
	VerdictLabel string   `json:"verdictLabel"`
	Reasons      []string `json:"reasons,omitempty"`
}

// VerdictRecord is the finalized structured outcome of a completed job.
// Created once by the backend and never mutated by the client.
type VerdictRecord struct {
	Decision          Decision          `json:"decision"`
	Scorecard         map[string]int    `json:"scorecard"`
	KillShots         []KillShot        `json:"killShots,omitempty"`
	Assumptions       []string          `json:"assumptions,omitempty"`
	TestPlan          []TestPlanItem    `json:"testPlan,omitempty"`
	PivotIdeas        []string          `json:"pivotIdeas,omitempty"`
	InvestorReadiness InvestorReadiness `json:"investorReadiness"`
	Reasoning         string            `json:"reasoning,omitempty"`
	Confidence        float64           `json:"confidence"`
}

// OverallScoreKey is the distinguished scorecard key holding the aggregate
// 0..100 score.
const OverallScoreKey = "overall_score"

// OverallScore returns the aggregate score, or 0 when absent.
func (v *VerdictRecord) OverallScore() int {
	return v.Scorecard[OverallScoreKey]
}

// VerdictEnvelope is the response of the verdict endpoint. Verdict is nil
// until the job completes; Message explains why when it is.
type VerdictEnvelope struct {
	Verdict     *VerdictRecord `json:"verdict"`
	Status      JobStatus      `json:"status"`
	Message     string         `json:"message,omitempty"`
	IdeaTitle   string         `json:"ideaTitle,omitempty"`
	StartedAt   time.Time      `json:"startedAt,omitempty"`
	LastUpdated time.Time      `json:"lastUpdated,omitempty"`
}

// ListKind distinguishes the two task lists of an execution plan.
type ListKind string

const (
	ListChecklist ListKind = "checklist"
	ListSprint    ListKind = "sprint"
)

// ChecklistTask is one actionable item derived from the verdict.
type ChecklistTask struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
	Title     string `json:"title"`
	Rationale string `json:"rationale,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Owner     string `json:"owner,omitempty"`
}

// SprintTask is one day-keyed item of the sprint plan.
type SprintTask struct {
	ID              string `json:"id"`
	Completed       bool   `json:"completed"`
	Day             int    `json:"day"`
	Task            string `json:"task"`
	SuccessCriteria string `json:"successCriteria,omitempty"`
}

// ExecutionPlan pairs the checklist with the sprint plan. The server is the
// single source of truth: every mutation returns the full plan, which
// replaces the client copy wholesale.
type ExecutionPlan struct {
	Checklist  []ChecklistTask `json:"checklist"`
	SprintPlan []SprintTask    `json:"sprintPlan"`
}

// Persona is a simulated stakeholder available for interviews.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description,omitempty"`
}

// InterviewResponse is what a persona says when interviewed or rebutted.
type InterviewResponse struct {
	Summary          string   `json:"summary"`
	Reactions        []string `json:"reactions,omitempty"`
	Concerns         []string `json:"concerns,omitempty"`
	WillingnessToPay string   `json:"willingnessToPay,omitempty"`
	AdoptionBarriers []string `json:"adoptionBarriers,omitempty"`
	Verdict          string   `json:"verdict,omitempty"`
	FollowUps        []string `json:"followUps,omitempty"`
}

// TurnRole identifies who spoke in an interview thread.
type TurnRole string

const (
	RoleFounder TurnRole = "founder"
	RolePersona TurnRole = "persona"
)

// InterviewTurn is one message of a rebuttal thread. History is purely
// client-held; it is sent with each rebuttal so the server can incorporate
// prior turns it does not itself retain.
type InterviewTurn struct {
	Role    TurnRole `json:"role"`
	Message string   `json:"message"`
}

// SubmitResult is returned when a job is accepted for evaluation.
type SubmitResult struct {
	JobID     string `json:"jobId"`
	IdeaTitle string `json:"ideaTitle,omitempty"`
}

// Mode selects how deep an evaluation runs.
type Mode string

const (
	// ModeDeep runs the full multi-agent debate.
	ModeDeep Mode = "deep"
	// ModeShort runs a quick single-pass validation.
	ModeShort Mode = "short"
)
