package workspace

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/verdicthq/verdict/internal/api"
	"github.com/verdicthq/verdict/internal/api/mocks"
)

func newTestController(t *testing.T) (*Controller, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	return NewController(svc, "job-1"), svc
}

func samplePlan(done bool) *api.ExecutionPlan {
	return &api.ExecutionPlan{
		Checklist: []api.ChecklistTask{
			{ID: "t1", Title: "Talk to ten users", Completed: done},
			{ID: "t2", Title: "Ship landing page", Completed: false},
		},
		SprintPlan: []api.SprintTask{
			{ID: "s1", Day: 1, Task: "Draft interview script"},
		},
	}
}

func TestActivateLoadsPlanAndPersonasConcurrently(t *testing.T) {
	c, svc := newTestController(t)

	svc.EXPECT().FetchExecutionPlan(gomock.Any(), "job-1").Return(samplePlan(false), nil)
	svc.EXPECT().ListPersonas(gomock.Any()).Return([]api.Persona{
		{ID: "skeptic", Name: "The Skeptic"},
	}, nil)

	require.NoError(t, c.Activate(context.Background()))

	plan, err := c.Plan()
	require.NoError(t, err)
	require.Len(t, plan.Checklist, 2)

	personas, err := c.Personas()
	require.NoError(t, err)
	require.Len(t, personas, 1)
}

func TestActivatePlanFailureDoesNotBlockPersonas(t *testing.T) {
	c, svc := newTestController(t)

	svc.EXPECT().FetchExecutionPlan(gomock.Any(), "job-1").Return(nil, errors.New("plan unavailable"))
	svc.EXPECT().ListPersonas(gomock.Any()).Return([]api.Persona{
		{ID: "skeptic", Name: "The Skeptic"},
	}, nil)

	require.NoError(t, c.Activate(context.Background()))

	_, err := c.Plan()
	require.Error(t, err)

	personas, err := c.Personas()
	require.NoError(t, err)
	require.Len(t, personas, 1)
}

func TestToggleTaskReplacesWholePlan(t *testing.T) {
	c, svc := newTestController(t)

	svc.EXPECT().FetchExecutionPlan(gomock.Any(), "job-1").Return(samplePlan(false), nil)
	require.NoError(t, c.LoadPlan(context.Background()))

	updated := samplePlan(true)
	svc.EXPECT().
		ToggleTask(gomock.Any(), "job-1", "t1", api.ListChecklist, true).
		Return(updated, nil)

	require.NoError(t, c.ToggleTask(context.Background(), "t1", api.ListChecklist, true))

	plan, err := c.Plan()
	require.NoError(t, err)
	require.True(t, plan.Checklist[0].Completed)
}

func TestToggleTaskFailureKeepsPreviousPlan(t *testing.T) {
	c, svc := newTestController(t)

	svc.EXPECT().FetchExecutionPlan(gomock.Any(), "job-1").Return(samplePlan(false), nil)
	require.NoError(t, c.LoadPlan(context.Background()))

	svc.EXPECT().
		ToggleTask(gomock.Any(), "job-1", "t1", api.ListChecklist, true).
		Return(nil, errors.New("boom"))

	require.Error(t, c.ToggleTask(context.Background(), "t1", api.ListChecklist, true))

	plan, err := c.Plan()
	require.NoError(t, err)
	require.False(t, plan.Checklist[0].Completed, "local state must not flip without server confirmation")
	require.False(t, c.TaskPending("t1"), "pending flag must clear after a failed toggle")
}

func TestToggleTaskRejectsDuplicateInFlight(t *testing.T) {
	c, svc := newTestController(t)

	release := make(chan struct{})
	entered := make(chan struct{})
	svc.EXPECT().
		ToggleTask(gomock.Any(), "job-1", "t1", api.ListChecklist, true).
		DoAndReturn(func(context.Context, string, string, api.ListKind, bool) (*api.ExecutionPlan, error) {
			close(entered)
			<-release
			return samplePlan(true), nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.ToggleTask(context.Background(), "t1", api.ListChecklist, true)
	}()

	<-entered
	require.True(t, c.TaskPending("t1"))

	var ve *api.ValidationError
	err := c.ToggleTask(context.Background(), "t1", api.ListChecklist, false)
	require.ErrorAs(t, err, &ve)

	close(release)
	wg.Wait()
	require.False(t, c.TaskPending("t1"))
}

func TestRunInterviewReplacesLatestResponse(t *testing.T) {
	c, svc := newTestController(t)

	first := &api.InterviewResponse{Summary: "interesting but unproven"}
	second := &api.InterviewResponse{Summary: "still skeptical"}
	gomock.InOrder(
		svc.EXPECT().RunInterview(gomock.Any(), "job-1", "skeptic").Return(first, nil),
		svc.EXPECT().RunInterview(gomock.Any(), "job-1", "skeptic").Return(second, nil),
	)

	_, err := c.RunInterview(context.Background(), "skeptic")
	require.NoError(t, err)
	_, err = c.RunInterview(context.Background(), "skeptic")
	require.NoError(t, err)

	th := c.Thread("skeptic")
	require.NotNil(t, th)
	require.Equal(t, "still skeptical", th.LatestResponse.Summary)
	require.Empty(t, th.History, "re-running an interview does not touch the thread history")
}

func TestRebutRejectsBlankMessageWithoutNetwork(t *testing.T) {
	c, _ := newTestController(t)

	var ve *api.ValidationError
	_, err := c.Rebut(context.Background(), "skeptic", "   \n\t")
	require.ErrorAs(t, err, &ve)
	require.Nil(t, c.Thread("skeptic"))
}

func TestRebutAppendsOneFounderAndOnePersonaTurn(t *testing.T) {
	c, svc := newTestController(t)

	svc.EXPECT().
		Rebut(gomock.Any(), "job-1", "skeptic", "our churn is 2%", gomock.Len(0)).
		Return(&api.InterviewResponse{Summary: "that changes things"}, nil)

	_, err := c.Rebut(context.Background(), "skeptic", "our churn is 2%")
	require.NoError(t, err)

	th := c.Thread("skeptic")
	require.Len(t, th.History, 2)
	require.Equal(t, api.RoleFounder, th.History[0].Role)
	require.Equal(t, "our churn is 2%", th.History[0].Message)
	require.Equal(t, api.RolePersona, th.History[1].Role)
	require.Equal(t, "that changes things", th.History[1].Message)
}

func TestRebutSendsPriorHistory(t *testing.T) {
	c, svc := newTestController(t)

	svc.EXPECT().
		Rebut(gomock.Any(), "job-1", "skeptic", "first point", gomock.Len(0)).
		Return(&api.InterviewResponse{Summary: "noted"}, nil)
	svc.EXPECT().
		Rebut(gomock.Any(), "job-1", "skeptic", "second point", gomock.Len(2)).
		Return(&api.InterviewResponse{Summary: "conceded"}, nil)

	_, err := c.Rebut(context.Background(), "skeptic", "first point")
	require.NoError(t, err)
	_, err = c.Rebut(context.Background(), "skeptic", "second point")
	require.NoError(t, err)

	require.Len(t, c.Thread("skeptic").History, 4)
}

func TestRebutFailureClearsPendingAndLeavesHistory(t *testing.T) {
	c, svc := newTestController(t)

	svc.EXPECT().
		Rebut(gomock.Any(), "job-1", "skeptic", "hello?", gomock.Any()).
		Return(nil, errors.New("gateway timeout"))

	_, err := c.Rebut(context.Background(), "skeptic", "hello?")
	require.Error(t, err)
	require.False(t, c.Pending("skeptic"))
	require.Empty(t, c.Thread("skeptic").History, "failed rebuttals must not pollute the thread")
}

func TestPersonaOperationsAreIndependent(t *testing.T) {
	c, svc := newTestController(t)

	release := make(chan struct{})
	entered := make(chan struct{})
	svc.EXPECT().
		RunInterview(gomock.Any(), "job-1", "skeptic").
		DoAndReturn(func(context.Context, string, string) (*api.InterviewResponse, error) {
			close(entered)
			<-release
			return &api.InterviewResponse{Summary: "slow take"}, nil
		})
	svc.EXPECT().
		RunInterview(gomock.Any(), "job-1", "optimist").
		Return(&api.InterviewResponse{Summary: "love it"}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = c.RunInterview(context.Background(), "skeptic")
	}()

	<-entered
	require.True(t, c.Pending("skeptic"))
	require.False(t, c.Pending("optimist"))

	_, err := c.RunInterview(context.Background(), "optimist")
	require.NoError(t, err)

	close(release)
	wg.Wait()
}

func TestPersistVerdictWritesOncePerJob(t *testing.T) {
	c, svc := newTestController(t)

	env := &api.VerdictEnvelope{
		Status:    api.StatusCompleted,
		IdeaTitle: "AI dog walker",
		Verdict: &api.VerdictRecord{
			Decision:   api.DecisionProceed,
			Scorecard:  map[string]int{api.OverallScoreKey: 71, "market": 80},
			Confidence: 0.8,
		},
	}

	svc.EXPECT().
		SaveVerdict(gomock.Any(), "job-1", env.Verdict, api.StatusCompleted, "AI dog walker").
		Return(nil).
		Times(1)

	require.True(t, c.PersistVerdict(context.Background(), env))
	require.False(t, c.PersistVerdict(context.Background(), env), "same job must not be written twice")
}

func TestPersistVerdictSwallowsSinkError(t *testing.T) {
	c, svc := newTestController(t)

	env := &api.VerdictEnvelope{
		Status: api.StatusCompleted,
		Verdict: &api.VerdictRecord{
			Decision:   api.DecisionKill,
			Scorecard:  map[string]int{api.OverallScoreKey: 12},
			Confidence: 0.9,
		},
	}

	svc.EXPECT().
		SaveVerdict(gomock.Any(), "job-1", env.Verdict, api.StatusCompleted, "").
		Return(errors.New("sink offline"))

	require.True(t, c.PersistVerdict(context.Background(), env))
	// marked saved even though the sink failed: retry storms are worse
	// than a missing archive row
	require.False(t, c.PersistVerdict(context.Background(), env))
}

func TestPersistVerdictSkipsInvalidRecord(t *testing.T) {
	c, svc := newTestController(t)

	env := &api.VerdictEnvelope{
		Status: api.StatusCompleted,
		Verdict: &api.VerdictRecord{
			Decision:   api.DecisionProceed,
			Scorecard:  map[string]int{"market": 130},
			Confidence: 0.5,
		},
	}

	// no SaveVerdict expectation: validation must stop the write
	require.False(t, c.PersistVerdict(context.Background(), env))
	_ = svc
}

func TestPersistVerdictIgnoresNilVerdict(t *testing.T) {
	c, _ := newTestController(t)
	require.False(t, c.PersistVerdict(context.Background(), nil))
	require.False(t, c.PersistVerdict(context.Background(), &api.VerdictEnvelope{Status: api.StatusRunning}))
}
