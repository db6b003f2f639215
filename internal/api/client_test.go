package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func staticCreds(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}

func TestSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/submit", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "my great idea", body["document"])
		assert.Equal(t, "deep", body["mode"])

		writeJSON(t, w, http.StatusOK, SubmitResult{JobID: "abc", IdeaTitle: "X"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticCreds("tok-1"))
	result, err := c.Submit(context.Background(), "my great idea", ModeDeep)
	require.NoError(t, err)
	assert.Equal(t, "abc", result.JobID)
	assert.Equal(t, "X", result.IdeaTitle)
}

func TestSubmit_EmptyDocumentNeverHitsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Submit(context.Background(), "   \n\t", ModeDeep)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, hits.Load())
}

func TestSubmit_PaymentRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusPaymentRequired, map[string]string{"error": "balance is 0"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Submit(context.Background(), "idea", ModeDeep)

	var ice *InsufficientCreditsError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, "balance is 0", ice.Detail)
	assert.True(t, IsInsufficientCredits(err))
}

func TestFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/job/job-1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, JobSession{
			ID:     "job-1",
			Status: StatusRunning,
			TranscriptEntries: []TranscriptEntry{
				{AgentName: "skeptic", Message: "**Weak moat.**", Round: 1},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	session, err := c.FetchStatus(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, session.Status)
	require.Len(t, session.TranscriptEntries, 1)
	assert.Equal(t, "skeptic", session.TranscriptEntries[0].AgentName)
}

func TestFetchStatus_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "no such job"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.FetchStatus(context.Background(), "missing")

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusNotFound, re.StatusCode)
	assert.Equal(t, "no such job", re.Detail)
}

func TestUnauthorizedRetriesExactlyOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, http.StatusOK, JobSession{ID: "j", Status: StatusPending})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticCreds("tok"))
	session, err := c.FetchStatus(context.Background(), "j")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, session.Status)
	assert.Equal(t, int32(2), hits.Load())
}

func TestUnauthorizedTwiceIsSurfaced(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticCreds("tok"))
	_, err := c.FetchStatus(context.Background(), "j")

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusUnauthorized, re.StatusCode)
	// One refresh-and-retry, never a loop.
	assert.Equal(t, int32(2), hits.Load())
}

func TestToggleTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/job/j1/plan/tasks/t1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "checklist", body["listKind"])
		assert.Equal(t, true, body["completed"])

		writeJSON(t, w, http.StatusOK, ExecutionPlan{
			Checklist: []ChecklistTask{{ID: "t1", Completed: true, Title: "Talk to 10 users"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	plan, err := c.ToggleTask(context.Background(), "j1", "t1", ListChecklist, true)
	require.NoError(t, err)
	require.Len(t, plan.Checklist, 1)
	assert.True(t, plan.Checklist[0].Completed)
}

func TestRebut_EmptyMessageNeverHitsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Rebut(context.Background(), "j1", "p1", "   ", nil)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, hits.Load())
}

func TestRebut_SendsHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			JobID     string          `json:"jobId"`
			PersonaID string          `json:"personaId"`
			Message   string          `json:"message"`
			History   []InterviewTurn `json:"history"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body.PersonaID)
		require.Len(t, body.History, 2)
		assert.Equal(t, RoleFounder, body.History[0].Role)

		writeJSON(t, w, http.StatusOK, map[string]any{
			"persona":  Persona{ID: "p1"},
			"response": InterviewResponse{Summary: "fair point"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	history := []InterviewTurn{
		{Role: RoleFounder, Message: "what about pricing?"},
		{Role: RolePersona, Message: "too expensive"},
	}
	resp, err := c.Rebut(context.Background(), "j1", "p1", "we cut the price", history)
	require.NoError(t, err)
	assert.Equal(t, "fair point", resp.Summary)
}

func TestFetchVerdict_NotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, VerdictEnvelope{
			Status:  StatusRunning,
			Message: "verdict not yet available",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	env, err := c.FetchVerdict(context.Background(), "j1")
	require.NoError(t, err)
	assert.Nil(t, env.Verdict)
	assert.Equal(t, "verdict not yet available", env.Message)
}

func TestFetchCredits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/credits", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]int{"balance": 7})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	balance, err := c.FetchCredits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, balance)
}

func TestDecodeMetadata(t *testing.T) {
	entry := TranscriptEntry{
		AgentName: "realist",
		Metadata: map[string]any{
			"model":      "sonnet",
			"stage":      "rebuttal",
			"confidence": 0.81,
			"tokens":     float64(512), // JSON numbers decode to float64
			"internal":   "ignored",
		},
	}

	md, err := entry.DecodeMetadata()
	require.NoError(t, err)
	assert.Equal(t, "sonnet", md.Model)
	assert.Equal(t, "rebuttal", md.Stage)
	assert.InDelta(t, 0.81, md.Confidence, 0.001)
	assert.Equal(t, 512, md.Tokens)
}

func TestDecisionVocabulary(t *testing.T) {
	// Unrecognized decisions must not error anywhere in the model layer.
	v := VerdictRecord{Decision: Decision("GREENLIGHT"), Scorecard: map[string]int{OverallScoreKey: 88}}
	assert.Equal(t, 88, v.OverallScore())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusRunning.Terminal())
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}
