// Package api is the typed client for the remote evaluation service. It
// exposes one request/response function per backend operation and converts
// transport failures into the tagged error types in errors.go. It never
// retries on its own, with a single exception: one silent credential
// refresh-and-retry on a 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Service is the accessor surface consumed by the poller, the workspace
// controller, and the credit ledger. *Client is the production
// implementation.
type Service interface {
	Submit(ctx context.Context, document string, mode Mode) (*SubmitResult, error)
	FetchStatus(ctx context.Context, jobID string) (*JobSession, error)
	FetchVerdict(ctx context.Context, jobID string) (*VerdictEnvelope, error)
	FetchExecutionPlan(ctx context.Context, jobID string) (*ExecutionPlan, error)
	ToggleTask(ctx context.Context, jobID, taskID string, list ListKind, completed bool) (*ExecutionPlan, error)
	ListPersonas(ctx context.Context) ([]Persona, error)
	RunInterview(ctx context.Context, jobID, personaID string) (*InterviewResponse, error)
	Rebut(ctx context.Context, jobID, personaID, message string, history []InterviewTurn) (*InterviewResponse, error)
	SaveVerdict(ctx context.Context, jobID string, verdict *VerdictRecord, status JobStatus, ideaTitle string) error
	FetchCredits(ctx context.Context) (int, error)
}

// Client talks HTTP/JSON to the evaluation backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      oauth2.TokenSource
	logger     *slog.Logger
}

// Option customizes Client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (useful for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the service at baseURL. Credentials are
// pulled from creds on every request; creds may be nil for unauthenticated
// test servers.
func NewClient(baseURL string, creds oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		creds:      creds,
		logger:     slog.Default(),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends a document for evaluation. An empty document fails locally
// with a ValidationError; a 402 response becomes InsufficientCreditsError.
func (c *Client) Submit(ctx context.Context, document string, mode Mode) (*SubmitResult, error) {
	if strings.TrimSpace(document) == "" {
		return nil, &ValidationError{Message: "document is empty"}
	}
	if mode == "" {
		mode = ModeDeep
	}

	body := map[string]string{"document": document, "mode": string(mode)}
	var result SubmitResult
	if err := c.do(ctx, http.MethodPost, "/submit", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchStatus returns the current whole-snapshot view of a job.
func (c *Client) FetchStatus(ctx context.Context, jobID string) (*JobSession, error) {
	var session JobSession
	if err := c.do(ctx, http.MethodGet, "/job/"+url.PathEscape(jobID), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// FetchVerdict returns the verdict envelope for a job. Envelope.Verdict is
// nil while the job is still in flight.
func (c *Client) FetchVerdict(ctx context.Context, jobID string) (*VerdictEnvelope, error) {
	var env VerdictEnvelope
	if err := c.do(ctx, http.MethodGet, "/job/"+url.PathEscape(jobID)+"/verdict", nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// FetchExecutionPlan returns the checklist/sprint pairing for a completed job.
func (c *Client) FetchExecutionPlan(ctx context.Context, jobID string) (*ExecutionPlan, error) {
	var plan ExecutionPlan
	if err := c.do(ctx, http.MethodGet, "/job/"+url.PathEscape(jobID)+"/plan", nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// ToggleTask flips one task's completion state. The response is the full
// authoritative plan; the caller replaces its copy with it, never merges.
func (c *Client) ToggleTask(ctx context.Context, jobID, taskID string, list ListKind, completed bool) (*ExecutionPlan, error) {
	body := map[string]any{"listKind": string(list), "completed": completed}
	path := "/job/" + url.PathEscape(jobID) + "/plan/tasks/" + url.PathEscape(taskID)

	var plan ExecutionPlan
	if err := c.do(ctx, http.MethodPost, path, body, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListPersonas returns the interview persona roster.
func (c *Client) ListPersonas(ctx context.Context) ([]Persona, error) {
	var personas []Persona
	if err := c.do(ctx, http.MethodGet, "/personas", nil, &personas); err != nil {
		return nil, err
	}
	return personas, nil
}

// interviewEnvelope matches the interview endpoints' response shape.
type interviewEnvelope struct {
	Persona  Persona            `json:"persona"`
	Response *InterviewResponse `json:"response"`
}

// RunInterview asks a persona for its initial reaction. Safe to re-invoke;
// the caller simply replaces the previous response.
func (c *Client) RunInterview(ctx context.Context, jobID, personaID string) (*InterviewResponse, error) {
	body := map[string]string{"jobId": jobID, "personaId": personaID}
	var env interviewEnvelope
	if err := c.do(ctx, http.MethodPost, "/interviews/run", body, &env); err != nil {
		return nil, err
	}
	if env.Response == nil {
		return nil, &RemoteError{StatusCode: http.StatusOK, Detail: "interview response missing from payload"}
	}
	return env.Response, nil
}

// Rebut sends a founder rebuttal plus the client-held thread history, which
// the server does not retain between calls.
func (c *Client) Rebut(ctx context.Context, jobID, personaID, message string, history []InterviewTurn) (*InterviewResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{Message: "rebuttal message is empty"}
	}

	body := map[string]any{
		"jobId":     jobID,
		"personaId": personaID,
		"message":   message,
		"history":   history,
	}
	var env interviewEnvelope
	if err := c.do(ctx, http.MethodPost, "/interviews/rebuttal", body, &env); err != nil {
		return nil, err
	}
	if env.Response == nil {
		return nil, &RemoteError{StatusCode: http.StatusOK, Detail: "rebuttal response missing from payload"}
	}
	return env.Response, nil
}

// SaveVerdict writes a finalized verdict to the long-term persistence sink.
// The endpoint is idempotent on jobID.
func (c *Client) SaveVerdict(ctx context.Context, jobID string, verdict *VerdictRecord, status JobStatus, ideaTitle string) error {
	body := map[string]any{
		"jobId":     jobID,
		"verdict":   verdict,
		"status":    string(status),
		"ideaTitle": ideaTitle,
	}
	return c.do(ctx, http.MethodPost, "/verdicts", body, nil)
}

// FetchCredits reads the authoritative credit balance from billing.
func (c *Client) FetchCredits(ctx context.Context) (int, error) {
	var resp struct {
		Balance int `json:"balance"`
	}
	if err := c.do(ctx, http.MethodGet, "/credits", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// do issues one request and decodes the JSON response into out (when out is
// non-nil). A single 401 triggers exactly one credential refresh and retry;
// there is never a retry loop.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.creds != nil {
		drain(resp)
		c.logger.Debug("got 401, refreshing credential and retrying once", "path", path)
		resp, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusPaymentRequired {
		return &InsufficientCreditsError{Detail: readDetail(resp.Body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{StatusCode: resp.StatusCode, Detail: fmt.Sprintf("decoding response: %v", err)}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		tok, err := c.creds.Token()
		if err != nil {
			return nil, fmt.Errorf("acquiring credential: %w", err)
		}
		tok.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteError{Detail: err.Error()}
	}
	return resp, nil
}

// readDetail extracts an error detail from a JSON error body, falling back
// to the raw text.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 8*1024))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(data))
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()              //nolint:errcheck
}

var _ Service = (*Client)(nil)
