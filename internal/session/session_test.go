package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run-session.jsonl")
	l, err := NewJSONLogger(path)
	require.NoError(t, err)

	require.NoError(t, l.Log(NewEvent(EventSessionStart, SessionStartData("deep"))))
	require.NoError(t, l.Log(NewEvent(EventSubmitted, SubmittedData("job-1", "AI dog walker", "deep"))))
	require.NoError(t, l.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	var lines []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		lines = append(lines, ev)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 2)
	assert.Equal(t, EventSessionStart, lines[0].Type)
	assert.NotEmpty(t, lines[0].Data["session_id"])
	assert.Equal(t, "job-1", lines[1].Data["job_id"])
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := SessionStartData("deep")
	b := SessionStartData("deep")
	assert.NotEqual(t, a["session_id"], b["session_id"])
}

func TestReadEventsSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x-session.jsonl")
	content := `{"timestamp":"2026-01-02T03:04:05Z","type":"session_start","data":{"mode":"deep"}}
this is not json
{"timestamp":"2026-01-02T03:04:06Z","type":"session_complete","data":{"duration_ms":1000}}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	events, err := ReadEvents(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventSessionStart, events[0].Type)
	assert.Equal(t, EventSessionEnd, events[1].Type)
}

func TestListSessionsNewestFirst(t *testing.T) {
	dir := t.TempDir()

	older := filepath.Join(dir, "a-session.jsonl")
	newer := filepath.Join(dir, "b-session.jsonl")
	require.NoError(t, os.WriteFile(older, []byte("{}\n"), 0644))
	require.NoError(t, os.WriteFile(newer, []byte("{}\n{}\n"), 0644))

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, old, old))

	// Non-session files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	files, err := ListSessions(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "b-session.jsonl", files[0].Name)
	assert.Equal(t, 2, files[0].NumEvents)
	assert.Equal(t, 1, files[1].NumEvents)
}

func TestRenderTimeline(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	events := []Event{
		{Timestamp: base, Type: EventSessionStart, Data: map[string]any{"mode": "deep"}},
		{Timestamp: base.Add(100 * time.Millisecond), Type: EventSubmitted,
			Data: map[string]any{"job_id": "job-1", "idea_title": "AI dog walker"}},
		{Timestamp: base.Add(3 * time.Second), Type: EventPhaseChange,
			Data: map[string]any{"from": "pending", "to": "running", "transcript_len": float64(2)}},
		{Timestamp: base.Add(40 * time.Second), Type: EventVerdictReceived,
			Data: map[string]any{"decision": "proceed", "score": float64(71)}},
		{Timestamp: base.Add(41 * time.Second), Type: EventSessionEnd,
			Data: map[string]any{"duration_ms": float64(41000)}},
	}

	var buf bytes.Buffer
	RenderTimeline(&buf, events)
	out := buf.String()

	assert.Contains(t, out, "SESSION TIMELINE")
	assert.Contains(t, out, "mode=deep")
	assert.Contains(t, out, `Submitted "AI dog walker"`)
	assert.Contains(t, out, "pending → running")
	assert.Contains(t, out, "Verdict: proceed  score=71")
	assert.Contains(t, out, "Session complete")
}

func TestRenderTimelineEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderTimeline(&buf, nil)
	assert.Contains(t, buf.String(), "No events found.")
}

func TestDefaultLogPath(t *testing.T) {
	p := DefaultLogPath("/tmp/sessions")
	assert.True(t, strings.HasPrefix(p, "/tmp/sessions/"))
	assert.True(t, strings.HasSuffix(p, "-session.jsonl"))
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	assert.NoError(t, l.Log(NewEvent(EventError, ErrorData("boom", nil))))
	assert.NoError(t, l.Close())
}
