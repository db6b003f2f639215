package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a bytes.Buffer for use from the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerWritesFramesAndClears(t *testing.T) {
	var buf syncBuffer
	s := New(&buf, "evaluating")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	require.Contains(t, out, "evaluating")
	assert.True(t, strings.HasSuffix(out, "\r"), "line must be cleared on stop")
}

func TestSetMessageSwapsText(t *testing.T) {
	var buf syncBuffer
	s := New(&buf, "waiting in queue")
	s.Start()
	time.Sleep(120 * time.Millisecond)
	s.SetMessage("agents are analyzing")
	time.Sleep(120 * time.Millisecond)
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "waiting in queue")
	assert.Contains(t, out, "agents are analyzing")
}

func TestStopIsIdempotent(t *testing.T) {
	var buf syncBuffer
	s := New(&buf, "x")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestStopWithoutStartReturns(t *testing.T) {
	var buf syncBuffer
	s := New(&buf, "never shown")

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that was never started")
	}
	assert.Empty(t, buf.String())
}

func TestStartHelper(t *testing.T) {
	var buf syncBuffer
	stop := Start(&buf, "working")
	time.Sleep(120 * time.Millisecond)
	stop()
	assert.Contains(t, buf.String(), "working")
}
