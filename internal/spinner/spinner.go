package spinner

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Start displays an animated spinner with the given message on w.
// Call the returned function to stop the spinner and clear the line.
func Start(w io.Writer, message string) (stop func()) {
	s := New(w, message)
	s.Start()
	return s.Stop
}

// Spinner is an animated progress indicator whose message can change while
// it runs. The watch loop updates it on every phase transition.
type Spinner struct {
	w io.Writer

	mu      sync.Mutex
	message string
	maxLen  int
	started bool

	done     chan struct{}
	cleared  chan struct{}
	stopOnce sync.Once
}

// New creates a spinner writing to w. It does not start animating until
// Start is called.
func New(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		maxLen:  len(message),
		done:    make(chan struct{}),
		cleared: make(chan struct{}),
	}
}

// Start begins the animation goroutine.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	go func() {
		i := 0
		for {
			select {
			case <-s.done:
				s.mu.Lock()
				width := s.maxLen + 2
				s.mu.Unlock()
				fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width)) //nolint:errcheck
				close(s.cleared)
				return
			case <-time.After(80 * time.Millisecond):
				s.mu.Lock()
				msg := s.message
				s.mu.Unlock()
				fmt.Fprintf(s.w, "\r%s %s", frames[i%len(frames)], msg) //nolint:errcheck
				i++
			}
		}
	}()
}

// SetMessage swaps the displayed message on the next frame.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	if len(message) > s.maxLen {
		s.maxLen = len(message)
	}
}

// Stop halts the animation and clears the line. Safe to call more than once,
// and a no-op when Start never ran.
func (s *Spinner) Stop() {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return
	}
	s.stopOnce.Do(func() {
		close(s.done)
	})
	<-s.cleared
}
