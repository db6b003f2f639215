// Package poller keeps a JobSession snapshot fresh without flooding
// subscribers with no-op updates and without polling a finished job forever.
package poller

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/verdicthq/verdict/internal/api"
)

// Fetcher retrieves the current snapshot for a job.
type Fetcher func(ctx context.Context, jobID string) (*api.JobSession, error)

// OnChange is invoked once per meaningful snapshot replacement. It is never
// called for a payload whose fingerprint matches the previous one.
type OnChange func(*api.JobSession)

// OnError is invoked for every failed fetch. The last good snapshot is
// retained across failures; a later successful tick clears the condition.
type OnError func(error)

// DefaultInterval is the fixed polling period. There is no backoff;
// correctness comes from the single-in-flight rule, not from pacing.
const DefaultInterval = 3 * time.Second

// Poller repeatedly fetches job status on a fixed interval, suppresses
// no-op updates via a structural fingerprint, and stops scheduling
// unconditionally once a terminal snapshot is observed.
type Poller struct {
	jobID    string
	fetch    Fetcher
	onChange OnChange
	onError  OnError
	interval time.Duration
	logger   *slog.Logger

	mu          sync.Mutex
	active      bool
	stopped     bool // set by Stop() or by a terminal snapshot
	inFlight    bool
	fingerprint string
	snapshot    *api.JobSession
	lastFetch   time.Time
	cancel      context.CancelFunc
	done        chan struct{}
}

// Option customizes a Poller.
type Option func(*Poller)

// WithInterval overrides the fixed polling period.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Poller) { p.logger = l }
}

// WithOnError registers a callback for failed fetches.
func WithOnError(fn OnError) Option {
	return func(p *Poller) { p.onError = fn }
}

// New creates a poller for jobID. onChange may be nil.
func New(jobID string, fetch Fetcher, onChange OnChange, opts ...Option) *Poller {
	p := &Poller{
		jobID:    jobID,
		fetch:    fetch,
		onChange: onChange,
		interval: DefaultInterval,
		logger:   slog.Default(),
		active:   true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins scheduling ticks. It returns immediately; polling happens on
// a background goroutine until Stop is called or a terminal snapshot
// arrives. Calling Start on a stopped poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.loop(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Prime immediately rather than waiting out the first interval.
	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			skip := !p.active || p.inFlight || p.stopped
			stopped := p.stopped
			p.mu.Unlock()
			if stopped {
				return
			}
			if skip {
				continue
			}
			p.poll(ctx)
		}
	}
}

// Stop synchronously halts the timer and guarantees that any already
// in-flight fetch's eventual response is discarded on arrival.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopped = true
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// SetActive toggles scheduled polling. It does not affect manual Refresh
// and cannot resurrect a poller that has seen a terminal snapshot.
func (p *Poller) SetActive(active bool) {
	p.mu.Lock()
	p.active = active
	p.mu.Unlock()
}

// Refresh performs a user-triggered fetch that bypasses the interval but
// flows through the same fingerprint check and terminal rule.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()
	return p.poll(ctx)
}

// Snapshot returns the last good snapshot, or nil before the first
// successful fetch.
func (p *Poller) Snapshot() *api.JobSession {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// LastFetch returns the wall-clock time of the most recent completed fetch,
// whether or not it changed anything.
func (p *Poller) LastFetch() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastFetch
}

// poll performs one fetch and applies the result. At most one fetch is in
// flight at a time; overlapping calls return immediately.
func (p *Poller) poll(ctx context.Context) error {
	p.mu.Lock()
	if p.inFlight || p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.inFlight = true
	p.mu.Unlock()

	snapshot, err := p.fetch(ctx, p.jobID)

	p.mu.Lock()
	p.inFlight = false
	p.lastFetch = time.Now()

	if p.stopped {
		// Torn down while the fetch was in flight; the response is stale
		// and must not be applied.
		p.mu.Unlock()
		return nil
	}
	if err != nil {
		// A failed tick keeps the last good snapshot; the next tick
		// proceeds normally.
		p.mu.Unlock()
		p.logger.Debug("status fetch failed", "job", p.jobID, "error", err)
		if p.onError != nil {
			p.onError(err)
		}
		return err
	}

	fp := Fingerprint(snapshot)
	if fp == p.fingerprint {
		p.mu.Unlock()
		return nil
	}
	p.fingerprint = fp
	p.snapshot = snapshot

	if snapshot.Status.Terminal() {
		// A finished job never changes again; no further ticks, no matter
		// what the active flag says.
		p.stopped = true
		if p.cancel != nil {
			p.cancel()
		}
	}
	p.mu.Unlock()

	// Notify outside the lock so subscribers may call back into the poller.
	if p.onChange != nil {
		p.onChange(snapshot)
	}
	return nil
}

// Fingerprint computes a structural fingerprint of a snapshot: sha256 over
// its canonical JSON encoding. Deep equality is the contract; speed is not.
func Fingerprint(s *api.JobSession) string {
	data, err := json.Marshal(s)
	if err != nil {
		// JobSession contains nothing unmarshalable; treat this as a
		// change so a broken payload is never silently swallowed.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
