// Package credits holds the client-side mirror of the server-held credit
// balance. The server is always authoritative; the cache exists so the UI
// can fail fast and show a balance without a round trip.
package credits

import (
	"context"
	"errors"
	"sync"

	"github.com/verdicthq/verdict/internal/api"
)

// ErrNeedTopUp is returned when the cached balance is exactly zero at
// submission time. The caller must route the user to the top-up flow
// before issuing any network request. The cache may be stale in the
// server's favor, so this is a UX shortcut, not an authorization check.
var ErrNeedTopUp = errors.New("credit balance is zero; top up required")

// Cost returns the credit cost of an evaluation mode. Short validation mode
// is free; the backend gates it by a daily-limit policy the client does not
// enforce.
func Cost(mode api.Mode) int {
	switch mode {
	case api.ModeShort:
		return 0
	default:
		return 1
	}
}

// BalanceFetcher reads the authoritative balance from billing.
type BalanceFetcher func(ctx context.Context) (int, error)

// Ledger is a session-scoped cached credit balance. It decrements
// speculatively on submission and is otherwise replaced wholesale by
// Refresh; it never reconciles or detects drift itself.
type Ledger struct {
	fetch BalanceFetcher

	mu      sync.Mutex
	balance int
	known   bool
}

// NewLedger creates a ledger with no cached balance.
func NewLedger(fetch BalanceFetcher) *Ledger {
	return &Ledger{fetch: fetch}
}

// Balance returns the cached balance and whether one is known.
func (l *Ledger) Balance() (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance, l.known
}

// CheckSubmission fails fast with ErrNeedTopUp when the cached balance is
// exactly zero and the mode costs anything. An unknown cache never blocks;
// the server's 402 remains the authoritative gate.
func (l *Ledger) CheckSubmission(mode api.Mode) error {
	if Cost(mode) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.known && l.balance == 0 {
		return ErrNeedTopUp
	}
	return nil
}

// Debit speculatively decrements the cached balance by the mode's cost,
// floored at zero. Called immediately on successful submission, without
// waiting for a server round trip. A ledger with no known balance is left
// untouched.
func (l *Ledger) Debit(mode api.Mode) {
	cost := Cost(mode)
	if cost == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.known {
		return
	}
	l.balance -= cost
	if l.balance < 0 {
		l.balance = 0
	}
}

// Refresh replaces the cached value with the authoritative server value.
// Callers invoke it after operations known to affect the balance, such as
// returning from a purchase flow.
func (l *Ledger) Refresh(ctx context.Context) (int, error) {
	balance, err := l.fetch(ctx)
	if err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance = balance
	l.known = true
	return balance, nil
}

// Clear drops the cached balance so the next check refetches it. The CLI
// builds a fresh ledger per command and the cache dies with the process, so
// nothing calls Clear today; it exists for long-lived embedders that outlive
// an authenticated session.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance = 0
	l.known = false
}
