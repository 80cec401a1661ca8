// Package progress implements the "N modules remaining" ticker (spec.md
// §5): 100ms initial delay, 300ms repeat, auto-dismiss 1.5s after the
// last update. TTY detection gates whether updates are emitted at all,
// grounded on the teacher's internal/evaluator/builtins_term.go
// isatty.IsTerminal/IsCygwinTerminal check.
package progress

import (
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	initialDelay  = 100 * time.Millisecond
	repeatDelay   = 300 * time.Millisecond
	dismissAfter  = 1500 * time.Millisecond
)

// Reporter receives each "N modules remaining" update.
type Reporter func(remaining int)

// Ticker collapses bursts of SetRemaining calls into throttled updates
// and auto-dismisses when nothing changes for dismissAfter.
type Ticker struct {
	mu        sync.Mutex
	remaining int
	started   bool
	lastEmit  time.Time
	timer     *time.Timer
	emit      Reporter
	isTTY     func() bool
}

// NewTicker constructs a Ticker that calls emit on each throttled
// update. Its TTY check is always defaultIsTTY (os.Stdout).
func NewTicker(emit Reporter) *Ticker {
	return &Ticker{emit: emit, isTTY: defaultIsTTY}
}

func defaultIsTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetRemaining updates the outstanding module count (spec.md §5,
// "emits... at 100ms initial delay and 300ms repeat"). Non-TTY hosts
// (piped output, CI) never emit, matching the teacher's TTY gate.
func (t *Ticker) SetRemaining(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining = n
	if !t.isTTY() {
		return
	}
	if n <= 0 {
		t.stopLocked()
		return
	}
	if !t.started {
		t.started = true
		t.scheduleLocked(initialDelay)
		return
	}
	t.scheduleLocked(repeatDelay)
}

func (t *Ticker) scheduleLocked(delay time.Duration) {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(delay, t.fire)
}

func (t *Ticker) fire() {
	t.mu.Lock()
	remaining := t.remaining
	t.lastEmit = time.Now()
	emit := t.emit
	t.mu.Unlock()

	if emit != nil {
		emit(remaining)
	}

	t.mu.Lock()
	if t.remaining > 0 {
		t.timer = time.AfterFunc(dismissAfter, t.dismiss)
	}
	t.mu.Unlock()
}

func (t *Ticker) dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if time.Since(t.lastEmit) >= dismissAfter {
		t.stopLocked()
	}
}

func (t *Ticker) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.started = false
}

// Stop cancels any pending timer.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}
