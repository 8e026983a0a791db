// internal/session/watchdog.go
package session

import (
	"context"
	"sync"
	"time"
)

// DefaultIdleTimeout logs a user out after ten minutes without activity.
const DefaultIdleTimeout = 10 * time.Minute

// ActivityKind names the client events that count as user activity.
type ActivityKind string

const (
	ActivityPointer ActivityKind = "pointer"
	ActivityKey     ActivityKind = "key"
	ActivityScroll  ActivityKind = "scroll"
	ActivityTouch   ActivityKind = "touch"
	ActivityWheel   ActivityKind = "wheel"
	// ActivityRequest is any authenticated API call.
	ActivityRequest ActivityKind = "request"
)

func ValidActivity(k ActivityKind) bool {
	switch k {
	case ActivityPointer, ActivityKey, ActivityScroll, ActivityTouch, ActivityWheel, ActivityRequest:
		return true
	}
	return false
}

// Watchdog calls onExpire once if Reset is not called within timeout.
// After Stop returns, onExpire will not start.
type Watchdog struct {
	timeout  time.Duration
	onExpire func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
	expired bool
}

func NewWatchdog(timeout time.Duration, onExpire func()) *Watchdog {
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}
	return &Watchdog{timeout: timeout, onExpire: onExpire}
}

// Start arms the countdown. Calling it on a running watchdog restarts it.
func (w *Watchdog) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = false
	w.expired = false
	w.arm()
}

// Reset restarts the countdown and reports whether the watchdog was still
// running. It does nothing once the watchdog expired or was stopped.
func (w *Watchdog) Reset() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped || w.expired || w.timer == nil {
		return false
	}
	w.arm()
	return true
}

func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	w.gen++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watchdog) Expired() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.expired
}

// Run starts the watchdog and stops it when ctx is done. The returned func
// unregisters it from ctx; it reports false if ctx already stopped it.
func (w *Watchdog) Run(ctx context.Context) (release func() bool) {
	w.Start()
	return context.AfterFunc(ctx, w.Stop)
}

// arm must be called with mu held. The generation counter discards timers
// that fired while a Reset or Stop was waiting for the lock.
func (w *Watchdog) arm() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.gen++
	gen := w.gen
	w.timer = time.AfterFunc(w.timeout, func() { w.fire(gen) })
}

func (w *Watchdog) fire(gen uint64) {
	w.mu.Lock()
	if gen != w.gen || w.stopped || w.expired {
		w.mu.Unlock()
		return
	}
	w.expired = true
	w.timer = nil
	w.mu.Unlock()

	if w.onExpire != nil {
		w.onExpire()
	}
}
