// internal/session/manager.go
package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Manager tracks authenticated tokens and drops them after the idle timeout.
// A token the Manager does not know is treated as logged out.
type Manager struct {
	timeout time.Duration
	log     logrus.FieldLogger
	ctx     context.Context

	mu       sync.Mutex
	sessions map[string]*entry
	onExpire func(token, userID string)
}

type entry struct {
	userID   string
	watchdog *Watchdog
	release  func() bool
	lastSeen time.Time
}

func (e *entry) stop() {
	e.release()
	e.watchdog.Stop()
}

type Option func(*Manager)

// WithExpireHook registers a callback run after a session times out.
func WithExpireHook(fn func(token, userID string)) Option {
	return func(m *Manager) { m.onExpire = fn }
}

// WithContext scopes every session watchdog to ctx; cancelling it stops all
// countdowns, so open sessions can no longer be touched.
func WithContext(ctx context.Context) Option {
	return func(m *Manager) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

func NewManager(timeout time.Duration, opts ...Option) *Manager {
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}
	m := &Manager{
		timeout:  timeout,
		log:      logrus.StandardLogger(),
		ctx:      context.Background(),
		sessions: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Timeout() time.Duration {
	return m.timeout
}

// Open registers a freshly issued token and starts its idle countdown.
func (m *Manager) Open(token, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.sessions[token]; ok {
		old.stop()
	}
	e := &entry{userID: userID, lastSeen: time.Now()}
	e.watchdog = NewWatchdog(m.timeout, func() { m.expire(token, e) })
	m.sessions[token] = e
	e.release = e.watchdog.Run(m.ctx)
}

// Touch records activity for token. It returns false when the token is
// unknown or its session already timed out.
func (m *Manager) Touch(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[token]
	if !ok {
		return false
	}
	if !e.watchdog.Reset() {
		delete(m.sessions, token)
		e.release()
		return false
	}
	e.lastSeen = time.Now()
	return true
}

func (m *Manager) Active(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[token]
	return ok && !e.watchdog.Expired()
}

// LastSeen returns when the token last showed activity.
func (m *Manager) LastSeen(token string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[token]
	if !ok {
		return time.Time{}, false
	}
	return e.lastSeen, true
}

// Close ends a session on logout.
func (m *Manager) Close(token string) {
	m.mu.Lock()
	e, ok := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()

	if ok {
		e.stop()
	}
}

// CloseUser ends every session belonging to userID.
func (m *Manager) CloseUser(userID string) int {
	m.mu.Lock()
	var closed []*entry
	for token, e := range m.sessions {
		if e.userID == userID {
			closed = append(closed, e)
			delete(m.sessions, token)
		}
	}
	m.mu.Unlock()

	for _, e := range closed {
		e.stop()
	}
	return len(closed)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown stops every watchdog so none fires after the server exits.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*entry)
	m.mu.Unlock()

	for _, e := range sessions {
		e.stop()
	}
}

func (m *Manager) expire(token string, e *entry) {
	m.mu.Lock()
	current, ok := m.sessions[token]
	if ok && current == e {
		delete(m.sessions, token)
	}
	m.mu.Unlock()

	if !ok || current != e {
		return
	}
	e.release()

	m.log.WithFields(logrus.Fields{
		"user_id":   e.userID,
		"idle_for":  m.timeout.String(),
		"last_seen": e.lastSeen,
	}).Info("Session expired after inactivity")

	if m.onExpire != nil {
		m.onExpire(token, e.userID)
	}
}
