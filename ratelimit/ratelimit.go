// Package ratelimit tracks action timestamps per (user, action) pair and
// enforces sliding-window limits. State is in-memory only; windows reset
// on process restart.
package ratelimit

import (
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned when a window is full. The caller must wait
// out the window; retrying immediately can never succeed.
var ErrRateLimited = errors.New("rate limit exceeded")

// Rule is a sliding-window policy: at most Max actions per Window.
type Rule struct {
	Max    int
	Window time.Duration
}

// Default per-action policies.
var (
	CreatePost = Rule{Max: 10, Window: 5 * time.Minute}
	LikePost   = Rule{Max: 60, Window: time.Minute}
	AddComment = Rule{Max: 30, Window: time.Minute}
)

type key struct {
	user   int64
	action string
}

// Limiter records action timestamps and answers allow/deny.
type Limiter struct {
	mu      sync.Mutex
	history map[key][]time.Time
	now     func() time.Time
}

// New returns an empty limiter.
func New() *Limiter {
	return &Limiter{
		history: make(map[key][]time.Time),
		now:     time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (l *Limiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
}

// Allow records one action for the user and returns ErrRateLimited when
// the rule's window already holds Max actions. Timestamps outside the
// window are pruned as a side effect.
func (l *Limiter) Allow(user int64, action string, rule Rule) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key{user: user, action: action}
	now := l.now()
	cutoff := now.Add(-rule.Window)

	recent := l.history[k][:0]
	for _, t := range l.history[k] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rule.Max {
		l.history[k] = recent
		return ErrRateLimited
	}

	l.history[k] = append(recent, now)
	return nil
}
