package auth

import (
	"sync"
	"time"
)

// LoginLimiter counts failed logins per client IP and username and locks the
// pair out once the count reaches the limit inside the window.
type LoginLimiter struct {
	mu          sync.Mutex
	failures    map[string]*failureRecord
	maxAttempts int
	window      time.Duration
	lockout     time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

type failureRecord struct {
	count       int
	windowStart time.Time
	lockedUntil time.Time
}

// NewLoginLimiter creates a limiter and starts its sweep goroutine.
// Zero values fall back to 5 attempts, a 15 minute window and a 30 minute lockout.
func NewLoginLimiter(maxAttempts int, window, lockout time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	if lockout <= 0 {
		lockout = 30 * time.Minute
	}

	l := &LoginLimiter{
		failures:    make(map[string]*failureRecord),
		maxAttempts: maxAttempts,
		window:      window,
		lockout:     lockout,
		now:         time.Now,
		stop:        make(chan struct{}),
	}
	go l.sweepLoop(window)
	return l
}

// Stop ends the sweep goroutine. Safe to call more than once.
func (l *LoginLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func limiterKey(ip, username string) string {
	return ip + "\x00" + username
}

// Allow reports whether a login attempt may proceed and, if not, how long
// the caller has to wait.
func (l *LoginLimiter) Allow(ip, username string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.failures[limiterKey(ip, username)]
	if !ok {
		return true, 0
	}
	now := l.now()
	if now.Before(rec.lockedUntil) {
		return false, rec.lockedUntil.Sub(now)
	}
	return true, 0
}

// RecordFailure counts a failed attempt and reports whether the pair is now locked.
func (l *LoginLimiter) RecordFailure(ip, username string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := limiterKey(ip, username)
	rec, ok := l.failures[key]
	if !ok || now.Sub(rec.windowStart) > l.window {
		rec = &failureRecord{windowStart: now}
		l.failures[key] = rec
	}

	rec.count++
	if rec.count >= l.maxAttempts {
		rec.lockedUntil = now.Add(l.lockout)
		return true
	}
	return false
}

// RecordSuccess forgets earlier failures for the pair.
func (l *LoginLimiter) RecordSuccess(ip, username string) {
	l.mu.Lock()
	delete(l.failures, limiterKey(ip, username))
	l.mu.Unlock()
}

func (l *LoginLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops records whose window and lockout have both passed.
func (l *LoginLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, rec := range l.failures {
		if now.Sub(rec.windowStart) > l.window && !now.Before(rec.lockedUntil) {
			delete(l.failures, key)
		}
	}
}
