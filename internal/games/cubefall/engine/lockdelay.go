package engine

import "time"

// Clock is the engine's game time: the sum of every delta passed to Tick.
// It never reads the wall clock.
type Clock struct {
	now time.Duration
}

// Now returns the accumulated game time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Advance moves game time forward. Negative deltas are ignored.
func (c *Clock) Advance(dt time.Duration) {
	if dt > 0 {
		c.now += dt
	}
}

// LockState is the lock-delay phase.
type LockState int

const (
	LockIdle LockState = iota
	LockRunning
	LockPaused
)

func (s LockState) String() string {
	switch s {
	case LockRunning:
		return "running"
	case LockPaused:
		return "paused"
	default:
		return "idle"
	}
}

// LockDelay is the grace period a resting piece gets before it is fixed in place.
// Elapsed time excludes every interval spent paused.
type LockDelay struct {
	active      bool
	paused      bool
	start       time.Duration
	pausedAt    time.Duration
	totalPaused time.Duration
}

// Start (re)starts the grace period at now and forgets previous pauses.
func (l *LockDelay) Start(now time.Duration) {
	*l = LockDelay{active: true, start: now}
}

// Cancel returns the timer to idle.
func (l *LockDelay) Cancel() {
	*l = LockDelay{}
}

// Pause freezes the timer. It is a no-op unless the timer is running.
func (l *LockDelay) Pause(now time.Duration) bool {
	if !l.active || l.paused {
		return false
	}
	l.paused = true
	l.pausedAt = now
	return true
}

// Resume unfreezes a paused timer, adding the paused span to totalPaused.
func (l *LockDelay) Resume(now time.Duration) bool {
	if !l.active || !l.paused {
		return false
	}
	if now > l.pausedAt {
		l.totalPaused += now - l.pausedAt
	}
	l.paused = false
	l.pausedAt = 0
	return true
}

// ForceLock deactivates the timer and reports whether it had been active.
func (l *LockDelay) ForceLock() bool {
	wasActive := l.active
	l.Cancel()
	return wasActive
}

// Active reports whether a grace period is running or paused.
func (l *LockDelay) Active() bool { return l.active }

// Paused reports whether the timer is frozen.
func (l *LockDelay) Paused() bool { return l.paused }

// State returns the current phase.
func (l *LockDelay) State() LockState {
	switch {
	case l.paused:
		return LockPaused
	case l.active:
		return LockRunning
	default:
		return LockIdle
	}
}

// Elapsed returns the unpaused time since Start.
func (l *LockDelay) Elapsed(now time.Duration) time.Duration {
	if !l.active {
		return 0
	}
	if l.paused {
		now = l.pausedAt
	}
	elapsed := now - l.start - l.totalPaused
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Expired reports whether a running timer has used up the grace period d.
// A paused timer never expires.
func (l *LockDelay) Expired(now, d time.Duration) bool {
	return l.active && !l.paused && l.Elapsed(now) >= d
}

// Progress returns elapsed/d clamped to [0, 1], for progress bars.
func (l *LockDelay) Progress(now, d time.Duration) float64 {
	if !l.active || d <= 0 {
		return 0
	}
	p := float64(l.Elapsed(now)) / float64(d)
	return min(max(p, 0), 1)
}
