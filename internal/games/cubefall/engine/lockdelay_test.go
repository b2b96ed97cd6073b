package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const ms = time.Millisecond

func TestClockIgnoresNegativeDelta(t *testing.T) {
	var c Clock
	c.Advance(100 * ms)
	c.Advance(-50 * ms)
	c.Advance(0)
	assert.Equal(t, 100*ms, c.Now())
}

func TestLockDelayIdle(t *testing.T) {
	var l LockDelay
	assert.Equal(t, LockIdle, l.State())
	assert.Equal(t, time.Duration(0), l.Elapsed(5*time.Second))
	assert.False(t, l.Expired(5*time.Second, time.Second))
	assert.Zero(t, l.Progress(5*time.Second, time.Second))
	assert.False(t, l.Pause(0))
	assert.False(t, l.Resume(0))
	assert.False(t, l.ForceLock())
}

func TestLockDelayExpiry(t *testing.T) {
	var l LockDelay
	l.Start(200 * ms)
	assert.Equal(t, LockRunning, l.State())

	assert.Equal(t, 799*ms, l.Elapsed(999*ms))
	assert.False(t, l.Expired(1199*ms, time.Second))
	assert.True(t, l.Expired(1200*ms, time.Second))
	assert.InDelta(t, 0.5, l.Progress(700*ms, time.Second), 1e-9)
	assert.InDelta(t, 1.0, l.Progress(5*time.Second, time.Second), 1e-9)
}

func TestLockDelayPauseAccounting(t *testing.T) {
	var l LockDelay
	l.Start(0)

	assert.True(t, l.Pause(300*ms))
	assert.False(t, l.Pause(400*ms), "second pause is a no-op")
	assert.Equal(t, LockPaused, l.State())

	// Frozen while paused, and never expires.
	assert.Equal(t, 300*ms, l.Elapsed(10*time.Second))
	assert.False(t, l.Expired(10*time.Second, 100*ms))

	assert.True(t, l.Resume(2300*ms))
	assert.False(t, l.Resume(2400*ms), "second resume is a no-op")
	assert.Equal(t, LockRunning, l.State())

	assert.Equal(t, 300*ms, l.Elapsed(2300*ms))
	assert.Equal(t, 999*ms, l.Elapsed(2999*ms))
	assert.False(t, l.Expired(2999*ms, time.Second))
	assert.True(t, l.Expired(3000*ms, time.Second))

	// A second pause adds to the total.
	l.Pause(3000 * ms)
	l.Resume(4000 * ms)
	assert.Equal(t, time.Second, l.Elapsed(4000*ms))
}

func TestLockDelayRestartForgetsPauses(t *testing.T) {
	var l LockDelay
	l.Start(0)
	l.Pause(100 * ms)
	l.Resume(900 * ms)

	l.Start(1000 * ms)
	assert.Equal(t, 250*ms, l.Elapsed(1250*ms))
	assert.False(t, l.Paused())
}

func TestLockDelayForceLockAndCancel(t *testing.T) {
	var l LockDelay
	l.Start(0)
	assert.True(t, l.ForceLock())
	assert.False(t, l.Active())
	assert.False(t, l.ForceLock())

	l.Start(0)
	l.Pause(10 * ms)
	l.Cancel()
	assert.Equal(t, LockIdle, l.State())
	assert.False(t, l.Paused())
}
