package storage

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trippedBreaker returns an open breaker whose clock the test controls.
func trippedBreaker(halfOpenLimit int) (*Breaker, *time.Time) {
	now := time.Now()

	b := NewBreaker(BreakerConfig{
		MaxFailures:   1,
		Timeout:       100 * time.Millisecond,
		HalfOpenLimit: halfOpenLimit,
	})
	b.now = func() time.Time { return now }

	b.RecordFailure()

	return b, &now
}

func TestBreaker_InitialState(t *testing.T) {
	b := NewBreaker(BreakerConfig{MaxFailures: 5, Timeout: 30 * time.Second, HalfOpenLimit: 3})

	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreaker_ClosedToOpen(t *testing.T) {
	b := NewBreaker(BreakerConfig{MaxFailures: 3, Timeout: 30 * time.Second, HalfOpenLimit: 2})

	b.RecordFailure()
	b.RecordFailure()
	assert.Equal(t, StateClosed, b.State())

	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b := NewBreaker(BreakerConfig{MaxFailures: 3, Timeout: 30 * time.Second, HalfOpenLimit: 2})

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()

	b.RecordFailure()
	b.RecordFailure()
	assert.Equal(t, StateClosed, b.State())

	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_OpenToHalfOpen(t *testing.T) {
	b, now := trippedBreaker(2)
	assert.False(t, b.Allow())

	*now = now.Add(150 * time.Millisecond)

	assert.True(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.State())
}

func TestBreaker_HalfOpenLimitsProbes(t *testing.T) {
	b, now := trippedBreaker(2)
	*now = now.Add(150 * time.Millisecond)

	assert.True(t, b.Allow())
	assert.True(t, b.Allow())
	assert.False(t, b.Allow(), "third probe exceeds the half-open limit")
}

func TestBreaker_HalfOpenToClosed(t *testing.T) {
	b, now := trippedBreaker(2)
	*now = now.Add(150 * time.Millisecond)
	b.Allow()

	b.RecordSuccess()
	assert.Equal(t, StateHalfOpen, b.State())

	b.RecordSuccess()
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenToOpen(t *testing.T) {
	b, now := trippedBreaker(2)
	*now = now.Add(150 * time.Millisecond)
	b.Allow()

	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_OnStateChange(t *testing.T) {
	type transition struct{ from, to State }

	var got []transition

	b := NewBreaker(BreakerConfig{MaxFailures: 1, Timeout: time.Millisecond, HalfOpenLimit: 1})
	now := time.Now()
	b.now = func() time.Time { return now }

	b.OnStateChange(func(from, to State) {
		got = append(got, transition{from, to})
	})

	b.RecordFailure()
	now = now.Add(10 * time.Millisecond)
	b.Allow()
	b.RecordSuccess()

	require.Len(t, got, 3)
	assert.Equal(t, transition{StateClosed, StateOpen}, got[0])
	assert.Equal(t, transition{StateOpen, StateHalfOpen}, got[1])
	assert.Equal(t, transition{StateHalfOpen, StateClosed}, got[2])
}

func TestBreaker_Concurrent(t *testing.T) {
	b := NewBreaker(BreakerConfig{MaxFailures: 100, Timeout: time.Second, HalfOpenLimit: 10})

	var (
		wg     sync.WaitGroup
		allows atomic.Int64
	)

	for range 1000 {
		wg.Go(func() {
			if !b.Allow() {
				return
			}

			if allows.Add(1)%2 == 0 {
				b.RecordSuccess()
			} else {
				b.RecordFailure()
			}
		})
	}

	wg.Wait()

	assert.Contains(t, []State{StateClosed, StateOpen, StateHalfOpen}, b.State())
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateClosed, "closed"},
		{StateOpen, "open"},
		{StateHalfOpen, "half-open"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}
