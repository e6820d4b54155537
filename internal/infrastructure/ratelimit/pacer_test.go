package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when the pacer sleeps.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestPacer_FirstCallDoesNotSleep(t *testing.T) {
	clock := newFakeClock()
	p := NewWithClock(time.Second, time.Minute, 0, clock.Now, clock.Sleep)

	require.NoError(t, p.Wait(context.Background(), 100))
	assert.Empty(t, clock.sleeps)
}

func TestPacer_EnforcesMinDelay(t *testing.T) {
	clock := newFakeClock()
	p := NewWithClock(time.Second, time.Minute, 0, clock.Now, clock.Sleep)

	require.NoError(t, p.Wait(context.Background(), 100))
	clock.Advance(300 * time.Millisecond)
	require.NoError(t, p.Wait(context.Background(), 100))

	require.Len(t, clock.sleeps, 1)
	assert.Equal(t, 700*time.Millisecond, clock.sleeps[0])
}

func TestPacer_NoDelayWhenEnoughTimePassed(t *testing.T) {
	clock := newFakeClock()
	p := NewWithClock(time.Second, time.Minute, 0, clock.Now, clock.Sleep)

	require.NoError(t, p.Wait(context.Background(), 100))
	clock.Advance(2 * time.Second)
	require.NoError(t, p.Wait(context.Background(), 100))

	assert.Empty(t, clock.sleeps)
}

func TestPacer_PausesAtTokenBudget(t *testing.T) {
	clock := newFakeClock()
	p := NewWithClock(0, time.Minute, 1000, clock.Now, clock.Sleep)

	require.NoError(t, p.Wait(context.Background(), 600))
	clock.Advance(10 * time.Second)
	// 600 + 600 would overrun the 1000-token window: must pause to the
	// window boundary first.
	require.NoError(t, p.Wait(context.Background(), 600))

	require.Len(t, clock.sleeps, 1)
	assert.Equal(t, 50*time.Second, clock.sleeps[0])
}

func TestPacer_WindowResetsNaturally(t *testing.T) {
	clock := newFakeClock()
	p := NewWithClock(0, time.Minute, 1000, clock.Now, clock.Sleep)

	require.NoError(t, p.Wait(context.Background(), 900))
	clock.Advance(2 * time.Minute)
	require.NoError(t, p.Wait(context.Background(), 900))

	assert.Empty(t, clock.sleeps)
}

func TestPacer_SingleOversizedCallStillRuns(t *testing.T) {
	// A first call larger than the whole budget must not deadlock.
	clock := newFakeClock()
	p := NewWithClock(0, time.Minute, 1000, clock.Now, clock.Sleep)

	require.NoError(t, p.Wait(context.Background(), 5000))
	assert.Empty(t, clock.sleeps)
}

func TestPacer_CancelledContext(t *testing.T) {
	p := New(time.Hour, time.Minute, 0)
	require.NoError(t, p.Wait(context.Background(), 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.Wait(ctx, 1))
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 1, EstimateTokens(""))
	assert.Equal(t, 26, EstimateTokens(string(make([]byte, 100))))
}
