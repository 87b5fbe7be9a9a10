package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebouncer_LastCallWins(t *testing.T) {
	clock := NewManualClock()
	d := New(100*time.Millisecond, WithClock(clock))

	var got []int
	for i := 1; i <= 5; i++ {
		d.Schedule(func() { got = append(got, i) })
		clock.Advance(50 * time.Millisecond)
	}
	require.Empty(t, got, "each schedule restarts the delay")

	clock.Advance(50 * time.Millisecond)
	require.Equal(t, []int{5}, got)
	require.False(t, d.Pending())
	require.Zero(t, clock.Pending())
}

func TestDebouncer_SeparateWindowsRunSeparately(t *testing.T) {
	clock := NewManualClock()
	d := New(150*time.Millisecond, WithClock(clock))

	calls := 0
	d.Schedule(func() { calls++ })
	clock.Advance(150 * time.Millisecond)
	d.Schedule(func() { calls++ })
	clock.Advance(150 * time.Millisecond)

	require.Equal(t, 2, calls)
}

func TestDebouncer_Cancel(t *testing.T) {
	clock := NewManualClock()
	d := New(100*time.Millisecond, WithClock(clock))

	ran := false
	d.Schedule(func() { ran = true })
	require.True(t, d.Cancel())
	require.False(t, d.Cancel(), "nothing left to cancel")

	clock.Advance(time.Second)
	require.False(t, ran)
}

func TestDebouncer_Flush(t *testing.T) {
	clock := NewManualClock()
	d := New(100*time.Millisecond, WithClock(clock))

	require.False(t, d.Flush())

	ran := 0
	d.Schedule(func() { ran++ })
	require.True(t, d.Flush())
	require.Equal(t, 1, ran)

	clock.Advance(time.Second)
	require.Equal(t, 1, ran, "flushed call does not run again")
}

func TestDebouncer_StaleTimerIgnored(t *testing.T) {
	clock := NewManualClock()
	d := New(100*time.Millisecond, WithClock(clock))

	first := 0
	d.Schedule(func() { first++ })
	stale := d.seq
	d.Schedule(func() {})

	d.fire(stale)
	require.Zero(t, first)
	require.True(t, d.Pending())
}

func TestDebouncer_RealClock(t *testing.T) {
	d := New(10 * time.Millisecond)

	var calls atomic.Int32
	for range 10 {
		d.Schedule(func() { calls.Add(1) })
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.Never(t, func() bool { return calls.Load() > 1 }, 50*time.Millisecond, 10*time.Millisecond)
}
