package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sentineld/beacon-execd/execution/metrics"
)

func TestEmptyMetricsDisplay(t *testing.T) {
	tm := metrics.New(3)
	require.Equal(t, "Timing metrics are empty.", tm.String())

	_, ok := tm.Min()
	require.False(t, ok)
	_, ok = tm.Max()
	require.False(t, ok)
	_, ok = tm.Average()
	require.False(t, ok)
	_, ok = tm.Median()
	require.False(t, ok)
	_, ok = tm.Last()
	require.False(t, ok)
}

func TestFIFOEvictionKeepsTotalInSync(t *testing.T) {
	tm := metrics.New(2)
	tm.Update(1 * time.Millisecond)
	tm.Update(2 * time.Millisecond)
	require.Equal(t, 3*time.Millisecond, tm.Total())
	require.Equal(t, 2, tm.Count())

	tm.Update(4 * time.Millisecond)
	require.Equal(t, 2, tm.Count())
	require.Equal(t, 6*time.Millisecond, tm.Total())

	last, ok := tm.Last()
	require.True(t, ok)
	require.Equal(t, 4*time.Millisecond, last)
}

func TestMedianEvenWindowIsMeanOfTwoCentral(t *testing.T) {
	tm := metrics.New(4)
	for _, d := range []time.Duration{1, 3, 2, 4} {
		tm.Update(d * time.Millisecond)
	}
	// sorted: 1,2,3,4 -> mid=2 -> (sorted[2]+sorted[1])/2 = (3+2)/2 = 2.5ms (integer nanosecond division is exact here)
	median, ok := tm.Median()
	require.True(t, ok)
	require.Equal(t, 2500*time.Microsecond, median)
}

func TestMedianOddWindowIsMiddleElement(t *testing.T) {
	tm := metrics.New(5)
	for _, d := range []time.Duration{5, 1, 3, 2, 4} {
		tm.Update(d * time.Millisecond)
	}
	median, ok := tm.Median()
	require.True(t, ok)
	require.Equal(t, 3*time.Millisecond, median)
}

func TestCountNeverExceedsCapacity(t *testing.T) {
	tm := metrics.New(5)
	for i := 0; i < 50; i++ {
		tm.Update(time.Duration(i) * time.Millisecond)
	}
	require.Equal(t, 5, tm.Count())
}

func TestDisplayFormat(t *testing.T) {
	tm := metrics.New(10)
	tm.Update(10 * time.Millisecond)
	require.Equal(t, "Min: 10.0ms, Max: 10.0ms, Avg: 10.0ms, Median: 10.0ms", tm.String())
}

func TestRegistryRecordsPerMethod(t *testing.T) {
	r := metrics.NewRegistry()
	r.Record("process_trusted_block", 5*time.Millisecond)
	r.Record("process_trusted_block", 7*time.Millisecond)
	r.Record("validate_block", 1*time.Millisecond)

	require.Equal(t, 2, r.Get("process_trusted_block").Count())
	require.Equal(t, 1, r.Get("validate_block").Count())
	require.Nil(t, r.Get("unknown_method"))
}
