package extractor

import (
	"sync/atomic"
	"time"
)

// RateMeter computes the average occurrence of completions per second.
// Add is safe for concurrent use.
type RateMeter struct {
	start time.Time
	count int64
}

// NewRateMeter creates a started RateMeter
func NewRateMeter() *RateMeter {
	return &RateMeter{start: time.Now()}
}

// Add records n completions and returns the new total
func (m *RateMeter) Add(n int64) int64 {
	return atomic.AddInt64(&m.count, n)
}

// Count returns the completions recorded so far
func (m *RateMeter) Count() int64 {
	return atomic.LoadInt64(&m.count)
}

// Elapsed returns the time since the meter started
func (m *RateMeter) Elapsed() time.Duration {
	return time.Since(m.start)
}

// Avg returns completions per second since the meter started
func (m *RateMeter) Avg() float64 {
	elapsed := m.Elapsed().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(m.Count()) / elapsed
}
