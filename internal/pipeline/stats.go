package pipeline

import (
	"slices"
	"sync"
	"time"
)

type renderSample struct {
	at         time.Time
	durationMs int64
	bytes      int
	failed     bool
}

// StatsSnapshot aggregates the render jobs finished within the window.
type StatsSnapshot struct {
	Renders    int     `json:"renders"`
	Failures   int     `json:"failures"`
	BytesTotal int64   `json:"bytes_total"`
	MinMs      int64   `json:"min_ms"`
	MaxMs      int64   `json:"max_ms"`
	AvgMs      float64 `json:"avg_ms"`
	P50Ms      float64 `json:"p50_ms"`
	P95Ms      float64 `json:"p95_ms"`
}

// RenderStats keeps a rolling window of job outcomes. Latency figures cover
// successful renders only.
type RenderStats struct {
	mu      sync.Mutex
	samples []renderSample
	window  time.Duration
}

func NewRenderStats(window time.Duration) *RenderStats {
	if window <= 0 {
		window = time.Hour
	}
	return &RenderStats{
		samples: make([]renderSample, 0, 256),
		window:  window,
	}
}

// Record adds one finished job.
func (s *RenderStats) Record(d time.Duration, bytes int, failed bool) {
	ms := max(d.Milliseconds(), 0)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, renderSample{at: now, durationMs: ms, bytes: bytes, failed: failed})
}

func (s *RenderStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)

	var snap StatsSnapshot
	var durations []int64
	var sum int64
	for _, sm := range s.samples {
		if sm.failed {
			snap.Failures++
			continue
		}
		snap.Renders++
		snap.BytesTotal += int64(sm.bytes)
		durations = append(durations, sm.durationMs)
		sum += sm.durationMs
	}
	if len(durations) == 0 {
		return snap
	}

	slices.Sort(durations)
	snap.MinMs = durations[0]
	snap.MaxMs = durations[len(durations)-1]
	snap.AvgMs = float64(sum) / float64(len(durations))
	snap.P50Ms = percentile(durations, 50)
	snap.P95Ms = percentile(durations, 95)
	return snap
}

func (s *RenderStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	s.samples = slices.DeleteFunc(s.samples, func(sm renderSample) bool {
		return sm.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}

	index := float64(len(sorted)-1) * pct / 100
	lower := int(index)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*(index-float64(lower))
}
