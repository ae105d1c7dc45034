package metrics

import (
	"sync/atomic"
	"time"
)

// Collector counts requests by outcome class. Counters are plain atomics so
// the logging middleware can record on every request without a lock.
type Collector struct {
	started time.Time

	requests     atomic.Uint64
	clientErrors atomic.Uint64
	serverErrors atomic.Uint64
	throttled    atomic.Uint64

	cumulativeMs atomic.Uint64
	peakMs       atomic.Uint64
}

func New() *Collector {
	return &Collector{started: time.Now().UTC()}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.Add(1)
	switch {
	case status == 429:
		c.throttled.Add(1)
	case status >= 500:
		c.serverErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}

	ms := uint64(duration.Milliseconds())
	c.cumulativeMs.Add(ms)
	for {
		peak := c.peakMs.Load()
		if ms <= peak || c.peakMs.CompareAndSwap(peak, ms) {
			break
		}
	}
}

// Snapshot returns the counters as served by the admin metrics endpoint.
func (c *Collector) Snapshot() map[string]any {
	requests := c.requests.Load()
	cumulative := c.cumulativeMs.Load()

	avg := 0.0
	if requests > 0 {
		avg = float64(cumulative) / float64(requests)
	}

	return map[string]any{
		"since":         c.started.Format(time.RFC3339),
		"requests":      requests,
		"clientErrors":  c.clientErrors.Load(),
		"serverErrors":  c.serverErrors.Load(),
		"throttled":     c.throttled.Load(),
		"avgLatencyMs":  avg,
		"peakLatencyMs": c.peakMs.Load(),
	}
}
