package metrics

import (
	"testing"
	"time"
)

func TestCollectorClassifiesStatuses(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(404, 20*time.Millisecond)
	c.Record(429, 5*time.Millisecond)
	c.Record(500, 40*time.Millisecond)

	snap := c.Snapshot()
	if snap["requests"] != uint64(4) {
		t.Fatalf("expected 4 requests, got %v", snap["requests"])
	}
	if snap["clientErrors"] != uint64(1) {
		t.Fatalf("expected 1 client error, got %v", snap["clientErrors"])
	}
	if snap["serverErrors"] != uint64(1) {
		t.Fatalf("expected 1 server error, got %v", snap["serverErrors"])
	}
	if snap["throttled"] != uint64(1) {
		t.Fatalf("expected 1 throttled request, got %v", snap["throttled"])
	}
	if snap["peakLatencyMs"] != uint64(40) {
		t.Fatalf("expected peak 40ms, got %v", snap["peakLatencyMs"])
	}
}

func TestCollectorAverageLatency(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(200, 30*time.Millisecond)

	snap := c.Snapshot()
	if avg := snap["avgLatencyMs"].(float64); avg != 20 {
		t.Fatalf("expected average 20ms, got %v", avg)
	}
}

func TestCollectorEmptySnapshot(t *testing.T) {
	snap := New().Snapshot()
	if snap["requests"] != uint64(0) {
		t.Fatalf("expected zero requests, got %v", snap["requests"])
	}
	if avg := snap["avgLatencyMs"].(float64); avg != 0 {
		t.Fatalf("expected zero average on empty collector, got %v", avg)
	}
}
