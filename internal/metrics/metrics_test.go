package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsSnapshot(t *testing.T) {
	m := New()

	s := m.Snapshot()
	if s.TotalRequests != 0 || s.HitRate != 0 || s.AvgLatencyMS != 0 {
		t.Errorf("Expected empty snapshot, got %+v", s)
	}

	m.RecordMiss(100, 200*time.Millisecond)
	m.RecordMiss(50, 100*time.Millisecond)
	m.RecordHit(0, 10*time.Millisecond)
	m.RecordHit(0, 10*time.Millisecond)

	s = m.Snapshot()
	if s.TotalRequests != 4 {
		t.Errorf("Expected 4 requests, got %d", s.TotalRequests)
	}
	if s.CacheHits != 2 || s.CacheMisses != 2 {
		t.Errorf("Expected 2 hits and 2 misses, got %d and %d", s.CacheHits, s.CacheMisses)
	}
	if s.TotalRequests != s.CacheHits+s.CacheMisses {
		t.Error("Expected total == hits + misses")
	}
	if s.HitRate != 0.5 {
		t.Errorf("Expected hit rate 0.5, got %f", s.HitRate)
	}
	if s.TotalTokens != 150 {
		t.Errorf("Expected 150 tokens, got %d", s.TotalTokens)
	}
	if s.AvgLatencyMS != 80 {
		t.Errorf("Expected 80ms average latency, got %f", s.AvgLatencyMS)
	}
}

func TestMetricsConcurrentUpdates(t *testing.T) {
	m := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if j%2 == 0 {
					m.RecordHit(0, time.Millisecond)
				} else {
					m.RecordMiss(1, time.Millisecond)
				}
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.TotalRequests != 1000 {
		t.Errorf("Expected 1000 requests, got %d", s.TotalRequests)
	}
	if s.CacheHits != 500 || s.CacheMisses != 500 {
		t.Errorf("Expected 500/500, got %d/%d", s.CacheHits, s.CacheMisses)
	}
	if s.TotalTokens != 500 {
		t.Errorf("Expected 500 tokens, got %d", s.TotalTokens)
	}
}
