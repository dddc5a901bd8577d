package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds application counters exposed on /metrics
type Metrics struct {
	RequestCount int64
	ErrorCount   int64
	CacheHits    int64
	CacheMisses  int64
	StartTime    time.Time

	// Upstream fetches keyed by content type
	upstreamCalls  map[string]int64
	upstreamErrors map[string]int64
	upstreamMutex  sync.RWMutex

	// Request counts keyed by HTTP status
	requestsByStatus map[int]int64
	statusMutex      sync.RWMutex
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:        time.Now(),
		upstreamCalls:    make(map[string]int64),
		upstreamErrors:   make(map[string]int64),
		requestsByStatus: make(map[int]int64),
	}
}

// IncrementRequest increments the request count
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// IncrementCacheHit increments cache hit count
func (m *Metrics) IncrementCacheHit() {
	atomic.AddInt64(&m.CacheHits, 1)
}

// IncrementCacheMiss increments cache miss count
func (m *Metrics) IncrementCacheMiss() {
	atomic.AddInt64(&m.CacheMisses, 1)
}

// RecordUpstreamCall records one fetch through the relay for a content type
func (m *Metrics) RecordUpstreamCall(contentType string, success bool) {
	m.upstreamMutex.Lock()
	defer m.upstreamMutex.Unlock()

	m.upstreamCalls[contentType]++
	if !success {
		m.upstreamErrors[contentType]++
	}
}

// RecordRequestByStatus records request count by HTTP status code
func (m *Metrics) RecordRequestByStatus(statusCode int) {
	m.statusMutex.Lock()
	defer m.statusMutex.Unlock()
	m.requestsByStatus[statusCode]++
}

// GetStats returns a snapshot of all counters
func (m *Metrics) GetStats() map[string]interface{} {
	m.upstreamMutex.RLock()
	upstream := make(map[string]int64, len(m.upstreamCalls))
	upstreamErrs := make(map[string]int64, len(m.upstreamErrors))
	for k, v := range m.upstreamCalls {
		upstream[k] = v
	}
	for k, v := range m.upstreamErrors {
		upstreamErrs[k] = v
	}
	m.upstreamMutex.RUnlock()

	m.statusMutex.RLock()
	byStatus := make(map[int]int64, len(m.requestsByStatus))
	for k, v := range m.requestsByStatus {
		byStatus[k] = v
	}
	m.statusMutex.RUnlock()

	return map[string]interface{}{
		"request_count":      atomic.LoadInt64(&m.RequestCount),
		"error_count":        atomic.LoadInt64(&m.ErrorCount),
		"cache_hits":         atomic.LoadInt64(&m.CacheHits),
		"cache_misses":       atomic.LoadInt64(&m.CacheMisses),
		"upstream_calls":     upstream,
		"upstream_errors":    upstreamErrs,
		"requests_by_status": byStatus,
		"uptime_seconds":     time.Since(m.StartTime).Seconds(),
	}
}
