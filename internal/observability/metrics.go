package observability

import (
	"strconv"
	"sync"
	"time"
)

// RouteStats aggregates per-route request counters.
type RouteStats struct {
	Count        int64
	Errors       int64
	TotalLatency time.Duration
}

// Metrics keeps in-process counters keyed by route, method and status.
type Metrics struct {
	mu     sync.Mutex
	routes map[string]*RouteStats
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{routes: make(map[string]*RouteStats)}
}

// RecordRequest counts a completed request and its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.routes[key]
	if stats == nil {
		stats = &RouteStats{}
		m.routes[key] = stats
	}
	stats.Count++
	stats.TotalLatency += duration
}

// RecordError counts a request that ended in an application error.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.routes[key]
	if stats == nil {
		stats = &RouteStats{}
		m.routes[key] = stats
	}
	stats.Errors++
}

// Snapshot copies the current counters for reporting.
func (m *Metrics) Snapshot() map[string]RouteStats {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]RouteStats, len(m.routes))
	for key, stats := range m.routes {
		out[key] = *stats
	}
	return out
}

func routeKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
