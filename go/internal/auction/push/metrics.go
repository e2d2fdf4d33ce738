package push

import (
	"sync"
)

// MetricsCollector defines the interface for collecting push channel metrics
type MetricsCollector interface {
	RecordEventReceived(eventType string)
	RecordEventDropped(eventType string, reason string)
	RecordDecodeFailure()
	RecordReconnect(attempt int)
}

// NoOpMetricsCollector is a no-op implementation for when metrics aren't needed
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) RecordEventReceived(eventType string)               {}
func (n *NoOpMetricsCollector) RecordEventDropped(eventType string, reason string) {}
func (n *NoOpMetricsCollector) RecordDecodeFailure()                               {}
func (n *NoOpMetricsCollector) RecordReconnect(attempt int)                        {}

// CountingMetrics keeps in-memory counters, reported when a panel exits
type CountingMetrics struct {
	mu             sync.Mutex
	received       map[string]int
	dropped        map[string]int
	decodeFailures int
	reconnects     int
}

// NewCountingMetrics creates an empty counter set
func NewCountingMetrics() *CountingMetrics {
	return &CountingMetrics{
		received: make(map[string]int),
		dropped:  make(map[string]int),
	}
}

func (m *CountingMetrics) RecordEventReceived(eventType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received[eventType]++
}

func (m *CountingMetrics) RecordEventDropped(eventType string, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped[eventType]++
}

func (m *CountingMetrics) RecordDecodeFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decodeFailures++
}

func (m *CountingMetrics) RecordReconnect(attempt int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconnects++
}

// Stats returns a copy of the counters
func (m *CountingMetrics) Stats() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	received := make(map[string]int, len(m.received))
	for k, v := range m.received {
		received[k] = v
	}
	dropped := make(map[string]int, len(m.dropped))
	for k, v := range m.dropped {
		dropped[k] = v
	}

	return map[string]interface{}{
		"received":        received,
		"dropped":         dropped,
		"decode_failures": m.decodeFailures,
		"reconnects":      m.reconnects,
	}
}
