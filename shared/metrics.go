package shared

import (
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// maxLatencySamples bounds the window used for percentile calculations.
const maxLatencySamples = 1000

// ServiceMetrics tracks evaluation counts and latency for a service
type ServiceMetrics struct {
	serviceName         string
	totalRequests       int64
	failedRequests      int64
	totalProcessingTime time.Duration
	lastUpdated         time.Time
	counters            map[string]int64
	samples             []time.Duration
	mutex               sync.RWMutex
}

// MetricsSnapshot is a point-in-time copy of ServiceMetrics
type MetricsSnapshot struct {
	ServiceName           string           `json:"service_name"`
	TotalRequests         int64            `json:"total_requests"`
	FailedRequests        int64            `json:"failed_requests"`
	SuccessRate           float64          `json:"success_rate"`
	AverageProcessingTime time.Duration    `json:"average_processing_time"`
	MinProcessingTime     time.Duration    `json:"min_processing_time"`
	MaxProcessingTime     time.Duration    `json:"max_processing_time"`
	P95ProcessingTime     time.Duration    `json:"p95_processing_time"`
	P99ProcessingTime     time.Duration    `json:"p99_processing_time"`
	Counters              map[string]int64 `json:"counters"`
	LastUpdated           time.Time        `json:"last_updated"`
}

// NewServiceMetrics creates a new metrics tracker for a service
func NewServiceMetrics(serviceName string) *ServiceMetrics {
	return &ServiceMetrics{
		serviceName: serviceName,
		lastUpdated: time.Now(),
		counters:    make(map[string]int64),
		samples:     make([]time.Duration, 0, maxLatencySamples),
	}
}

// RecordRequest records a request with its success status and processing time
func (m *ServiceMetrics) RecordRequest(success bool, processingTime time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.totalRequests++
	m.totalProcessingTime += processingTime
	if !success {
		m.failedRequests++
	}

	if len(m.samples) >= maxLatencySamples {
		m.samples = m.samples[1:]
	}
	m.samples = append(m.samples, processingTime)
	m.lastUpdated = time.Now()
}

// IncrementCounter increments a named counter
func (m *ServiceMetrics) IncrementCounter(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.counters[key]++
	m.lastUpdated = time.Now()
}

// Snapshot returns a thread-safe copy of current metrics
func (m *ServiceMetrics) Snapshot() MetricsSnapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snapshot := MetricsSnapshot{
		ServiceName:    m.serviceName,
		TotalRequests:  m.totalRequests,
		FailedRequests: m.failedRequests,
		Counters:       make(map[string]int64, len(m.counters)),
		LastUpdated:    m.lastUpdated,
	}
	for k, v := range m.counters {
		snapshot.Counters[k] = v
	}

	if m.totalRequests > 0 {
		snapshot.SuccessRate = float64(m.totalRequests-m.failedRequests) / float64(m.totalRequests) * 100.0
		snapshot.AverageProcessingTime = time.Duration(int64(m.totalProcessingTime) / m.totalRequests)
	}

	if len(m.samples) > 0 {
		times := make([]time.Duration, len(m.samples))
		copy(times, m.samples)
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

		snapshot.MinProcessingTime = times[0]
		snapshot.MaxProcessingTime = times[len(times)-1]
		snapshot.P95ProcessingTime = times[percentileIndex(len(times), 0.95)]
		snapshot.P99ProcessingTime = times[percentileIndex(len(times), 0.99)]
	}

	return snapshot
}

func percentileIndex(n int, p float64) int {
	idx := int(float64(n) * p)
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// LogSummary logs a metrics summary
func (m *ServiceMetrics) LogSummary() {
	snapshot := m.Snapshot()

	logrus.WithFields(logrus.Fields{
		"service_name":            snapshot.ServiceName,
		"total_requests":          snapshot.TotalRequests,
		"failed_requests":         snapshot.FailedRequests,
		"success_rate":            snapshot.SuccessRate,
		"average_processing_time": snapshot.AverageProcessingTime,
		"p95_processing_time":     snapshot.P95ProcessingTime,
		"p99_processing_time":     snapshot.P99ProcessingTime,
		"counters":                snapshot.Counters,
	}).Info("Service metrics summary")
}

// Reset resets all metrics to zero
func (m *ServiceMetrics) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.totalRequests = 0
	m.failedRequests = 0
	m.totalProcessingTime = 0
	m.counters = make(map[string]int64)
	m.samples = make([]time.Duration, 0, maxLatencySamples)
	m.lastUpdated = time.Now()

	logrus.WithField("service_name", m.serviceName).Info("Service metrics reset")
}
