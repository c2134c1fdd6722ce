package metrics

import (
	"slices"
	"sync"
	"time"
)

// maxSamples bounds the latency window kept per endpoint.
const maxSamples = 1000

// endpointStats is the running record for one endpoint key.
type endpointStats struct {
	requests    int64
	rejections  int64
	statusCodes map[int]int64
	healthy     *bool

	// samples is a ring of the most recent latencies; next is the slot the
	// following sample overwrites once the ring is full.
	samples []time.Duration
	next    int
}

func newEndpointStats() *endpointStats {
	return &endpointStats{statusCodes: make(map[int]int64)}
}

func (s *endpointStats) addSample(d time.Duration) {
	if len(s.samples) < maxSamples {
		s.samples = append(s.samples, d)
		return
	}

	s.samples[s.next] = d
	s.next = (s.next + 1) % maxSamples
}

func (s *endpointStats) view() EndpointMetrics {
	em := EndpointMetrics{
		Requests:    s.requests,
		Rejections:  s.rejections,
		StatusCodes: make(map[int]int64, len(s.statusCodes)),
	}
	for code, n := range s.statusCodes {
		em.StatusCodes[code] = n
	}
	if s.healthy != nil {
		healthy := *s.healthy
		em.Healthy = &healthy
	}

	if len(s.samples) > 0 {
		sorted := slices.Clone(s.samples)
		slices.Sort(sorted)

		em.AvgResponse = average(sorted)
		em.P50Response = percentile(sorted, 0.50)
		em.P95Response = percentile(sorted, 0.95)
		em.P99Response = percentile(sorted, 0.99)
	}

	return em
}

// Metrics aggregates proxy traffic and backend health per endpoint. The
// endpoints it is created with always appear in snapshots, zeroed until
// traffic arrives; other keys appear on first use.
type Metrics struct {
	mutex     sync.RWMutex
	endpoints map[string]*endpointStats
	startTime time.Time
}

type Snapshot struct {
	TotalRequests   int64                      `json:"total_requests"`
	TotalRejections int64                      `json:"total_rejections"`
	DroppedEvents   int64                      `json:"dropped_events"`
	Uptime          time.Duration              `json:"uptime"`
	Endpoints       map[string]EndpointMetrics `json:"endpoints"`
}

type EndpointMetrics struct {
	Requests    int64         `json:"requests"`
	Rejections  int64         `json:"rejections"`
	Healthy     *bool         `json:"healthy,omitempty"`
	AvgResponse time.Duration `json:"avg_response"`
	P50Response time.Duration `json:"p50_response"`
	P95Response time.Duration `json:"p95_response"`
	P99Response time.Duration `json:"p99_response"`
	StatusCodes map[int]int64 `json:"status_codes"`
}

func NewMetrics(endpoints ...string) *Metrics {
	m := &Metrics{
		endpoints: make(map[string]*endpointStats, len(endpoints)),
		startTime: time.Now(),
	}
	for _, endpoint := range endpoints {
		m.endpoints[endpoint] = newEndpointStats()
	}

	return m
}

// stats must be called with the write lock held.
func (m *Metrics) stats(endpoint string) *endpointStats {
	s, ok := m.endpoints[endpoint]
	if !ok {
		s = newEndpointStats()
		m.endpoints[endpoint] = s
	}
	return s
}

func (m *Metrics) IncrementRequests(endpoint string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.stats(endpoint).requests++
}

func (m *Metrics) IncrementRejections(endpoint string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.stats(endpoint).rejections++
}

func (m *Metrics) RecordResponse(endpoint string, duration time.Duration, statusCode int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	s := m.stats(endpoint)
	s.addSample(duration)
	s.statusCodes[statusCode]++
}

func (m *Metrics) UpdateHealthStatus(endpoint string, healthy bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.stats(endpoint).healthy = &healthy
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Uptime:    time.Since(m.startTime),
		Endpoints: make(map[string]EndpointMetrics, len(m.endpoints)),
	}

	for endpoint, s := range m.endpoints {
		snap.TotalRequests += s.requests
		snap.TotalRejections += s.rejections
		snap.Endpoints[endpoint] = s.view()
	}

	return snap
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
