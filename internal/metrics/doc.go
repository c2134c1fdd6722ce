// Package metrics collects in-process metrics about the dashboard's upstream
// traffic.
//
// It uses a channel-based event pipeline to asynchronously collect:
//   - Requests forwarded to each backend endpoint
//   - Requests rejected by an open circuit breaker
//   - Response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution
//   - Health and readiness transitions reported by the health monitor
//
// The collector runs in a dedicated goroutine. Emit never blocks; when the
// buffer is full the event is dropped and counted.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger, "/api/proxy/status", "/health")
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:       metrics.EventResponseCompleted,
//		Endpoint:   "/proxy/status",
//		Duration:   150 * time.Millisecond,
//		StatusCode: 200,
//	})
//
//	snapshot := collector.Snapshot()
package metrics
