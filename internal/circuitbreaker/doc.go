// Package circuitbreaker guards the upstream proxy against a failing
// backend endpoint.
//
// Each proxied endpoint gets its own breaker, so a broken IP lookup does not
// block proxy status polling. A breaker has three states:
//
//   - closed: requests pass through
//   - open: the endpoint is failing and requests are rejected
//   - half-open: the reset timeout elapsed and a single probe is let through
//
// Usage:
//
//	registry := circuitbreaker.NewRegistry(5, 30*time.Second, logger)
//	cb := registry.Breaker("/proxy/status")
//	if !cb.Allow() {
//	    // reject with 503
//	}
//	// forward...
//	cb.Record(err == nil && status < 500)
package circuitbreaker
