package circuitbreaker

import (
	"log/slog"
	"sync"
	"time"
)

type Registry struct {
	mutex     sync.RWMutex
	breakers  map[string]*CircuitBreaker
	threshold int
	timeout   time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewRegistry(threshold int, timeout time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		breakers:  make(map[string]*CircuitBreaker),
		threshold: threshold,
		timeout:   timeout,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source of breakers created afterwards.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.now = now
	return r
}

// Breaker returns the breaker for key, creating it on first use.
func (r *Registry) Breaker(key string) *CircuitBreaker {
	r.mutex.RLock()
	cb, exists := r.breakers[key]
	r.mutex.RUnlock()

	if exists {
		return cb
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if cb, exists = r.breakers[key]; exists {
		return cb
	}

	cb = NewCircuitBreaker(r.threshold, r.timeout)
	cb.now = r.now
	cb.onChange = func(from, to State) {
		r.logger.Warn("Circuit breaker state changed",
			slog.String("endpoint", key),
			slog.String("from", from.String()),
			slog.String("to", to.String()))
	}
	r.breakers[key] = cb
	return cb
}

// Stats returns the state name of every breaker created so far.
func (r *Registry) Stats() map[string]string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	stats := make(map[string]string, len(r.breakers))
	for key, cb := range r.breakers {
		stats[key] = cb.State().String()
	}
	return stats
}
