package circuitbreaker_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/proxy-dashboard/internal/circuitbreaker"
	"github.com/angeloszaimis/proxy-dashboard/pkg/logger"
)

var _ = Describe("Registry", func() {
	var (
		registry *circuitbreaker.Registry
		now      time.Time
	)

	BeforeEach(func() {
		now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		registry = circuitbreaker.NewRegistry(2, 30*time.Second, logger.Nop()).
			WithClock(func() time.Time { return now })
	})

	Describe("Breaker", func() {
		It("should create a closed breaker for an unknown endpoint", func() {
			cb := registry.Breaker("/proxy/status")
			Expect(cb).NotTo(BeNil())
			Expect(cb.State()).To(Equal(circuitbreaker.StateClosed))
		})

		It("should return the same breaker for the same endpoint", func() {
			Expect(registry.Breaker("/proxy/status")).To(BeIdenticalTo(registry.Breaker("/proxy/status")))
		})

		It("should keep endpoints independent", func() {
			failing := registry.Breaker("/ip/check")
			failing.RecordFailure()
			failing.RecordFailure()

			Expect(failing.State()).To(Equal(circuitbreaker.StateOpen))
			Expect(registry.Breaker("/proxy/status").Allow()).To(BeTrue())
		})

		It("should use the registry clock and timeout", func() {
			cb := registry.Breaker("/connections")
			cb.RecordFailure()
			cb.RecordFailure()
			Expect(cb.Allow()).To(BeFalse())

			now = now.Add(29 * time.Second)
			Expect(cb.Allow()).To(BeFalse())

			now = now.Add(2 * time.Second)
			Expect(cb.Allow()).To(BeTrue())
			Expect(cb.State()).To(Equal(circuitbreaker.StateHalfOpen))
		})

		It("should be safe for concurrent use", func() {
			var wg sync.WaitGroup
			breakers := make([]*circuitbreaker.CircuitBreaker, 50)

			for i := range breakers {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					breakers[i] = registry.Breaker("/health")
				}(i)
			}
			wg.Wait()

			for _, cb := range breakers {
				Expect(cb).To(BeIdenticalTo(breakers[0]))
			}
		})
	})

	Describe("Stats", func() {
		It("should report every breaker by state name", func() {
			registry.Breaker("/health")
			open := registry.Breaker("/ready")
			open.RecordFailure()
			open.RecordFailure()

			Expect(registry.Stats()).To(Equal(map[string]string{
				"/health": "closed",
				"/ready":  "open",
			}))
		})
	})
})
