package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/proxy-dashboard/internal/metrics"
)

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	Describe("IncrementRequests", func() {
		It("should track endpoints separately", func() {
			m.IncrementRequests("/proxy/status")
			m.IncrementRequests("/ip/check")
			m.IncrementRequests("/proxy/status")

			snap := m.Snapshot()
			Expect(snap.TotalRequests).To(Equal(int64(3)))
			Expect(snap.Endpoints["/proxy/status"].Requests).To(Equal(int64(2)))
			Expect(snap.Endpoints["/ip/check"].Requests).To(Equal(int64(1)))
		})
	})

	Describe("IncrementRejections", func() {
		It("should count rejected requests", func() {
			m.IncrementRejections("/ip/details")
			m.IncrementRejections("/ip/details")

			snap := m.Snapshot()
			Expect(snap.TotalRejections).To(Equal(int64(2)))
			Expect(snap.Endpoints["/ip/details"].Rejections).To(Equal(int64(2)))
		})
	})

	Describe("RecordResponse", func() {
		It("should record response time and status code", func() {
			m.RecordResponse("/connections", 100*time.Millisecond, 200)
			m.RecordResponse("/connections", 200*time.Millisecond, 200)

			endpoint := m.Snapshot().Endpoints["/connections"]
			Expect(endpoint.AvgResponse).To(Equal(150 * time.Millisecond))
			Expect(endpoint.StatusCodes[200]).To(Equal(int64(2)))
		})

		It("should track different status codes", func() {
			m.RecordResponse("/proxy/start", 100*time.Millisecond, 200)
			m.RecordResponse("/proxy/start", 150*time.Millisecond, 400)
			m.RecordResponse("/proxy/start", 200*time.Millisecond, 503)

			endpoint := m.Snapshot().Endpoints["/proxy/start"]
			Expect(endpoint.StatusCodes).To(Equal(map[int]int64{200: 1, 400: 1, 503: 1}))
		})

		It("should calculate percentiles", func() {
			for i := 1; i <= 100; i++ {
				m.RecordResponse("/proxy/status", time.Duration(i)*time.Millisecond, 200)
			}

			endpoint := m.Snapshot().Endpoints["/proxy/status"]
			Expect(endpoint.P50Response).To(BeNumerically("~", 50*time.Millisecond, 1*time.Millisecond))
			Expect(endpoint.P95Response).To(BeNumerically("~", 95*time.Millisecond, 1*time.Millisecond))
			Expect(endpoint.P99Response).To(BeNumerically("~", 99*time.Millisecond, 1*time.Millisecond))
		})

		It("should keep only the most recent samples", func() {
			for i := 1; i <= 1500; i++ {
				m.RecordResponse("/proxy/status", time.Duration(i)*time.Millisecond, 200)
			}

			endpoint := m.Snapshot().Endpoints["/proxy/status"]
			Expect(endpoint.AvgResponse).To(Equal(1000500 * time.Microsecond))
			Expect(endpoint.P50Response).To(Equal(1001 * time.Millisecond))
		})
	})

	Describe("UpdateHealthStatus", func() {
		It("should track health transitions", func() {
			m.UpdateHealthStatus("/health", true)
			Expect(*m.Snapshot().Endpoints["/health"].Healthy).To(BeTrue())

			m.UpdateHealthStatus("/health", false)
			Expect(*m.Snapshot().Endpoints["/health"].Healthy).To(BeFalse())
		})

		It("should leave health unset for endpoints never probed", func() {
			m.IncrementRequests("/proxy/status")
			Expect(m.Snapshot().Endpoints["/proxy/status"].Healthy).To(BeNil())
		})
	})

	Describe("Snapshot", func() {
		It("should include uptime", func() {
			time.Sleep(10 * time.Millisecond)
			Expect(m.Snapshot().Uptime).To(BeNumerically(">", 0))
		})

		It("should handle empty metrics", func() {
			snap := m.Snapshot()
			Expect(snap.TotalRequests).To(Equal(int64(0)))
			Expect(snap.Endpoints).To(BeEmpty())
		})

		It("should always list the endpoints it was created with", func() {
			seeded := metrics.NewMetrics("/api/proxy/status", "/health")
			seeded.IncrementRequests("unmatched")

			snap := seeded.Snapshot()
			Expect(snap.Endpoints).To(HaveLen(3))
			Expect(snap.Endpoints["/api/proxy/status"].Requests).To(BeZero())
			Expect(snap.Endpoints["/api/proxy/status"].StatusCodes).To(BeEmpty())
			Expect(snap.Endpoints["/health"].Healthy).To(BeNil())
			Expect(snap.Endpoints["unmatched"].Requests).To(Equal(int64(1)))
		})

		It("should return an independent snapshot", func() {
			m.RecordResponse("/ready", time.Millisecond, 200)
			snap1 := m.Snapshot()
			m.RecordResponse("/ready", time.Millisecond, 200)
			snap2 := m.Snapshot()

			Expect(snap1.Endpoints["/ready"].StatusCodes[200]).To(Equal(int64(1)))
			Expect(snap2.Endpoints["/ready"].StatusCodes[200]).To(Equal(int64(2)))
		})
	})
})
