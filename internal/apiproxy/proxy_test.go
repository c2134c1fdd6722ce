package apiproxy_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/proxy-dashboard/internal/apiconfig"
	"github.com/angeloszaimis/proxy-dashboard/internal/apiproxy"
	"github.com/angeloszaimis/proxy-dashboard/internal/circuitbreaker"
	"github.com/angeloszaimis/proxy-dashboard/internal/environment"
	"github.com/angeloszaimis/proxy-dashboard/internal/metrics"
	"github.com/angeloszaimis/proxy-dashboard/pkg/logger"
)

type recordingEmitter struct {
	mu     sync.Mutex
	events []metrics.MetricEvent
}

func (e *recordingEmitter) Emit(event metrics.MetricEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *recordingEmitter) types() []metrics.EventType {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]metrics.EventType, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

var _ = Describe("Upstream", func() {
	var (
		backend      *httptest.Server
		backendPaths []string
		status       int
		upstream     *apiproxy.Upstream
		breakers     *circuitbreaker.Registry
		emitter      *recordingEmitter
		mu           sync.Mutex
	)

	BeforeEach(func() {
		status = http.StatusOK
		backendPaths = nil

		backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			backendPaths = append(backendPaths, r.URL.Path)
			code := status
			mu.Unlock()

			w.Header().Set("X-Forwarded-Host-Seen", r.Header.Get("X-Forwarded-Host"))
			w.WriteHeader(code)
			w.Write([]byte(`{"ok":true}`))
		}))

		target, err := url.Parse(backend.URL)
		Expect(err).NotTo(HaveOccurred())

		cfg := apiconfig.Build(environment.Production, "https://dash.example.com")
		breakers = circuitbreaker.NewRegistry(2, time.Minute, logger.Nop())
		emitter = &recordingEmitter{}
		upstream = apiproxy.New(target, cfg, breakers, emitter, logger.Nop())
	})

	AfterEach(func() {
		backend.Close()
	})

	serve := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		upstream.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("should be mounted on the proxied base path", func() {
		Expect(upstream.Prefix()).To(Equal("/api"))
	})

	DescribeTable("strips the base path before forwarding",
		func(incoming string, forwarded string) {
			w := serve(incoming)
			Expect(w.Code).To(Equal(http.StatusOK))

			mu.Lock()
			defer mu.Unlock()
			Expect(backendPaths).To(Equal([]string{forwarded}))
		},
		Entry("proxy status", "/api/api/proxy/status", "/api/proxy/status"),
		Entry("connections", "/api/api/connections", "/api/connections"),
		Entry("health", "/api/health", "/health"),
		Entry("ready", "/api/ready", "/ready"),
	)

	It("should reject paths outside the base path", func() {
		w := serve("/apiary/health")
		Expect(w.Code).To(Equal(http.StatusNotFound))

		mu.Lock()
		defer mu.Unlock()
		Expect(backendPaths).To(BeEmpty())
	})

	It("should set forwarding headers", func() {
		w := serve("/api/health")
		Expect(w.Header().Get("X-Forwarded-Host-Seen")).NotTo(BeEmpty())
	})

	It("should emit forwarded and completed events", func() {
		serve("/api/health")
		Expect(emitter.types()).To(Equal([]metrics.EventType{
			metrics.EventRequestForwarded,
			metrics.EventResponseCompleted,
		}))
	})

	It("should key breakers by configured endpoint", func() {
		serve("/api/api/ip/check")
		serve("/api/not-an-endpoint")

		Expect(breakers.Stats()).To(Equal(map[string]string{
			"/api/ip/check":            "closed",
			apiproxy.UnmatchedEndpoint: "closed",
		}))
	})

	Context("when the backend fails", func() {
		BeforeEach(func() {
			status = http.StatusInternalServerError
		})

		It("should open the endpoint breaker and reject further requests", func() {
			Expect(serve("/api/api/proxy/test").Code).To(Equal(http.StatusInternalServerError))
			Expect(serve("/api/api/proxy/test").Code).To(Equal(http.StatusInternalServerError))

			w := serve("/api/api/proxy/test")
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(w.Body.String()).To(ContainSubstring("temporarily unavailable"))
			Expect(emitter.types()).To(ContainElement(metrics.EventRequestRejected))

			mu.Lock()
			defer mu.Unlock()
			Expect(backendPaths).To(HaveLen(2))
		})

		It("should not affect other endpoints", func() {
			serve("/api/api/proxy/test")
			serve("/api/api/proxy/test")

			mu.Lock()
			status = http.StatusOK
			mu.Unlock()

			Expect(serve("/api/api/proxy/status").Code).To(Equal(http.StatusOK))
		})
	})

	Context("when the backend is unreachable", func() {
		It("should answer with bad gateway", func() {
			backend.Close()

			w := serve("/api/health")
			Expect(w.Code).To(Equal(http.StatusBadGateway))
			Expect(breakers.Stats()).To(HaveKeyWithValue("/health", "closed"))
		})
	})
})
