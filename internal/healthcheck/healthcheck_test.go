package healthcheck_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/proxy-dashboard/internal/apiclient"
	"github.com/angeloszaimis/proxy-dashboard/internal/apiconfig"
	"github.com/angeloszaimis/proxy-dashboard/internal/environment"
	"github.com/angeloszaimis/proxy-dashboard/internal/healthcheck"
	"github.com/angeloszaimis/proxy-dashboard/internal/metrics"
	"github.com/angeloszaimis/proxy-dashboard/pkg/logger"
)

type fakeProber struct {
	healthErr atomic.Pointer[error]
	readyErr  atomic.Pointer[error]
	calls     atomic.Int32
}

func (f *fakeProber) Health(context.Context) (apiclient.Payload, error) {
	f.calls.Add(1)
	if err := f.healthErr.Load(); err != nil {
		return nil, *err
	}
	return apiclient.Payload{"status": "healthy"}, nil
}

func (f *fakeProber) Ready(context.Context) (apiclient.Payload, error) {
	if err := f.readyErr.Load(); err != nil {
		return nil, *err
	}
	return apiclient.Payload{"status": "ready"}, nil
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []metrics.MetricEvent
}

func (e *recordingEmitter) Emit(event metrics.MetricEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *recordingEmitter) Events() []metrics.MetricEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]metrics.MetricEvent(nil), e.events...)
}

var _ = Describe("Monitor", func() {
	var (
		cfg     apiconfig.Configuration
		prober  *fakeProber
		emitter *recordingEmitter
		monitor *healthcheck.Monitor
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = apiconfig.Build(environment.Production, "https://dash.example.com")
		prober = &fakeProber{}
		emitter = &recordingEmitter{}
		monitor = healthcheck.NewMonitor(prober, cfg, 50*time.Millisecond, emitter, logger.Nop())
	})

	It("should start unchecked", func() {
		snap := monitor.Snapshot()
		Expect(snap.Health.Checked).To(BeFalse())
		Expect(snap.Health.Endpoint).To(Equal("/health"))
		Expect(snap.Ready.Endpoint).To(Equal("/ready"))
	})

	It("should record a healthy backend", func() {
		monitor.Check(ctx)

		snap := monitor.Snapshot()
		Expect(snap.Health.Up).To(BeTrue())
		Expect(snap.Health.Checked).To(BeTrue())
		Expect(snap.Health.Details).To(HaveKeyWithValue("status", "healthy"))
		Expect(snap.Ready.Up).To(BeTrue())
	})

	It("should record a failing probe with its error", func() {
		down := errors.New("connection refused")
		prober.readyErr.Store(&down)

		monitor.Check(ctx)

		snap := monitor.Snapshot()
		Expect(snap.Health.Up).To(BeTrue())
		Expect(snap.Ready.Up).To(BeFalse())
		Expect(snap.Ready.Error).To(Equal("connection refused"))
	})

	It("should emit events only on transitions", func() {
		monitor.Check(ctx)
		monitor.Check(ctx)
		Expect(emitter.Events()).To(HaveLen(2))

		down := errors.New("down")
		prober.healthErr.Store(&down)
		monitor.Check(ctx)

		events := emitter.Events()
		Expect(events).To(HaveLen(3))
		Expect(events[2].Type).To(Equal(metrics.EventHealthChanged))
		Expect(events[2].Endpoint).To(Equal("/health"))
		Expect(events[2].Healthy).To(BeFalse())
	})

	It("should not let callers mutate the snapshot", func() {
		monitor.Check(ctx)
		snap := monitor.Snapshot()
		snap.Health.Details["status"] = "tampered"

		Expect(monitor.Snapshot().Health.Details).To(HaveKeyWithValue("status", "healthy"))
	})

	Describe("Run", func() {
		It("should probe immediately and then periodically", func() {
			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			go monitor.Run(runCtx)

			Eventually(func() int32 { return prober.calls.Load() }).Should(BeNumerically(">=", 3))
		})

		It("should stop when the context is cancelled", func() {
			runCtx, cancel := context.WithCancel(ctx)
			done := make(chan struct{})

			go func() {
				monitor.Run(runCtx)
				close(done)
			}()

			cancel()
			Eventually(done).Should(BeClosed())
		})
	})

	Context("with the real API client", func() {
		It("should mark a backend answering 200 as up", func() {
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if r.URL.Path == "/api/ready" {
					w.WriteHeader(http.StatusServiceUnavailable)
					w.Write([]byte(`{"status":"starting"}`))
					return
				}
				w.Write([]byte(`{"status":"ok"}`))
			}))
			defer backend.Close()

			cfg := apiconfig.Build(environment.Production, backend.URL)
			client, err := apiclient.New(cfg, backend.URL, logger.Nop(), apiclient.WithRetryDelay(time.Millisecond))
			Expect(err).NotTo(HaveOccurred())

			m := healthcheck.NewMonitor(client, cfg, time.Second, nil, logger.Nop())
			m.Check(ctx)

			snap := m.Snapshot()
			Expect(snap.Health.Up).To(BeTrue())
			Expect(snap.Ready.Up).To(BeFalse())
			Expect(snap.Ready.Error).To(ContainSubstring("503"))
		})
	})
})
