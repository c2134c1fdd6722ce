package healthcheck

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/angeloszaimis/proxy-dashboard/internal/apiclient"
	"github.com/angeloszaimis/proxy-dashboard/internal/apiconfig"
	"github.com/angeloszaimis/proxy-dashboard/internal/metrics"
)

// Prober is the subset of the API client the monitor needs.
type Prober interface {
	Health(ctx context.Context) (apiclient.Payload, error)
	Ready(ctx context.Context) (apiclient.Payload, error)
}

type Emitter interface {
	Emit(metrics.MetricEvent)
}

type ProbeStatus struct {
	Endpoint    string            `json:"endpoint"`
	Up          bool              `json:"up"`
	Checked     bool              `json:"checked"`
	LastChecked time.Time         `json:"last_checked,omitzero"`
	LastChange  time.Time         `json:"last_change,omitzero"`
	Error       string            `json:"error,omitempty"`
	Details     apiclient.Payload `json:"details,omitempty"`
}

type Snapshot struct {
	Health ProbeStatus `json:"health"`
	Ready  ProbeStatus `json:"ready"`
}

type probe struct {
	status *ProbeStatus
	call   func(context.Context) (apiclient.Payload, error)
}

type Monitor struct {
	prober   Prober
	interval time.Duration
	emitter  Emitter
	logger   *slog.Logger
	now      func() time.Time

	mutex    sync.RWMutex
	snapshot Snapshot
}

// NewMonitor creates a monitor probing the backend's health and readiness
// endpoints every interval. emitter may be nil.
func NewMonitor(prober Prober, cfg apiconfig.Configuration, interval time.Duration, emitter Emitter, logger *slog.Logger) *Monitor {
	healthPath, _ := cfg.Endpoint(apiconfig.EndpointHealth)
	readyPath, _ := cfg.Endpoint(apiconfig.EndpointReady)

	return &Monitor{
		prober:   prober,
		interval: interval,
		emitter:  emitter,
		logger:   logger,
		now:      time.Now,
		snapshot: Snapshot{
			Health: ProbeStatus{Endpoint: healthPath},
			Ready:  ProbeStatus{Endpoint: readyPath},
		},
	}
}

// Run probes once immediately and then on every tick until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Health monitor stopped")
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check runs one round of probes.
func (m *Monitor) Check(ctx context.Context) {
	m.probe(ctx, probe{status: &m.snapshot.Health, call: m.prober.Health})
	m.probe(ctx, probe{status: &m.snapshot.Ready, call: m.prober.Ready})
}

func (m *Monitor) probe(ctx context.Context, p probe) {
	details, err := p.call(ctx)
	if ctx.Err() != nil {
		return
	}

	now := m.now()
	up := err == nil

	m.mutex.Lock()
	wasChecked := p.status.Checked
	changed := !wasChecked || p.status.Up != up

	p.status.Checked = true
	p.status.Up = up
	p.status.LastChecked = now
	p.status.Details = details
	p.status.Error = ""
	if err != nil {
		p.status.Error = err.Error()
	}
	if changed {
		p.status.LastChange = now
	}
	endpoint := p.status.Endpoint
	m.mutex.Unlock()

	if !changed {
		return
	}

	if m.emitter != nil {
		m.emitter.Emit(metrics.MetricEvent{
			Type:     metrics.EventHealthChanged,
			Endpoint: endpoint,
			Healthy:  up,
		})
	}

	switch {
	case up && wasChecked:
		m.logger.Info("Backend is back up", slog.String("endpoint", endpoint))
	case up:
		m.logger.Info("Backend is up", slog.String("endpoint", endpoint))
	default:
		m.logger.Warn("Backend is down",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
	}
}

func (m *Monitor) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := m.snapshot
	snap.Health.Details = cloneDetails(snap.Health.Details)
	snap.Ready.Details = cloneDetails(snap.Ready.Details)
	return snap
}

func cloneDetails(p apiclient.Payload) apiclient.Payload {
	if p == nil {
		return nil
	}

	out := make(apiclient.Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
