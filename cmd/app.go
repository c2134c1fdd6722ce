package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/angeloszaimis/proxy-dashboard/config"
	"github.com/angeloszaimis/proxy-dashboard/internal/apiclient"
	"github.com/angeloszaimis/proxy-dashboard/internal/apiconfig"
	"github.com/angeloszaimis/proxy-dashboard/internal/apiproxy"
	"github.com/angeloszaimis/proxy-dashboard/internal/circuitbreaker"
	"github.com/angeloszaimis/proxy-dashboard/internal/environment"
	"github.com/angeloszaimis/proxy-dashboard/internal/healthcheck"
	"github.com/angeloszaimis/proxy-dashboard/internal/httpserver"
	"github.com/angeloszaimis/proxy-dashboard/internal/metrics"
	"github.com/angeloszaimis/proxy-dashboard/internal/routes"
)

type application struct {
	log       *slog.Logger
	apiConfig apiconfig.Configuration
	envInfo   apiconfig.EnvInfo
	routes    *routes.Table
	collector *metrics.Collector
	breakers  *circuitbreaker.Registry
	upstream  *apiproxy.Upstream
	socket    *apiproxy.Passthrough
	client    *apiclient.Client
	monitor   *healthcheck.Monitor
	server    *httpserver.Server
}

// newApplication resolves every startup value once and wires the components.
// Nothing is started until Run.
func newApplication(cfg *config.Config, log *slog.Logger, now time.Time) (*application, error) {
	env := environment.Resolve(cfg.Mode)

	origin, err := apiconfig.ParseOrigin(cfg.Origin())
	if err != nil {
		return nil, fmt.Errorf("resolve origin: %w", err)
	}

	table, err := routes.Default()
	if err != nil {
		return nil, fmt.Errorf("build route table: %w", err)
	}

	target, err := url.Parse(cfg.Backend.URL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}

	apiConfig := apiconfig.Build(env, origin)

	app := &application{
		log:       log,
		apiConfig: apiConfig,
		envInfo:   apiconfig.BuildEnvInfo(cfg.Mode, origin, now),
		routes:    table,
		collector: metrics.NewCollector(cfg.Metrics.BufferSize, log, endpointPaths(apiConfig)...),
		breakers:  circuitbreaker.NewRegistry(cfg.CircuitBreaker.Threshold, cfg.ResetTimeout(), log),
	}

	app.upstream = apiproxy.New(target, app.apiConfig, app.breakers, app.collector, log)
	app.socket = apiproxy.NewPassthrough(apiproxy.SocketPrefix, target, log)

	// The monitor probes the same addresses the browser would, so in
	// production it exercises this process's own /api proxy.
	app.client, err = apiclient.New(app.apiConfig, cfg.LocalOrigin(), log)
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	app.monitor = healthcheck.NewMonitor(app.client, app.apiConfig, cfg.HealthCheckInterval(), app.collector, log)

	app.server, err = httpserver.New(cfg.Server.Address, setupRouter(app), httpserver.Timeouts{
		Read:  cfg.ReadTimeout(),
		Write: cfg.WriteTimeout(),
		Idle:  cfg.IdleTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}

	log.Info("Dashboard configured",
		slog.String("environment", env.String()),
		slog.String("origin", origin),
		slog.String("base_url", app.apiConfig.BaseURL()),
		slog.String("backend", app.upstream.Target().String()),
		slog.Int("routes", table.Len()))

	return app, nil
}

// endpointPaths lists the configured endpoint paths in name order; these are
// the keys the proxy and the health monitor report under.
func endpointPaths(cfg apiconfig.Configuration) []string {
	names := cfg.EndpointNames()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path, _ := cfg.Endpoint(name)
		paths = append(paths, path)
	}
	return paths
}

// Run serves until ctx is cancelled or the server fails.
func (a *application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.server.Addr(), err)
	}

	a.collector.Start(ctx)

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- a.server.Serve(ln)
	}()

	go a.monitor.Run(ctx)

	a.log.Info("Dashboard listening", slog.String("addr", ln.Addr().String()))

	select {
	case <-ctx.Done():
		a.log.Info("Shutting down gracefully...")
		if err := a.server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-srvErrCh:
		return err
	}
}
