package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/angeloszaimis/proxy-dashboard/internal/apiconfig"
	"github.com/angeloszaimis/proxy-dashboard/internal/healthcheck"
	"github.com/angeloszaimis/proxy-dashboard/internal/routes"
)

// HealthSource reports the last known state of the backend.
type HealthSource interface {
	Snapshot() healthcheck.Snapshot
}

// BreakerSource reports circuit breaker states keyed by endpoint.
type BreakerSource interface {
	Stats() map[string]string
}

// Dependencies are resolved once at bootstrap and shared by every request.
type Dependencies struct {
	Config   apiconfig.Configuration
	EnvInfo  apiconfig.EnvInfo
	Routes   *routes.Table
	Renderer Renderer

	// ProxyPrefix is where Proxy is mounted, normally "/api".
	ProxyPrefix string
	Proxy       http.Handler

	// SocketPrefix is where Socket is mounted. Socket carries the backend's
	// realtime channel, websocket upgrades included.
	SocketPrefix string
	Socket       http.Handler

	Metrics  http.Handler
	Health   HealthSource
	Breakers BreakerSource
	Logger   *slog.Logger
}

type DashboardHandler struct {
	deps   Dependencies
	router *chi.Mux
}

func NewDashboardHandler(deps Dependencies) *DashboardHandler {
	if deps.ProxyPrefix == "" {
		deps.ProxyPrefix = apiconfig.ProxiedBaseURL
	}
	if deps.Renderer == nil {
		deps.Renderer = NewJSONRenderer(componentsOf(deps.Routes)...)
	}

	h := &DashboardHandler{deps: deps}
	h.router = h.buildRouter()
	return h
}

// buildRouter assembles the chi router. Optional dependencies that are nil are
// simply not routed.
func (h *DashboardHandler) buildRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	router.Group(func(r chi.Router) {
		r.Get("/app-config", h.appConfig)
		r.Get("/env-info", h.envInfo)
		r.Get("/routes", h.routeList)

		if h.deps.Metrics != nil {
			r.Method(http.MethodGet, "/metrics", h.deps.Metrics)
		}
		if h.deps.Health != nil {
			r.Get("/upstream-health", h.upstreamHealth)
		}
	})

	if h.deps.Proxy != nil {
		router.Handle(h.deps.ProxyPrefix, h.deps.Proxy)
		router.Handle(h.deps.ProxyPrefix+"/*", h.deps.Proxy)
	}

	if h.deps.Socket != nil && h.deps.SocketPrefix != "" {
		router.Handle(h.deps.SocketPrefix, h.deps.Socket)
		router.Handle(h.deps.SocketPrefix+"/*", h.deps.Socket)
	}

	router.NotFound(h.navigate)

	return router
}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *DashboardHandler) appConfig(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.deps.Config)
}

func (h *DashboardHandler) envInfo(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.deps.EnvInfo)
}

func (h *DashboardHandler) routeList(w http.ResponseWriter, r *http.Request) {
	list := h.deps.Routes.List()

	out := make([]routeView, 0, len(list))
	for _, route := range list {
		out = append(out, newRouteView(route))
	}

	h.writeJSON(w, r, http.StatusOK, out)
}

type upstreamStatus struct {
	healthcheck.Snapshot
	Breakers map[string]string `json:"breakers,omitempty"`
}

func (h *DashboardHandler) upstreamHealth(w http.ResponseWriter, r *http.Request) {
	out := upstreamStatus{Snapshot: h.deps.Health.Snapshot()}
	if h.deps.Breakers != nil {
		out.Breakers = h.deps.Breakers.Stats()
	}

	status := http.StatusOK
	if !out.Health.Up {
		status = http.StatusServiceUnavailable
	}

	h.writeJSON(w, r, status, out)
}

func (h *DashboardHandler) navigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.writeJSON(w, r, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	match, ok := h.deps.Routes.Match(r.URL.Path)
	if !ok {
		h.writeJSON(w, r, http.StatusNotFound, errorBody{Error: "page not found"})
		return
	}

	if err := h.deps.Renderer.Render(w, r, match); err != nil {
		h.deps.Logger.Error("Failed to render page",
			slog.String("route", match.Route.Name),
			slog.String("component", string(match.Route.Component)),
			slog.Any("err", err))
		h.writeJSON(w, r, http.StatusInternalServerError, errorBody{Error: "page cannot be rendered"})
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *DashboardHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", apiconfig.ContentTypeJSON)
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.deps.Logger.Error("Failed to encode response", slog.Any("err", err))
	}
}

func componentsOf(table *routes.Table) []routes.ComponentRef {
	if table == nil {
		return nil
	}

	var refs []routes.ComponentRef
	for _, route := range table.List() {
		refs = append(refs, route.Component)
	}
	return refs
}
