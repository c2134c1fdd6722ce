package apiproxy

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/angeloszaimis/proxy-dashboard/internal/apiconfig"
	"github.com/angeloszaimis/proxy-dashboard/internal/circuitbreaker"
	"github.com/angeloszaimis/proxy-dashboard/internal/metrics"
)

// UnmatchedEndpoint is the key shared by every forwarded path that is not
// one of the configured endpoints.
const UnmatchedEndpoint = "unmatched"

// Emitter receives metric events; *metrics.Collector satisfies it.
type Emitter interface {
	Emit(metrics.MetricEvent)
}

type Upstream struct {
	target    *url.URL
	prefix    string
	proxy     *httputil.ReverseProxy
	endpoints map[string]apiconfig.EndpointName
	breakers  *circuitbreaker.Registry
	emitter   Emitter
	logger    *slog.Logger
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// New creates a proxy to target that serves requests under the proxied base
// path. emitter may be nil.
func New(target *url.URL, cfg apiconfig.Configuration, breakers *circuitbreaker.Registry, emitter Emitter, logger *slog.Logger) *Upstream {
	u := &Upstream{
		target:    target,
		prefix:    apiconfig.ProxiedBaseURL,
		endpoints: make(map[string]apiconfig.EndpointName),
		breakers:  breakers,
		emitter:   emitter,
		logger:    logger,
	}

	for name, path := range cfg.Endpoints() {
		u.endpoints[path] = name
	}

	u.proxy = newReverseProxy(target, logger)

	return u
}

// newReverseProxy forwards to target keeping the request path. Upgrade
// requests are tunnelled by httputil.
func newReverseProxy(target *url.URL, logger *slog.Logger) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("Backend request failed",
				slog.String("path", r.URL.Path),
				slog.String("backend", target.String()),
				slog.String("error", err.Error()))
			writeError(w, http.StatusBadGateway, "backend unavailable")
		},
	}
}

// Prefix is the path the proxy is mounted on.
func (u *Upstream) Prefix() string {
	return u.prefix
}

func (u *Upstream) Target() *url.URL {
	return u.target
}

func (u *Upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path, ok := u.strip(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	key := u.endpointKey(path)
	breaker := u.breakers.Breaker(key)

	if !breaker.Allow() {
		u.logger.Warn("Rejecting request, circuit open", slog.String("endpoint", key))
		u.emit(metrics.MetricEvent{Type: metrics.EventRequestRejected, Endpoint: key})
		writeError(w, http.StatusServiceUnavailable, "backend endpoint temporarily unavailable")
		return
	}

	u.emit(metrics.MetricEvent{Type: metrics.EventRequestForwarded, Endpoint: key})

	outbound := r.Clone(r.Context())
	outbound.URL.Path = path
	outbound.URL.RawPath = ""

	wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
	start := time.Now()
	u.proxy.ServeHTTP(wrapped, outbound)
	duration := time.Since(start)

	breaker.Record(wrapped.statusCode < http.StatusInternalServerError)
	u.emit(metrics.MetricEvent{
		Type:       metrics.EventResponseCompleted,
		Endpoint:   key,
		Duration:   duration,
		StatusCode: wrapped.statusCode,
	})
}

func (u *Upstream) strip(path string) (string, bool) {
	if path == u.prefix {
		return "/", true
	}

	rest, ok := strings.CutPrefix(path, u.prefix+"/")
	if !ok {
		return "", false
	}

	return "/" + rest, true
}

func (u *Upstream) endpointKey(path string) string {
	if _, known := u.endpoints[path]; known {
		return path
	}

	return UnmatchedEndpoint
}

func (u *Upstream) emit(event metrics.MetricEvent) {
	if u.emitter == nil {
		return
	}
	u.emitter.Emit(event)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", apiconfig.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
