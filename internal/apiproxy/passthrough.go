package apiproxy

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
)

// SocketPrefix is where the backend serves its realtime channel. In
// production the browser dials it on the page origin.
const SocketPrefix = "/socket.io"

// Passthrough forwards everything under a prefix to the backend unchanged,
// including websocket upgrades. It has no breaker: connections are long
// lived and a failed dial already answers 502.
type Passthrough struct {
	prefix string
	target *url.URL
	proxy  *httputil.ReverseProxy
	logger *slog.Logger
}

func NewPassthrough(prefix string, target *url.URL, logger *slog.Logger) *Passthrough {
	return &Passthrough{
		prefix: strings.TrimRight(prefix, "/"),
		target: target,
		proxy:  newReverseProxy(target, logger),
		logger: logger,
	}
}

func (p *Passthrough) Prefix() string {
	return p.prefix
}

func (p *Passthrough) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != p.prefix && !strings.HasPrefix(r.URL.Path, p.prefix+"/") {
		http.NotFound(w, r)
		return
	}

	if r.Header.Get("Upgrade") != "" {
		p.logger.Debug("Tunnelling upgrade",
			slog.String("path", r.URL.Path),
			slog.String("upgrade", r.Header.Get("Upgrade")))
	}

	p.proxy.ServeHTTP(w, r)
}
