package apiconfig

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/angeloszaimis/proxy-dashboard/internal/environment"
)

var ErrInvalidOrigin = errors.New("invalid origin")

// ResolveBaseURL returns the root address the client prefixes onto every
// endpoint path.
func ResolveBaseURL(env environment.Environment) string {
	if env.IsDevelopment() {
		return DevelopmentBaseURL
	}

	return ProxiedBaseURL
}

// ResolveWebsocketURL returns the address for the live-update channel. In
// development the backend runs on its own port and is dialled directly;
// everywhere else it shares the page's origin behind the reverse proxy.
func ResolveWebsocketURL(env environment.Environment, origin string) string {
	if env.IsDevelopment() {
		return DevelopmentBaseURL
	}

	return origin
}

// ParseOrigin normalises raw into the scheme://host[:port] form a browser
// reports for a page. Default ports are dropped.
func ParseOrigin(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidOrigin)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOrigin, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q must use http or https scheme", ErrInvalidOrigin, raw)
	}

	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidOrigin, raw)
	}

	if u.User != nil || (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("%w: %q must not carry credentials, path, query or fragment", ErrInvalidOrigin, raw)
	}

	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}

	if port != "" {
		host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	return u.Scheme + "://" + host, nil
}
