package apiclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/angeloszaimis/proxy-dashboard/internal/apiconfig"
)

type options struct {
	retryDelay *time.Duration
	transport  http.RoundTripper
}

type Option func(*options)

// WithRetryDelay overrides the configured delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(o *options) { o.retryDelay = &d }
}

func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

type Client struct {
	rest   *resty.Client
	cfg    apiconfig.Configuration
	logger *slog.Logger
}

func New(cfg apiconfig.Configuration, origin string, logger *slog.Logger, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	baseURL, err := resolveBaseURL(cfg.BaseURL(), origin)
	if err != nil {
		return nil, err
	}

	delay := cfg.RetryDelay()
	if o.retryDelay != nil {
		delay = *o.retryDelay
	}

	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout()).
		SetHeaders(cfg.RequestDefaults().Headers).
		SetRetryCount(cfg.Retry().Attempts).
		SetRetryWaitTime(delay).
		SetRetryMaxWaitTime(delay).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		})

	if o.transport != nil {
		rest.SetTransport(o.transport)
	}

	c := &Client{rest: rest, cfg: cfg, logger: logger}

	rest.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.logger.Debug("Backend response",
			slog.String("method", resp.Request.Method),
			slog.String("url", resp.Request.URL),
			slog.Int("status", resp.StatusCode()),
			slog.Int("attempt", resp.Request.Attempt),
			slog.Duration("duration", resp.Time()))
		return nil
	})

	return c, nil
}

// BaseURL is the absolute URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.rest.BaseURL
}

func resolveBaseURL(base string, origin string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}

	if u.IsAbs() {
		return strings.TrimRight(base, "/"), nil
	}

	o, err := apiconfig.ParseOrigin(origin)
	if err != nil {
		return "", fmt.Errorf("resolve relative base url %q: %w", base, err)
	}

	return o + "/" + strings.Trim(base, "/"), nil
}

func (c *Client) ProxyStatus(ctx context.Context) (ProxyStatus, error) {
	var out ProxyStatus
	err := c.do(ctx, http.MethodGet, apiconfig.EndpointProxyStatus, nil, &out)
	return out, err
}

func (c *Client) StartProxy(ctx context.Context, req StartRequest) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodPost, apiconfig.EndpointProxyStart, req, &out)
	return out, err
}

func (c *Client) StopProxy(ctx context.Context) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodPost, apiconfig.EndpointProxyStop, nil, &out)
	return out, err
}

func (c *Client) TestProxy(ctx context.Context) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodPost, apiconfig.EndpointProxyTest, nil, &out)
	return out, err
}

func (c *Client) CheckIP(ctx context.Context) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodGet, apiconfig.EndpointIPCheck, nil, &out)
	return out, err
}

func (c *Client) IPDetails(ctx context.Context) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodGet, apiconfig.EndpointIPDetails, nil, &out)
	return out, err
}

func (c *Client) Connections(ctx context.Context) (ConnectionStats, error) {
	var out ConnectionStats
	err := c.do(ctx, http.MethodGet, apiconfig.EndpointConnections, nil, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodGet, apiconfig.EndpointHealth, nil, &out)
	return out, err
}

func (c *Client) Ready(ctx context.Context) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodGet, apiconfig.EndpointReady, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method string, name apiconfig.EndpointName, body any, out any) error {
	path, ok := c.cfg.Endpoint(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEndpoint, name)
	}

	req := c.rest.R().
		SetContext(ctx).
		SetResult(out)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s request: %w", name, err)
	}

	if resp.IsError() || resp.StatusCode() >= http.StatusMultipleChoices {
		return &StatusError{
			Endpoint:   name,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}

	return nil
}
