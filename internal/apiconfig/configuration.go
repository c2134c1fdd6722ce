package apiconfig

import (
	"encoding/json"
	"maps"
	"slices"
	"time"

	"github.com/angeloszaimis/proxy-dashboard/internal/environment"
)

// Retry declares how a client should retry a failed request.
// Attempts counts retries after the first try.
type Retry struct {
	Attempts int `json:"attempts"`
	DelayMs  int `json:"delayMs"`
}

// RequestDefaults are applied to every request the client sends.
type RequestDefaults struct {
	Headers   map[string]string `json:"headers"`
	TimeoutMs int               `json:"timeoutMs"`
}

// Configuration is the resolved API configuration snapshot.
type Configuration struct {
	env          environment.Environment
	baseURL      string
	websocketURL string
	timeoutMs    int
	retry        Retry
	endpoints    map[EndpointName]string
	httpStatus   map[StatusName]int
	headers      map[string]string
}

// Build resolves the configuration for env. origin is the page's own
// origin and only matters outside development.
func Build(env environment.Environment, origin string) Configuration {
	return Configuration{
		env:          env,
		baseURL:      ResolveBaseURL(env),
		websocketURL: ResolveWebsocketURL(env, origin),
		timeoutMs:    DefaultTimeoutMs,
		retry: Retry{
			Attempts: DefaultRetryAttempts,
			DelayMs:  DefaultRetryDelayMs,
		},
		endpoints:  endpointTable(),
		httpStatus: statusTable(),
		headers:    defaultHeaders(),
	}
}

func (c Configuration) Environment() environment.Environment { return c.env }
func (c Configuration) BaseURL() string                      { return c.baseURL }
func (c Configuration) WebsocketURL() string                 { return c.websocketURL }
func (c Configuration) TimeoutMs() int                       { return c.timeoutMs }
func (c Configuration) Retry() Retry                         { return c.retry }

func (c Configuration) Timeout() time.Duration {
	return time.Duration(c.timeoutMs) * time.Millisecond
}

func (c Configuration) RetryDelay() time.Duration {
	return time.Duration(c.retry.DelayMs) * time.Millisecond
}

// Endpoints returns a copy of the endpoint table.
func (c Configuration) Endpoints() map[EndpointName]string {
	return maps.Clone(c.endpoints)
}

func (c Configuration) Endpoint(name EndpointName) (string, bool) {
	path, ok := c.endpoints[name]
	return path, ok
}

// EndpointNames lists the endpoint names in a stable order.
func (c Configuration) EndpointNames() []EndpointName {
	return slices.Sorted(maps.Keys(c.endpoints))
}

// HTTPStatus returns a copy of the status code table.
func (c Configuration) HTTPStatus() map[StatusName]int {
	return maps.Clone(c.httpStatus)
}

func (c Configuration) Status(name StatusName) (int, bool) {
	code, ok := c.httpStatus[name]
	return code, ok
}

// RequestDefaults derives its timeout from the configuration timeout so
// the two never diverge.
func (c Configuration) RequestDefaults() RequestDefaults {
	return RequestDefaults{
		Headers:   maps.Clone(c.headers),
		TimeoutMs: c.timeoutMs,
	}
}

func (c Configuration) APIStatusValues() []APIStatus { return apiStatusValues() }
func (c Configuration) LogLevels() []LogLevel        { return logLevels() }

type configurationJSON struct {
	Environment     string                  `json:"environment"`
	BaseURL         string                  `json:"baseUrl"`
	WebsocketURL    string                  `json:"websocketUrl"`
	TimeoutMs       int                     `json:"timeoutMs"`
	Retry           Retry                   `json:"retry"`
	Endpoints       map[EndpointName]string `json:"endpoints"`
	HTTPStatus      map[StatusName]int      `json:"httpStatus"`
	RequestDefaults RequestDefaults         `json:"requestDefaults"`
	APIStatusValues []APIStatus             `json:"apiStatusValues"`
	LogLevels       []LogLevel              `json:"logLevels"`
}

func (c Configuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(configurationJSON{
		Environment:     c.env.String(),
		BaseURL:         c.baseURL,
		WebsocketURL:    c.websocketURL,
		TimeoutMs:       c.timeoutMs,
		Retry:           c.retry,
		Endpoints:       c.endpoints,
		HTTPStatus:      c.httpStatus,
		RequestDefaults: c.RequestDefaults(),
		APIStatusValues: c.APIStatusValues(),
		LogLevels:       c.LogLevels(),
	})
}
