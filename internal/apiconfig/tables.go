package apiconfig

// EndpointName is the logical name of a backend operation.
type EndpointName string

const (
	EndpointProxyStatus EndpointName = "PROXY_STATUS"
	EndpointProxyStart  EndpointName = "PROXY_START"
	EndpointProxyStop   EndpointName = "PROXY_STOP"
	EndpointProxyTest   EndpointName = "PROXY_TEST"
	EndpointIPCheck     EndpointName = "IP_CHECK"
	EndpointIPDetails   EndpointName = "IP_DETAILS"
	EndpointConnections EndpointName = "CONNECTIONS"
	EndpointHealth      EndpointName = "HEALTH"
	EndpointReady       EndpointName = "READY"
)

// StatusName is the logical name of an HTTP status code.
type StatusName string

const (
	StatusOK                  StatusName = "OK"
	StatusCreated             StatusName = "CREATED"
	StatusBadRequest          StatusName = "BAD_REQUEST"
	StatusUnauthorized        StatusName = "UNAUTHORIZED"
	StatusForbidden           StatusName = "FORBIDDEN"
	StatusNotFound            StatusName = "NOT_FOUND"
	StatusInternalServerError StatusName = "INTERNAL_SERVER_ERROR"
	StatusServiceUnavailable  StatusName = "SERVICE_UNAVAILABLE"
)

// APIStatus tags the lifecycle of a request in the dashboard views.
type APIStatus string

const (
	APIStatusSuccess APIStatus = "success"
	APIStatusError   APIStatus = "error"
	APIStatusLoading APIStatus = "loading"
	APIStatusIdle    APIStatus = "idle"
)

// LogLevel tags client-side log records.
type LogLevel string

const (
	LogLevelError LogLevel = "error"
	LogLevelWarn  LogLevel = "warn"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
)

const (
	// DevelopmentBaseURL is where the backend listens when both halves run
	// on a developer machine.
	DevelopmentBaseURL = "http://localhost:5000"

	// ProxiedBaseURL is the path the reverse proxy in front of the static
	// assets forwards to the backend.
	ProxiedBaseURL = "/api"

	DefaultTimeoutMs     = 10000
	DefaultRetryAttempts = 3
	DefaultRetryDelayMs  = 1000

	ContentTypeJSON = "application/json"
)

func endpointTable() map[EndpointName]string {
	return map[EndpointName]string{
		EndpointProxyStatus: "/api/proxy/status",
		EndpointProxyStart:  "/api/proxy/start",
		EndpointProxyStop:   "/api/proxy/stop",
		EndpointProxyTest:   "/api/proxy/test",
		EndpointIPCheck:     "/api/ip/check",
		EndpointIPDetails:   "/api/ip/details",
		EndpointConnections: "/api/connections",
		EndpointHealth:      "/health",
		EndpointReady:       "/ready",
	}
}

func statusTable() map[StatusName]int {
	return map[StatusName]int{
		StatusOK:                  200,
		StatusCreated:             201,
		StatusBadRequest:          400,
		StatusUnauthorized:        401,
		StatusForbidden:           403,
		StatusNotFound:            404,
		StatusInternalServerError: 500,
		StatusServiceUnavailable:  503,
	}
}

func defaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": ContentTypeJSON,
		"Accept":       ContentTypeJSON,
	}
}

func apiStatusValues() []APIStatus {
	return []APIStatus{APIStatusSuccess, APIStatusError, APIStatusLoading, APIStatusIdle}
}

func logLevels() []LogLevel {
	return []LogLevel{LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug}
}
