package apiclient

// Connection is one client connection tracked by the proxy.
type Connection struct {
	ID            string `json:"id"`
	Target        string `json:"target"`
	BytesSent     int64  `json:"bytes_sent"`
	BytesReceived int64  `json:"bytes_received"`
	StartTime     string `json:"start_time"`
}

type ConnectionStats struct {
	TotalConnections  int          `json:"total_connections"`
	TotalBytes        int64        `json:"total_bytes"`
	ActiveConnections []Connection `json:"active_connections"`
}

type ProxyStatus struct {
	Running           bool         `json:"running"`
	Port              int          `json:"port"`
	ProxyType         string       `json:"proxy_type"`
	Connections       int          `json:"connections"`
	TotalBytes        int64        `json:"total_bytes"`
	ActiveConnections []Connection `json:"active_connections"`
	StartTime         *string      `json:"start_time"`
}

const (
	ProxyTypeHTTP   = "http"
	ProxyTypeSOCKS5 = "socks5"
)

// StartRequest selects the listener the backend starts. Zero values leave
// the backend defaults (port 8888, http) in place.
type StartRequest struct {
	Port      int    `json:"port,omitempty"`
	ProxyType string `json:"proxy_type,omitempty"`
}

// Payload is a response whose shape the dashboard passes through untouched.
type Payload map[string]any
