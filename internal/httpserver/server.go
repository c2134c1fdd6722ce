package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const defaultShutdownTimeout = 5 * time.Second

// Timeouts bounds the lifetime of connections accepted by the server. Zero
// fields fall back to the defaults of DefaultTimeouts.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Idle     time.Duration
	Shutdown time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Read:     15 * time.Second,
		Write:    15 * time.Second,
		Idle:     60 * time.Second,
		Shutdown: defaultShutdownTimeout,
	}
}

func (t Timeouts) withDefaults() Timeouts {
	d := DefaultTimeouts()
	if t.Read <= 0 {
		t.Read = d.Read
	}
	if t.Write <= 0 {
		t.Write = d.Write
	}
	if t.Idle <= 0 {
		t.Idle = d.Idle
	}
	if t.Shutdown <= 0 {
		t.Shutdown = d.Shutdown
	}
	return t
}

// Server wraps http.Server with address validation and graceful shutdown.
type Server struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

// New creates a server for the dashboard handler. The address is validated
// before anything is bound.
func New(addr string, handler http.Handler, timeouts Timeouts) (*Server, error) {
	if err := ValidateAddress(addr); err != nil {
		return nil, err
	}

	t := timeouts.withDefaults()

	srv := &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  t.Read,
			WriteTimeout: t.Write,
			IdleTimeout:  t.Idle,
		},
		shutdownTimeout: t.Shutdown,
	}

	return srv, nil
}

func (s *Server) Addr() string {
	return s.server.Addr
}

// Serve accepts connections on l until Shutdown. A clean shutdown is not an
// error.
func (s *Server) Serve(l net.Listener) error {
	err := s.server.Serve(l)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown drains in-flight requests, giving up after the shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// ValidateAddress checks that value is a host:port listen address. The host
// may be empty to listen on every interface. Settings and the server share it.
func ValidateAddress(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cant be empty")
	}

	// Port 0 asks the kernel for a free port.
	if err := is.Digit.Validate(port); err != nil {
		return validation.NewError("validation_invalid_port", "port must be numeric")
	}
	if n, err := strconv.Atoi(port); err != nil || n > 65535 {
		return validation.NewError("validation_invalid_port", "port out of range")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}
