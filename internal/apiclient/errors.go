package apiclient

import (
	"errors"
	"fmt"

	"github.com/angeloszaimis/proxy-dashboard/internal/apiconfig"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrUnknownEndpoint  = errors.New("unknown endpoint")
)

// StatusError is returned when the backend answers with a non-2xx status
// after all retries.
type StatusError struct {
	Endpoint   apiconfig.EndpointName
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned %d", ErrUnexpectedStatus, e.Endpoint, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
