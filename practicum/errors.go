package practicum

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Failure classes reported by RequestError. They keep the error text stable
// across retries of the same underlying problem.
const (
	ClassTimeout   = "timeout"
	ClassDNS       = "dns lookup failed"
	ClassRefused   = "connection refused"
	ClassCancelled = "cancelled"
	ClassTransport = "connection failed"
)

// RequestError indicates the request could not be completed and no response exists.
type RequestError struct {
	Endpoint string
	Class    string
	Err      error
}

func newRequestError(endpoint string, err error) *RequestError {
	return &RequestError{Endpoint: endpoint, Class: classify(err), Err: err}
}

// Error implements the error interface. The cause is only reachable through Unwrap.
func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed: %s", e.Endpoint, e.Class)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// UnexpectedStatusError indicates a response arrived with a status code other than 200.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected API response code: %d", e.StatusCode)
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *UnexpectedStatusError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// DecodeError indicates a 200 response whose body was not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func classify(err error) string {
	var (
		netErr net.Error
		dnsErr *net.DNSError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return ClassCancelled
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return ClassTimeout
	case errors.As(err, &dnsErr):
		return ClassDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		return ClassRefused
	default:
		return ClassTransport
	}
}
