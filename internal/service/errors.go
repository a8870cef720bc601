package service

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRateLimited is returned when the upstream answered 429
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrPaymentRequired is returned when the upstream answered 402
	ErrPaymentRequired = errors.New("payment required")
	// ErrNoContent is returned when the gateway reply carries no message content
	ErrNoContent = errors.New("no content in AI response")
	// ErrMissingAPIKey is returned when the relay has no gateway key configured
	ErrMissingAPIKey = errors.New("GATEWAY_API_KEY not configured")
)

// StatusError reports a non-2xx response from a remote endpoint.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
	// Message is the {error} body of the response, when it had one
	Message string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, status)
}

// Unwrap maps 429 and 402 onto the matching sentinels so callers can use errors.Is.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrPaymentRequired
	}
	return nil
}

// StatusCode extracts the HTTP status from err, or 0 when it carries none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
