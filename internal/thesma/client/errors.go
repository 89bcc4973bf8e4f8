package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an API failure into the fixed set of conditions the
// tool handlers translate into user-facing text.
type ErrorKind int

const (
	// KindServer covers HTTP 5xx, malformed response bodies, and transport
	// failures other than timeouts.
	KindServer ErrorKind = iota
	// KindAuth covers HTTP 401/403 — invalid or missing API key.
	KindAuth
	// KindNotFound covers HTTP 404 — unknown ticker, CIK, or resource.
	KindNotFound
	// KindRateLimit covers HTTP 429 — quota exhaustion. Never retried.
	KindRateLimit
	// KindTimeout covers requests exceeding the fixed 30-second ceiling.
	KindTimeout
	// KindValidation covers malformed arguments detected before any
	// network call.
	KindValidation
)

// APIError is the typed condition produced by the client for any failed
// request. Message holds the remote-provided error message when one was
// present in the response body.
type APIError struct {
	Kind       ErrorKind
	Status     int
	Endpoint   string
	Message    string
	RetryAfter string
}

// Error renders a human-readable explanation suitable for relaying to the
// assistant verbatim.
func (e *APIError) Error() string {
	switch e.Kind {
	case KindAuth:
		return fmt.Sprintf("%s. Get a new key at https://portal.thesma.dev", e.Message)
	case KindRateLimit:
		retry := e.RetryAfter
		if retry == "" {
			retry = "60"
		}
		return fmt.Sprintf("Rate limit exceeded. Try again in %s seconds. Upgrade at https://portal.thesma.dev/billing", retry)
	case KindTimeout:
		return fmt.Sprintf("Request to %s timed out. The Thesma API did not respond within %s.", e.Endpoint, DefaultTimeout)
	case KindServer:
		if e.Status >= 500 {
			return "Thesma API is temporarily unavailable. Try again in a moment."
		}
		return e.Message
	default:
		return e.Message
	}
}

// IsNotFound reports whether err is an APIError with KindNotFound.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsAuth reports whether err is an APIError with KindAuth.
func IsAuth(err error) bool { return hasKind(err, KindAuth) }

// IsRateLimit reports whether err is an APIError with KindRateLimit.
func IsRateLimit(err error) bool { return hasKind(err, KindRateLimit) }

// IsTimeout reports whether err is an APIError with KindTimeout.
func IsTimeout(err error) bool { return hasKind(err, KindTimeout) }

func hasKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// NotFoundError builds a KindNotFound condition with a caller-supplied
// message. Used by the resolver when a ticker has no matching company.
func NotFoundError(message string) *APIError {
	return &APIError{Kind: KindNotFound, Message: message}
}

// ValidationError builds a KindValidation condition for malformed tool
// arguments, detected before any network call.
func ValidationError(message string) *APIError {
	return &APIError{Kind: KindValidation, Message: message}
}
