package braiins

import (
	"errors"
	"fmt"
)

// Protocol errors, one per classified HTTP outcome. The mapping is an
// explicit enumeration so callers can branch with errors.Is instead of
// inspecting status codes or body text.
var (
	// ErrEmptyResponse: success status but the body was empty.
	ErrEmptyResponse = errors.New("empty response")
	// ErrInvalidAPIKey: success status but the body carried the pool's
	// invalid-token phrase. Detection is a substring match on a known
	// server message; it breaks if the server rewords it.
	ErrInvalidAPIKey = errors.New("invalid API key")

	ErrBadRequest           = errors.New("bad request")            // 400
	ErrUnauthorized         = errors.New("unauthorized")           // 401
	ErrForbidden            = errors.New("forbidden")              // 403
	ErrNotFound             = errors.New("not found")              // 404
	ErrMethodNotAllowed     = errors.New("method not allowed")     // 405
	ErrTooManyRequests      = errors.New("too many requests")      // 429
	ErrUnhandledClientError = errors.New("unhandled client error") // 402, 406-428, 430-499
	ErrInternalServerError  = errors.New("internal server error")  // 500
	ErrNotImplemented       = errors.New("not implemented")        // 501
	ErrBadGateway           = errors.New("bad gateway")            // 502
	ErrServiceUnavailable   = errors.New("service unavailable")    // 503
	ErrGatewayTimeout       = errors.New("gateway timeout")        // 504
	ErrUnhandledServerError = errors.New("unhandled server error") // >= 505
)

// ConfigError reports invalid client construction input: an empty or
// non-header-safe API key, a bad base URL, or a bad proxy address.
// The offending API key value itself is never included.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Reason
}

// TransportError wraps a network-level failure (dial, TLS, timeout).
// The underlying error is preserved without reinterpretation.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a malformed or structurally unexpected response
// body: invalid JSON, a missing required field, a wrong JSON type, or a
// decimal string that does not parse.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErrorf(format string, args ...any) *DecodeError {
	return &DecodeError{Err: fmt.Errorf(format, args...)}
}
