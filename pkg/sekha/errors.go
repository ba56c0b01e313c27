package sekha

import (
	"errors"
	"fmt"
)

// Sentinel errors classify every failure the client can surface. Each
// operation returns a *Error whose Kind is exactly one of these, so callers
// can branch with errors.Is without inspecting status codes.
var (
	// ErrNotFound indicates the controller reported the target entity absent.
	ErrNotFound = errors.New("conversation not found")

	// ErrValidation indicates the request was rejected as malformed, either
	// locally before sending or by the controller.
	ErrValidation = errors.New("request validation failed")

	// ErrServer indicates the controller reported an internal failure.
	ErrServer = errors.New("controller internal error")

	// ErrTransport indicates a network-level failure: unreachable host,
	// connection reset, or timeout.
	ErrTransport = errors.New("transport failure")

	// ErrSerialization indicates the response body did not conform to the
	// expected schema.
	ErrSerialization = errors.New("response does not match expected schema")

	// ErrClientClosed indicates the client was used after Close.
	ErrClientClosed = errors.New("client is closed")
)

// Error is the structured error returned by all client operations.
type Error struct {
	// Op is the operation that failed, e.g. "GetConversation".
	Op string

	// Kind is one of the sentinel errors above.
	Kind error

	// StatusCode is the HTTP status returned by the controller, when the
	// failure came from a completed request. Zero otherwise.
	StatusCode int

	// Msg carries the controller-provided message text or the underlying
	// cause, when available.
	Msg string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Msg, e.Kind.Error())
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind.Error())
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// IsNotFound reports whether err classifies as a not-found failure.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err classifies as a validation failure.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsServer reports whether err classifies as a controller internal failure.
func IsServer(err error) bool { return errors.Is(err, ErrServer) }

// IsTransport reports whether err classifies as a network-level failure.
func IsTransport(err error) bool { return errors.Is(err, ErrTransport) }

// IsSerialization reports whether err classifies as a schema mismatch.
func IsSerialization(err error) bool { return errors.Is(err, ErrSerialization) }
