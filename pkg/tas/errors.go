package tas

import (
	"errors"
	"fmt"
)

// Failure classes. Match them with errors.Is; use errors.As with the typed
// errors below to get at the status code, body or server message.
var (
	// ErrInvalidArgument reports a local precondition violation. No request
	// was sent.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTransport reports a connection-level failure or a non-2xx response
	// that did not carry a JSON envelope.
	ErrTransport = errors.New("transport error")

	// ErrProtocol reports a successful response whose body could not be
	// interpreted: not JSON, or missing the envelope fields.
	ErrProtocol = errors.New("protocol error")

	// ErrRemote reports an envelope with status other than "success".
	ErrRemote = errors.New("remote error")
)

const maxBodyInError = 256

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// TransportError carries the raw status and body of a failed exchange.
// StatusCode is zero when no response was received; Err is then set.
type TransportError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %v", e.Err)
	}
	return fmt.Sprintf("transport error: status %d: %s", e.StatusCode, truncate(e.Body))
}

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError means the service answered but the body could not be read as
// the expected envelope.
type ProtocolError struct {
	StatusCode int
	Body       []byte
	Reason     string
	Err        error
}

func (e *ProtocolError) Error() string {
	msg := "protocol error: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProtocolError) Is(target error) bool { return target == ErrProtocol }

func (e *ProtocolError) Unwrap() error { return e.Err }

// RemoteError is the service's own refusal: bad credentials, unknown
// records, validation failures. Message is the server text, unmodified.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return "remote error: " + e.Message
}

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

func truncate(b []byte) string {
	if len(b) <= maxBodyInError {
		return string(b)
	}
	return string(b[:maxBodyInError]) + "..."
}
