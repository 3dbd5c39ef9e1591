package modem

import (
	"errors"
	"fmt"

	"github.com/modem-tools/modemsms/internal/xmlcodec"
)

var (
	// ErrUnknownCommand means the command name is not in the catalog.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnsupportedMethod means the catalog declares a method other than
	// GET or POST.
	ErrUnsupportedMethod = errors.New("unsupported method")

	// ErrTokenNotFound means the vendor asset was fetched but the token
	// marker was absent.
	ErrTokenNotFound = errors.New("token marker not found in vendor asset")
)

// TransportError wraps a connection-level failure. The client never retries;
// it propagates to the caller.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx device response. The device sometimes
// returns a structured error payload even on failure, so Body carries the
// decoded document when one could be decoded.
type StatusError struct {
	Code int
	Body xmlcodec.Value
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("modem API error (status %d)", e.Code)
}
