// Package fault is the single error taxonomy for quill.
//
// Every failure produced anywhere in the service is tagged with one of the
// sentinel kinds below. The HTTP boundary (cmd/internal/web) renders each kind
// to exactly one status + message pair; nothing downstream of failure
// detection re-interprets a kind.
package fault

import (
	"errors"
	"fmt"
)

// Sentinel kinds. The set is closed: web.RenderError matches all of them
// explicitly, and anything outside the set is treated as an internal error,
// never as a success.
var (
	// ErrHashing marks a malformed stored password hash.
	ErrHashing = errors.New("hashing_failure")

	// ErrWrongCredential marks a password mismatch or unknown login identity.
	ErrWrongCredential = errors.New("wrong_credential")

	// ErrUnauthorized marks a missing/undecryptable token or an ownership
	// mismatch. All three are deliberately indistinguishable to callers.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrClient marks a 4xx from the external classification service.
	ErrClient = errors.New("dependency_client_error")

	// ErrServer marks a 5xx from the external classification service.
	ErrServer = errors.New("dependency_server_error")

	// ErrTransport marks a network failure after retries were exhausted, or a
	// success body that violates the dependency's protocol contract.
	ErrTransport = errors.New("dependency_transport_error")

	// ErrMalformed marks caller-correctable input problems (bad request body,
	// unparsable query parameters). Its detail is safe to echo.
	ErrMalformed = errors.New("malformed_input")

	// ErrDatabase marks a storage-layer query failure.
	ErrDatabase = errors.New("database_query")

	// ErrNotFound marks a missing route or resource.
	ErrNotFound = errors.New("not_found")
)

// Error is the typed carrier attached to every failure path.
//
// Op names the failing operation ("auth.login", "profanity.classify"). Msg is
// internal context and is only ever logged, except for ErrMalformed where it
// doubles as the echoed detail. Msg must never contain secrets.
type Error struct {
	Op   string
	Kind error
	Msg  string
}

func (e Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e Error) Unwrap() error { return e.Kind }

// New builds a tagged Error.
func New(op string, kind error, msg string) error {
	return Error{Op: op, Kind: kind, Msg: msg}
}

// RemoteError carries the structured status + message returned by the
// external classification service on non-success. Kind is ErrClient or
// ErrServer. The message is logged server-side and never echoed.
type RemoteError struct {
	Op      string
	Kind    error
	Status  int
	Message string
}

func (e RemoteError) Error() string {
	return fmt.Sprintf("%s: %v: status %d: %s", e.Op, e.Kind, e.Status, e.Message)
}

func (e RemoteError) Unwrap() error { return e.Kind }

// Remote builds a RemoteError from a dependency status code. 4xx maps to
// ErrClient, everything else to ErrServer.
func Remote(op string, status int, message string) error {
	kind := ErrServer
	if status >= 400 && status < 500 {
		kind = ErrClient
	}
	return RemoteError{Op: op, Kind: kind, Status: status, Message: message}
}

// IsUnauthorized reports whether err renders as a credential failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrWrongCredential)
}

// IsNotFound reports whether err represents ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsMalformed reports whether err represents ErrMalformed.
func IsMalformed(err error) bool { return errors.Is(err, ErrMalformed) }

// IsDatabase reports whether err represents ErrDatabase.
func IsDatabase(err error) bool { return errors.Is(err, ErrDatabase) }

// Detail extracts the caller-safe detail of a malformed-input fault.
// For any other kind it returns "".
func Detail(err error) string {
	var fe Error
	if errors.As(err, &fe) && errors.Is(fe.Kind, ErrMalformed) {
		return fe.Msg
	}
	return ""
}
