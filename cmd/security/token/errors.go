package token

import "errors"

var (
	// ErrCannotDecryptToken is the single failure returned by Verify. It
	// deliberately does not distinguish tampering, malformed claims, or
	// time-window violations.
	ErrCannotDecryptToken = errors.New("cannot decrypt token")

	// ErrConfig is returned for an invalid or missing encryption key.
	ErrConfig = errors.New("invalid token config")
)
