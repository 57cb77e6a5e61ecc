// Package auth is the request-boundary authentication and authorization
// layer: it turns an inbound credential header into a verified session and
// checks resource ownership against it.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"quill/cmd/internal/fault"
	"quill/cmd/internal/web"
	"quill/cmd/security/token"
)

type contextKey struct{}

// SessionFromContext returns the session injected by Gate.Require.
func SessionFromContext(ctx context.Context) (token.Session, bool) {
	s, ok := ctx.Value(contextKey{}).(token.Session)
	return s, ok
}

// Gate verifies the inbound credential on protected routes. It is stateless
// per request; its only dependency is the token codec.
type Gate struct {
	log   *slog.Logger
	codec *token.Codec
	now   func() time.Time
}

// NewGate constructs a Gate around the process token codec.
func NewGate(log *slog.Logger, codec *token.Codec) *Gate {
	if log == nil {
		log = slog.Default()
	}
	return &Gate{log: log, codec: codec, now: func() time.Time { return time.Now().UTC() }}
}

// Require wraps next so it only runs with a verified session in the request
// context. A missing credential is detected before decryption is attempted;
// it renders identically to an invalid one.
func (g *Gate) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred := credential(r)
		if cred == "" {
			web.RenderError(w, g.log, fault.New("auth.gate", fault.ErrUnauthorized, "missing credential"))
			return
		}

		s, err := g.codec.Verify(cred, g.now())
		if err != nil {
			// Any decrypt failure re-raises as unauthorized.
			web.RenderError(w, g.log, fault.New("auth.gate", fault.ErrUnauthorized, "credential verification failed"))
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, s)))
	}
}

// credential extracts the opaque credential from the Authorization header.
// The value is passed whole to token verification; a conventional "Bearer "
// prefix is tolerated and stripped.
func credential(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if len(raw) > 7 && strings.EqualFold(raw[:7], "Bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
