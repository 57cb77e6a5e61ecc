package auth

import (
	"quill/cmd/internal/fault"
	"quill/cmd/security/token"
)

// RequireOwner allows the operation only when the resource's recorded owner
// is the session's account. On mismatch it returns the same unauthorized kind
// the gate produces, so a denied owner and a bad credential render
// identically and nothing about the true owner leaks.
func RequireOwner(ownerAccountID int64, s token.Session) error {
	if ownerAccountID == s.AccountID {
		return nil
	}
	return fault.New("auth.ownership", fault.ErrUnauthorized, "owner mismatch")
}
