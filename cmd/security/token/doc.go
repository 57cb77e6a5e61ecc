// Package token issues and verifies quill's stateless session tokens.
//
// Tokens are PASETO v4.local: symmetric authenticated encryption under a
// single process-wide key loaded once at startup. A token carries the account
// identifier plus a not-before/expiration pair; verification rejects the
// token whole on any integrity, parse, or time-window failure, and every such
// failure surfaces as the same ErrCannotDecryptToken so callers cannot tell
// "expired" from "forged" from "garbage".
package token
