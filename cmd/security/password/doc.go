// Package password hashes and verifies account passwords for quill.
//
// It implements Argon2id with a PHC-style self-describing encoded string, so
// verification needs no side-channel parameter lookup. Each hash uses a fresh
// 32-byte random salt. Encoded hashes are treated as untrusted input during
// Verify: decoding is strict, and parameters far above the configured maxima
// are refused to keep attacker-supplied hash strings from driving pathological
// memory use.
//
// A password mismatch is a normal (false, nil) result. Only a malformed hash
// string is an error.
package password
