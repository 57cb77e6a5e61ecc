package token

import (
	"time"

	paseto "aidanwoods.dev/go-paseto"
)

// Lifetime is the fixed validity window of every issued token. It is not
// configurable per call.
const Lifetime = 24 * time.Hour

// Session is the authenticated identity and validity window derived from a
// verified token. It is constructed fresh on every successful verification
// and never persisted.
type Session struct {
	AccountID int64
	NotBefore time.Time
	ExpiresAt time.Time
}

// Codec issues and verifies encrypted session tokens. It holds the
// process-wide symmetric key, set once at construction and never rotated.
// Codec is safe for concurrent use; it has no mutable state.
type Codec struct {
	key paseto.V4SymmetricKey
}

// NewCodec builds a Codec from a hex-encoded 32-byte symmetric key.
func NewCodec(keyHex string) (*Codec, error) {
	key, err := paseto.V4SymmetricKeyFromHex(keyHex)
	if err != nil {
		return nil, ErrConfig
	}
	return &Codec{key: key}, nil
}

// Issue encrypts a token for accountID valid from now until now+Lifetime.
func (c *Codec) Issue(accountID int64, now time.Time) (string, error) {
	tok := paseto.NewToken()
	tok.SetIssuedAt(now)
	tok.SetNotBefore(now)
	tok.SetExpiration(now.Add(Lifetime))

	if err := tok.Set("account_id", accountID); err != nil {
		return "", err
	}

	return tok.V4Encrypt(c.key, nil), nil
}

// Verify decrypts raw and returns the embedded Session.
//
// Decryption failure, claim-parse failure, and time-window violation are
// indistinguishable: all return ErrCannotDecryptToken.
func (c *Codec) Verify(raw string, now time.Time) (Session, error) {
	// A fresh parser per call; the expiry default is replaced by ValidAt so
	// the whole window check runs against the caller's clock.
	p := paseto.NewParserWithoutExpiryCheck()
	p.AddRule(paseto.ValidAt(now))

	parsed, err := p.ParseV4Local(c.key, raw, nil)
	if err != nil {
		return Session{}, ErrCannotDecryptToken
	}

	var accountID int64
	if err := parsed.Get("account_id", &accountID); err != nil || accountID <= 0 {
		return Session{}, ErrCannotDecryptToken
	}
	nbf, err := parsed.GetNotBefore()
	if err != nil {
		return Session{}, ErrCannotDecryptToken
	}
	exp, err := parsed.GetExpiration()
	if err != nil {
		return Session{}, ErrCannotDecryptToken
	}

	return Session{AccountID: accountID, NotBefore: nbf, ExpiresAt: exp}, nil
}
