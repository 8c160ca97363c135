package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
)

// DefaultTokenTTL is the validity window of an issued token.
const DefaultTokenTTL = 24 * time.Hour

// tokenHeader prefixes every token and is bound to the ciphertext as associated data.
const tokenHeader = "v1.local."

var tokenEncoding = base64.RawURLEncoding.Strict()

// Key is the server-wide symmetric token key.
type Key [chacha20poly1305.KeySize]byte

// ParseKey builds a Key from the secret configured at startup. The secret is either
// exactly 32 raw bytes or the standard/URL base64 encoding of 32 bytes.
func ParseKey(secret string) (Key, error) {
	var key Key
	if len(secret) == len(key) {
		copy(key[:], secret)
		return key, nil
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		decoded, err := enc.DecodeString(secret)
		if err == nil && len(decoded) == len(key) {
			copy(key[:], decoded)
			return key, nil
		}
	}
	return key, fmt.Errorf("auth: token key must be %d bytes, raw or base64 encoded", len(key))
}

type tokenClaims struct {
	AccountID int64     `json:"account_id"`
	NotBefore time.Time `json:"nbf"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenCodec seals session claims with XChaCha20-Poly1305. It is immutable and safe
// for concurrent use.
type TokenCodec struct {
	key  Key
	ttl  time.Duration
	rand io.Reader
}

// NewTokenCodec constructs a codec issuing tokens valid for ttl.
func NewTokenCodec(key Key, ttl time.Duration) (*TokenCodec, error) {
	if ttl <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}
	if key == (Key{}) {
		return nil, errors.New("auth: token key must not be zero")
	}
	return &TokenCodec{key: key, ttl: ttl, rand: rand.Reader}, nil
}

// TTL returns the validity window of issued tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue returns a token for accountID valid in [now, now+ttl).
func (c *TokenCodec) Issue(accountID int64, now time.Time) (string, error) {
	now = now.UTC().Round(0)
	plaintext, err := json.Marshal(tokenClaims{
		AccountID: accountID,
		NotBefore: now,
		ExpiresAt: now.Add(c.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("auth: encode claims: %w", err)
	}

	aead, err := chacha20poly1305.NewX(c.key[:])
	if err != nil {
		return "", fmt.Errorf("auth: new aead: %w", err)
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return "", fmt.Errorf("auth: read nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, plaintext, []byte(tokenHeader))
	return tokenHeader + tokenEncoding.EncodeToString(sealed), nil
}

// Verify opens token and checks its validity window against now. Every decoding or
// authentication failure is ErrTokenInvalid; window failures are ErrTokenNotYetValid
// and ErrTokenExpired.
func (c *TokenCodec) Verify(token string, now time.Time) (Session, error) {
	body, ok := strings.CutPrefix(token, tokenHeader)
	if !ok {
		return Session{}, ErrTokenInvalid
	}
	sealed, err := tokenEncoding.DecodeString(body)
	if err != nil {
		return Session{}, ErrTokenInvalid
	}

	aead, err := chacha20poly1305.NewX(c.key[:])
	if err != nil {
		return Session{}, ErrTokenInvalid
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return Session{}, ErrTokenInvalid
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(tokenHeader))
	if err != nil {
		return Session{}, ErrTokenInvalid
	}

	var claims tokenClaims
	if err := json.Unmarshal(plaintext, &claims); err != nil {
		return Session{}, ErrTokenInvalid
	}
	if claims.NotBefore.IsZero() || claims.ExpiresAt.IsZero() {
		return Session{}, ErrTokenInvalid
	}

	if now.Before(claims.NotBefore) {
		return Session{}, ErrTokenNotYetValid
	}
	if !now.Before(claims.ExpiresAt) {
		return Session{}, ErrTokenExpired
	}
	return Session{
		AccountID: claims.AccountID,
		NotBefore: claims.NotBefore,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}
