package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HS256 secret we accept. Anything shorter
// is refused at startup rather than silently producing weak tokens.
const MinSecretLength = 32

// ErrWeakSecret is returned when the signing secret is missing or too short.
var ErrWeakSecret = errors.New("jwtx: signing secret missing or shorter than 32 bytes")

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Options configures an HS256 signer/verifier pair.
type HS256Options struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Now is the clock used during verification. Defaults to time.Now.
	Now func() time.Time
}

// HS256 signs and verifies tokens with a single shared secret. It implements
// both Signer and Verifier since the secret is symmetric.
type HS256 struct {
	secret []byte
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewHS256 builds a signer/verifier from the shared secret.
func NewHS256(secret []byte, opts HS256Options) (*HS256, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	// Keep our own copy so callers can't mutate the key underneath us
	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256{
		secret: key,
		issuer: opts.Issuer,
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(now),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}, nil
}

func (s *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256) Sign(claims Claims) (string, error) {
	if err := claims.ValidateLifetime(); err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}
