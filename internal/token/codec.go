// Package token signs, verifies and caches compact expiring identity tokens.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rfreitas/task-tracker/internal/errs"
)

// TTL is the fixed token lifetime, computed from wall-clock now at sign time.
// There is no sliding renewal and no server-side revocation; expiry is the
// only lifecycle bound.
const TTL = 60 * 24 * time.Hour

// Claims is the decoded token payload.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 JWTs with a process-wide key. The key is set
// once at startup and never rotated during a process lifetime.
type Codec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewCodec constructs a codec for the given signing key.
func NewCodec(key []byte) *Codec {
	return &Codec{key: key, ttl: TTL, now: time.Now}
}

// Sign produces a signed token bound to userID and email, expiring after the
// codec TTL.
func (c *Codec) Sign(userID uuid.UUID, email string) (string, time.Time, error) {
	now := c.now()
	exp := now.Add(c.ttl)
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.key)
	return signed, exp, err
}

// Verify checks signature, signing method and expiry, and decodes the payload.
// Verification is all-or-nothing: any failure is errs.ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.key, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !parsed.Valid {
		return Claims{}, errs.ErrInvalidToken
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil || claims.Subject == "" {
		return Claims{}, errs.ErrInvalidToken
	}
	if _, err := uuid.FromString(claims.Subject); err != nil {
		return Claims{}, errs.ErrInvalidToken
	}
	return claims, nil
}

// UserID returns the token subject as a UUID. Verify guarantees it parses.
func (cl Claims) UserID() uuid.UUID {
	id, _ := uuid.FromString(cl.Subject)
	return id
}
