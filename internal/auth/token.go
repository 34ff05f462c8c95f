package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification:
// malformed structure, bad signature, or expiration in the past.
// Callers cannot distinguish the cases; the middleware responds
// identically to all of them.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenIssuer mints and verifies HS256-signed bearer tokens.
// Tokens are self-contained: subject and absolute expiry travel in the
// claims, nothing is persisted server-side. Rotating the secret
// invalidates every outstanding token.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret and TTL.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the issuer's clock. Test hook.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// Issue creates a signed token for the given subject.
// The expiry is absolute: issue time plus the configured TTL.
func (i *TokenIssuer) Issue(subjectID string) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the subject on success.
// Expiration is strict; no clock-skew leeway is applied. All failure
// modes collapse into ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(token *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
