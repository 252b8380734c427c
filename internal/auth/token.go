package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredentials is returned for every token validation failure:
// bad signature, expired, malformed, or missing subject. Callers must not
// be able to distinguish these cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenManager issues and validates signed bearer tokens.
type TokenManager struct {
	key    []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager for the given HMAC algorithm
// (HS256, HS384, or HS512) and token lifetime in minutes.
func NewTokenManager(key, algorithm string, ttlMinutes int) (*TokenManager, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}

	return &TokenManager{
		key:    []byte(key),
		method: method,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

// Issue signs a token whose subject is username, expiring after the
// configured TTL.
func (m *TokenManager) Issue(username string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
	}

	signed, err := jwt.NewWithClaims(m.method, claims).SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of a token and returns its
// subject. Only the configured signing method is accepted.
func (m *TokenManager) Decode(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return m.key, nil },
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if claims.Subject == "" {
		return "", ErrInvalidCredentials
	}
	return claims.Subject, nil
}
