// Package auth verifies the session token carried in a request cookie.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultCookieName is the cookie holding the session token
const DefaultCookieName = "token"

var (
	ErrNoSecret     = errors.New("no secret configured")
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims holds JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// Authorizer validates session tokens
type Authorizer interface {
	CookieName() string
	Authorize(token string) (*Claims, error)
}

// JWTAuthorizer validates HMAC-signed tokens read from a cookie
type JWTAuthorizer struct {
	secret     []byte
	cookieName string
}

// NewJWTAuthorizer creates an authorizer. An empty cookieName uses DefaultCookieName.
func NewJWTAuthorizer(secret []byte, cookieName string) *JWTAuthorizer {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &JWTAuthorizer{secret: secret, cookieName: cookieName}
}

// CookieName returns the cookie the token is read from
func (a *JWTAuthorizer) CookieName() string {
	return a.cookieName
}

// Authorize parses and validates a token string
func (a *JWTAuthorizer) Authorize(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	return ValidateToken(token, a.secret)
}

// ValidateToken parses and validates a JWT token string with the given secret.
func ValidateToken(tokenString string, secret []byte) (*Claims, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NewToken creates a signed token for username valid for expiry.
func NewToken(secret []byte, username string, expiry time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrNoSecret
	}
	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Username: username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

var _ Authorizer = (*JWTAuthorizer)(nil)
