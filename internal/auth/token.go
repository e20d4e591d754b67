package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/skybi/tools-sys/internal/user"
)

const issuerName = "tools-sys"

var (
	ErrEmptySecret  = errors.New("the token secret must not be empty")
	ErrInvalidToken = errors.New("the token is invalid or expired")
)

// Claims represents the claims carried by an access token
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

// UserID returns the ID of the user the token was issued to
func (claims *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(claims.Subject)
}

// TokenIssuer signs and verifies HS256 access tokens
type TokenIssuer struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenIssuer creates a new token issuer using the given signing secret and token lifetime
func NewTokenIssuer(secret string, lifetime time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// Issue issues a new access token for the given user
func (issuer *TokenIssuer) Issue(obj *user.User) (string, time.Time, error) {
	now := issuer.now()
	expires := now.Add(issuer.lifetime)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerName,
			Subject:   obj.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Username: obj.Username,
		Admin:    obj.Admin,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(issuer.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Verify parses and validates the given raw token and returns its claims.
// Every validation failure is reported as ErrInvalidToken.
func (issuer *TokenIssuer) Verify(raw string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return issuer.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
		jwt.WithTimeFunc(issuer.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
