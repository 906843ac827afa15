// Package services provides technical concerns shared by the API surface, like negotiator identity tokens
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token service error constants
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenService issues and validates the bearer tokens that identify the
// negotiator working a pricing run. The identity ends up as the author on
// saved scenario versions.
type TokenService interface {
	GenerateToken(author string) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
}

// TokenClaims represents the claims in a negotiator token
type TokenClaims struct {
	Author    string    `json:"author"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	TokenID   string    `json:"jti"`
}

// TokenServiceImpl implements TokenService with a symmetric signing key
type TokenServiceImpl struct {
	ttl       time.Duration
	secretKey []byte
	issuer    string
}

// NewTokenService creates a new token service instance
func NewTokenService(ttl time.Duration, issuer, secretKey string) (TokenService, error) {
	if len(secretKey) < 32 {
		return nil, fmt.Errorf("secret key must be at least 32 characters, got %d", len(secretKey))
	}
	return &TokenServiceImpl{
		ttl:       ttl,
		secretKey: []byte(secretKey),
		issuer:    issuer,
	}, nil
}

// GenerateToken issues a signed token for the given author identity.
func (s *TokenServiceImpl) GenerateToken(author string) (string, error) {
	if author == "" {
		return "", fmt.Errorf("author is required")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": author,
		"iss": s.issuer,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *TokenServiceImpl) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	author, _ := claims["sub"].(string)
	if author == "" {
		return nil, ErrTokenInvalid
	}

	out := &TokenClaims{Author: author}
	if jti, ok := claims["jti"].(string); ok {
		out.TokenID = jti
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
