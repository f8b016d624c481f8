package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("session token invalid")
	ErrTokenExpired = errors.New("session token expired")
)

// SessionClaims are the claims carried by a signed session token
type SessionClaims struct {
	GroupID int64 `json:"gid"`
	jwt.RegisteredClaims
}

// TokenSigner issues and verifies HMAC-signed session tokens. There is no
// session table; tokens survive restarts and work across replicas.
type TokenSigner struct {
	secret   []byte
	duration time.Duration
}

// NewTokenSigner creates a token signer with the given HMAC secret
func NewTokenSigner(secret string, duration time.Duration) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), duration: duration}
}

// Issue signs a session token for a group
func (s *TokenSigner) Issue(groupID int64) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.duration)
	claims := SessionClaims{
		GroupID: groupID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses a session token and returns its claims
func (s *TokenSigner) Verify(tokenString string) (*SessionClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
