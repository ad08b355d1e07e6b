package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL applies when Issue is called without a positive ttl.
const DefaultTokenTTL = 15 * time.Minute

// ErrInvalidToken covers bad signatures, malformed input, and expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies HS256 bearer tokens signed with a shared secret.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	return &TokenService{secret: []byte(secret), now: time.Now}, nil
}

// WithClock replaces the time source used for expiry.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs claims with exp set to now+ttl. The caller's map is not modified.
func (s *TokenService) Issue(claims map[string]any, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	toEncode := make(jwt.MapClaims, len(claims)+1)
	for k, v := range claims {
		toEncode[k] = v
	}
	toEncode["exp"] = jwt.NewNumericDate(s.now().Add(ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, toEncode).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claims.
func (s *TokenService) Verify(token string) (map[string]any, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	claims := jwt.MapClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Subject extracts a non-empty "sub" claim.
func Subject(claims map[string]any) (string, bool) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
