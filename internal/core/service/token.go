package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell/blog-system/internal/core/domain"
)

const mockTokenPrefix = "mock_jwt_token_"

// MockTokenIssuer produces the legacy opaque token format
// mock_jwt_token_<epoch-millis>.
type MockTokenIssuer struct{}

func (MockTokenIssuer) Issue(_ domain.User, now time.Time) (string, error) {
	return mockTokenPrefix + strconv.FormatInt(now.UnixMilli(), 10), nil
}

// JWTIssuer signs HS256 tokens carrying the user identity.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

func (j *JWTIssuer) Issue(user domain.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"jti":      strconv.FormatInt(now.UnixMilli(), 10),
		"iat":      now.Unix(),
		"exp":      now.Add(j.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(j.secret)
}

// Verify checks the signature and expiry of a token issued by j.
func (j *JWTIssuer) Verify(token string) error {
	tkn, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return j.secret, nil
	})
	if err != nil {
		return fmt.Errorf("verify token: %w", err)
	}
	if !tkn.Valid {
		return jwt.ErrTokenInvalidClaims
	}
	return nil
}
