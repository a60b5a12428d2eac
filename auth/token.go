// Package auth, as part of the authentication module.
// This file, `token.go`, mints and validates the signed credentials callers
// present on every `/students` request.
package auth

import (
	"errors"
	"fmt"
	"time"

	// `jwt` library for JWT parsing and validation.
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/user/studentsvc/apperror"
	"github.com/user/studentsvc/config"
)

// Claims represents the JWT claims.
// It embeds `jwt.RegisteredClaims` for standard claims (like `exp`, `iat`) and adds the user id.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 tokens with the configured secret.
type TokenService struct {
	secret   []byte
	duration time.Duration
	// now is swappable so tests can pin the clock.
	now func() time.Time
}

// NewTokenService creates a TokenService from the auth configuration.
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.Secret),
		duration: cfg.TokenDuration,
		now:      time.Now,
	}
}

// Issue mints a token for userID valid for the configured duration.
func (s *TokenService) Issue(userID int64) (string, time.Time, error) {
	return s.IssueFor(userID, s.duration)
}

// IssueFor mints a token for userID valid for ttl.
func (s *TokenService) IssueFor(userID int64, ttl time.Duration) (string, time.Time, error) {
	if userID <= 0 {
		return "", time.Time{}, apperror.NewBadRequestError(fmt.Sprintf("user id must be positive, got %d", userID), nil)
	}

	now := s.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperror.NewInternalError("failed to sign token", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates tokenString and returns the caller's identity.
// Every failure is an AuthError.
func (s *TokenService) Verify(tokenString string) (UserContext, error) {
	if tokenString == "" {
		return UserContext{}, apperror.NewAuthError("missing credential", nil)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		// Handle specific JWT parsing errors.
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return UserContext{}, apperror.NewAuthError("token has expired", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return UserContext{}, apperror.NewAuthError("invalid token signature", err)
		default:
			return UserContext{}, apperror.NewAuthError("invalid token", err)
		}
	}

	if !token.Valid {
		return UserContext{}, apperror.NewAuthError("invalid token", nil)
	}

	// Validate custom claims: a token must identify somebody.
	if claims.UserID <= 0 {
		return UserContext{}, apperror.NewAuthError("invalid token: user_id claim is missing or invalid", nil)
	}

	return UserContext{UserID: claims.UserID, TokenID: claims.ID}, nil
}
