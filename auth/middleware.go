// Package auth, as part of the authentication module.
// This file, `middleware.go`, is the auth filter sitting in front of every
// student route. A request either leaves it with a UserContext in its context
// or is answered with 401 right here, before any record store access.
// This is analogous to a Nest.js Guard that implements `CanActivate`.
package auth

import (
	"net/http"
	// `strings` for string manipulation (e.g., splitting the Authorization header).
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	// Internal packages for application errors and logging.
	"github.com/user/studentsvc/apperror"
	"github.com/user/studentsvc/logging"
)

// TokenHeader is the header the web client sends its credential in.
const TokenHeader = "X-Auth-Token"

// credentialFromRequest extracts the raw credential.
// `X-Auth-Token` wins; otherwise `Authorization: Bearer {token}` is accepted.
func credentialFromRequest(r *http.Request) (string, error) {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", apperror.NewAuthError("credential is missing", nil)
	}

	// The Authorization header should be in the format "Bearer {token}".
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", apperror.NewAuthError("Authorization header format must be Bearer {token}", nil)
	}
	return parts[1], nil
}

// Middleware creates the auth filter.
// The returned middleware conforms to the standard Go `func(next http.Handler) http.Handler` pattern.
func Middleware(tokens *TokenService, logger logging.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Nop{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user, err := authenticate(tokens, r)
			if err != nil {
				logger.Debug(ctx, "request rejected by auth filter",
					"request_id", middleware.GetReqID(ctx),
					"path", r.URL.Path,
					"error", err,
				)
				WriteError(w, r, err)
				return
			}

			// Call the next handler in the chain with the identity attached.
			next.ServeHTTP(w, r.WithContext(NewContextWithUser(ctx, user)))
		})
	}
}

func authenticate(tokens *TokenService, r *http.Request) (UserContext, error) {
	raw, err := credentialFromRequest(r)
	if err != nil {
		return UserContext{}, err
	}
	return tokens.Verify(raw)
}
