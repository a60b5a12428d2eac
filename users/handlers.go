// Package users exposes who the caller is, as seen by the auth filter.
// Records are not scoped per user, so this is the only place a client can
// check which identity its credential carries.
package users

import (
	"net/http"
	"time"

	// `apperror` provides standardized error types and responses.
	"github.com/user/studentsvc/apperror"
	// `auth` package provides authentication utilities, like extracting the user from context.
	"github.com/user/studentsvc/auth"
)

// UserHandlers provides HTTP handlers for the caller identity.
type UserHandlers struct {
	now func() time.Time
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers() *UserHandlers {
	return &UserHandlers{now: time.Now}
}

// HandleGetMe godoc
// @Summary Get the current caller
// @Description Returns the identity carried by the presented credential.
// @Tags users
// @Produce json
// @Security TokenAuth
// @Success 200 {object} MeResponse "The authenticated identity"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /users/me [get]
func (h *UserHandlers) HandleGetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// `auth.UserFromContext` retrieves the identity set by the authentication middleware.
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("User not found in context, middleware issue?", nil))
			return
		}

		auth.WriteJSON(w, http.StatusOK, MeResponse{
			UserID:          user.UserID,
			TokenID:         user.TokenID,
			AuthenticatedAt: h.now().UTC(),
		})
	}
}
