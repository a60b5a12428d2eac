// Package auth, as part of the authentication module.
// This file, `response.go`, holds the response helpers every handler in the
// service uses, so that errors come out in exactly one JSON shape.
package auth

import (
	"encoding/json"
	"net/http"

	// `apperror` provides standardized error types and responses.
	"github.com/user/studentsvc/apperror"
)

// WriteJSON serializes `data` to JSON and writes it to the `http.ResponseWriter` with the given `status`.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Check if data is nil to avoid writing "null" as the response body if no data is intended.
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already out; nothing useful left to tell the client.
			return
		}
	}
}

// WriteError uses the apperror system to write standardized error responses.
// This function converts any error into a standardized `apperror.ErrorResponse`.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	// `apperror.FromError` attempts to convert the given `err` into an `*apperror.AppError`.
	appErr, ok := apperror.FromError(err)
	if !ok {
		// If the error is not already an `*apperror.AppError` (e.g., it's a standard Go error),
		// wrap it in a generic `InternalError`. The cause stays out of the response body.
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
