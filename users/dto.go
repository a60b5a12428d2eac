// Package users, as part of the caller identity module.
// This file, `dto.go`, defines the response body of the identity endpoint.
package users

import "time"

// MeResponse describes the authenticated caller.
// @Description Identity carried by the presented credential
type MeResponse struct {
	// The user id from the token's `user_id` claim
	// example: 123
	UserID int64 `json:"user_id"`
	// The token id (`jti`), empty for tokens minted without one
	TokenID string `json:"token_id,omitempty"`
	// Server time when the request was authenticated
	AuthenticatedAt time.Time `json:"authenticated_at"`
}
