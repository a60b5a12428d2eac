package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/studentsvc/auth"
)

func TestHandleGetMe(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h := &UserHandlers{now: func() time.Time { return fixed }}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req = req.WithContext(auth.NewContextWithUser(req.Context(), auth.UserContext{UserID: 9, TokenID: "abc"}))
	rec := httptest.NewRecorder()

	h.HandleGetMe().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, MeResponse{UserID: 9, TokenID: "abc", AuthenticatedAt: fixed}, got)
}

func TestHandleGetMe_NoUser(t *testing.T) {
	rec := httptest.NewRecorder()
	NewUserHandlers().HandleGetMe().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
