package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/studentsvc/apperror"
	"github.com/user/studentsvc/config"
)

const testSecret = "0123456789abcdef-test-secret"

func newTestTokens(t *testing.T) *TokenService {
	t.Helper()
	return NewTokenService(config.AuthConfig{Secret: testSecret, TokenDuration: time.Hour})
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := newTestTokens(t)

	raw, expiresAt, err := tokens.Issue(123)
	require.NoError(t, err)
	assert.Len(t, strings.Split(raw, "."), 3)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	user, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(123), user.UserID)
	assert.NotEmpty(t, user.TokenID)
}

func TestTokenService_IssueRejectsNonPositiveUser(t *testing.T) {
	tokens := newTestTokens(t)

	_, _, err := tokens.Issue(0)
	require.Error(t, err)
	assert.True(t, apperror.IsBadRequest(err))
}

func TestTokenService_VerifyRejections(t *testing.T) {
	tokens := newTestTokens(t)

	other := NewTokenService(config.AuthConfig{Secret: "another-secret-of-enough-length", TokenDuration: time.Hour})
	foreign, _, err := other.Issue(1)
	require.NoError(t, err)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	noUserRaw, err := noUser.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 5})
	noExpRaw, err := noExp.SignedString([]byte(testSecret))
	require.NoError(t, err)

	wrongAlg := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:           5,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	wrongAlgRaw, err := wrongAlg.SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-valid-jwt"},
		{"legacy client placeholder", "123.exp.signature"},
		{"foreign signature", foreign},
		{"missing user id", noUserRaw},
		{"missing expiry", noExpRaw},
		{"wrong algorithm", wrongAlgRaw},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tokens.Verify(tc.token)
			require.Error(t, err)
			assert.True(t, apperror.IsAuthError(err), "got %v", err)
		})
	}
}

func TestTokenService_VerifyExpired(t *testing.T) {
	tokens := newTestTokens(t)
	issuedAt := time.Now().Add(-2 * time.Hour)
	tokens.now = func() time.Time { return issuedAt }

	raw, _, err := tokens.Issue(9)
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Verify(raw)
	require.Error(t, err)

	ae, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.AuthError, ae.Type)
	assert.Equal(t, "token has expired", ae.Message)
}
