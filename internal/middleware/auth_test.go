// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrack/backend/internal/core"
)

type fakeVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (f *fakeVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	return f.claims, f.err
}

func newAuthTestHandler(
	verifier TokenVerifier,
) (http.Handler, *AccessTokenClaims) {
	captured := &AccessTokenClaims{}

	handler := Authenticator(verifier)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			captured.AccountID = GetAccountID(r.Context())
			captured.Email = GetAccountEmail(r.Context())
			w.WriteHeader(http.StatusOK)
		},
	))

	return handler, captured
}

func TestAuthenticatorValidToken(t *testing.T) {
	verifier := &fakeVerifier{
		claims: &AccessTokenClaims{AccountID: "account-1", Email: "ade@farm.ng"},
	}
	handler, captured := newAuthTestHandler(verifier)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer some.valid.token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "account-1", captured.AccountID)
	assert.Equal(t, "ade@farm.ng", captured.Email)
}

func TestAuthenticatorMissingToken(t *testing.T) {
	handler, _ := newAuthTestHandler(&fakeVerifier{})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"bare token", "some.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthenticatorExpiredToken(t *testing.T) {
	handler, _ := newAuthTestHandler(&fakeVerifier{err: core.ErrTokenExpired})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired.token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	handler, _ := newAuthTestHandler(&fakeVerifier{err: core.ErrTokenInvalid})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi"},
		{"empty", "", ""},
		{"no scheme", "abc.def.ghi", ""},
		{"wrong scheme", "Basic abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(req))
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetAccountID(ctx))
	assert.Empty(t, GetAccountEmail(ctx))
	assert.Nil(t, GetClaims(ctx))
	assert.False(t, IsAuthenticated(ctx))

	claims := &AccessTokenClaims{AccountID: "account-1", Email: "ade@farm.ng"}
	ctx = context.WithValue(ctx, AccountIDKey, claims.AccountID)
	ctx = context.WithValue(ctx, AccountEmailKey, claims.Email)
	ctx = context.WithValue(ctx, ClaimsKey, claims)

	assert.Equal(t, "account-1", GetAccountID(ctx))
	assert.Equal(t, "ade@farm.ng", GetAccountEmail(ctx))
	assert.Equal(t, claims, GetClaims(ctx))
	assert.True(t, IsAuthenticated(ctx))
}
