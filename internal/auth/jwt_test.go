// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrack/backend/internal/config"
	"github.com/agritrack/backend/internal/core"
)

func newTestJWTManager(t *testing.T, cfg config.JWTConfig) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	cfg.PrivateKeyPath = filepath.Join(dir, "private.pem")
	cfg.PublicKeyPath = filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath))

	manager, err := NewJWTManager(cfg)
	require.NoError(t, err)
	return manager
}

func defaultJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 720 * time.Hour,
		Issuer:             "agritrack",
		Audience:           "agritrack-api",
	}
}

func testAccount() *AccountInfo {
	return &AccountInfo{
		ID:    "7f9c24e5-1a2b-4c3d-8e9f-0a1b2c3d4e5f",
		Email: "ade@farm.ng",
	}
}

func TestGenerateKeyPair(t *testing.T) {
	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	privatePEM, err := os.ReadFile(privatePath)
	require.NoError(t, err)
	assert.Contains(t, string(privatePEM), "PRIVATE KEY")

	publicPEM, err := os.ReadFile(publicPath)
	require.NoError(t, err)
	assert.Contains(t, string(publicPEM), "PUBLIC KEY")
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestJWTManager(t, defaultJWTConfig())
	account := testAccount()

	token, err := manager.CreateAccessToken(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, account.ID, claims.AccountID)
	assert.Equal(t, account.Email, claims.Email)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	manager := newTestJWTManager(t, defaultJWTConfig())
	account := testAccount()

	token, err := manager.CreateRefreshToken(account)
	require.NoError(t, err)

	subject, err := manager.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, subject)
}

func TestTokenTypeMismatch(t *testing.T) {
	manager := newTestJWTManager(t, defaultJWTConfig())
	account := testAccount()

	accessToken, err := manager.CreateAccessToken(account)
	require.NoError(t, err)

	refreshToken, err := manager.CreateRefreshToken(account)
	require.NoError(t, err)

	// An access token is not accepted where a refresh token is expected,
	// and vice versa.
	_, err = manager.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	_, err = manager.VerifyAccessToken(context.Background(), refreshToken)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestExpiredTokenIsDistinguishable(t *testing.T) {
	cfg := defaultJWTConfig()
	cfg.AccessTokenExpire = -time.Minute
	cfg.RefreshTokenExpire = -time.Minute
	manager := newTestJWTManager(t, cfg)
	account := testAccount()

	accessToken, err := manager.CreateAccessToken(account)
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), accessToken)
	assert.ErrorIs(t, err, core.ErrTokenExpired)

	refreshToken, err := manager.CreateRefreshToken(account)
	require.NoError(t, err)

	_, err = manager.VerifyRefreshToken(refreshToken)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
	assert.NotErrorIs(t, err, core.ErrTokenInvalid)
}

func TestMalformedTokenIsInvalid(t *testing.T) {
	manager := newTestJWTManager(t, defaultJWTConfig())

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"truncated jwt", "eyJhbGciOiJFUzI1NiJ9.eyJzdWIiOiJ4In0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.VerifyRefreshToken(tt.token)
			assert.ErrorIs(t, err, core.ErrTokenInvalid)
		})
	}
}

func TestTokenFromDifferentKeyRejected(t *testing.T) {
	manager := newTestJWTManager(t, defaultJWTConfig())
	other := newTestJWTManager(t, defaultJWTConfig())

	token, err := other.CreateRefreshToken(testAccount())
	require.NoError(t, err)

	_, err = manager.VerifyRefreshToken(token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestTokenIssuerMismatch(t *testing.T) {
	manager := newTestJWTManager(t, defaultJWTConfig())
	account := testAccount()

	token, err := manager.CreateRefreshToken(account)
	require.NoError(t, err)

	otherCfg := defaultJWTConfig()
	otherCfg.Issuer = "someone-else"
	otherCfg.PrivateKeyPath = manager.config.PrivateKeyPath
	otherCfg.PublicKeyPath = manager.config.PublicKeyPath

	other, err := NewJWTManager(otherCfg)
	require.NoError(t, err)

	_, err = other.VerifyRefreshToken(token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWKSHandler(t *testing.T) {
	manager := newTestJWTManager(t, defaultJWTConfig())

	req := httptest.NewRequest("GET", "/.well-known/jwks.json", nil)
	rec := httptest.NewRecorder()

	manager.GetJWKSHandler()(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Keys, 1)

	key := body.Keys[0]
	assert.Equal(t, "EC", key["kty"])
	assert.Equal(t, "sig", key["use"])
	assert.Equal(t, manager.GetKeyID(), key["kid"])
	// The private component must never appear in the published set.
	assert.NotContains(t, key, "d")
}

func TestGetKeyID(t *testing.T) {
	manager := newTestJWTManager(t, defaultJWTConfig())
	assert.Len(t, manager.GetKeyID(), 8)
}
