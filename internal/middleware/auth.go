// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/agritrack/backend/internal/core"
)

type contextKey string

const (
	AccountIDKey    contextKey = "account_id"
	AccountEmailKey contextKey = "account_email"
	ClaimsKey       contextKey = "jwt_claims"
)

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

type AccessTokenClaims struct {
	AccountID string
	Email     string
}

// Authenticator gates protected routes on a valid bearer access token.
// A missing token is a 401; an expired or invalid one is a 403 before
// the handler runs.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, AccountIDKey, claims.AccountID)
			ctx = context.WithValue(ctx, AccountEmailKey, claims.Email)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.AccessTokenExpiredError())
	default:
		core.JSONError(w, core.AccessTokenInvalidError())
	}
}

func GetAccountID(ctx context.Context) string {
	if id, ok := ctx.Value(AccountIDKey).(string); ok {
		return id
	}
	return ""
}

func GetAccountEmail(ctx context.Context) string {
	if email, ok := ctx.Value(AccountEmailKey).(string); ok {
		return email
	}
	return ""
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}

func IsAuthenticated(ctx context.Context) bool {
	return GetAccountID(ctx) != ""
}
