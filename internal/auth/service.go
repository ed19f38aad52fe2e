// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agritrack/backend/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type AccountInfo struct {
	ID               string
	Email            string
	FirstName        string
	LastName         string
	FarmName         string
	FarmLocation     string
	FarmSize         string
	State            string
	ProfilePicture   string
	RefreshTokenHash string
	IsActive         bool
	CreatedAt        time.Time
	LastLoginAt      time.Time
}

type CreateAccountParams struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	FarmName     string
	FarmLocation string
	FarmSize     string
	State        string
}

// AccountProvider is the credential service surface the session layer
// depends on. Authenticate returns (nil, nil) for both an unknown email
// and a wrong password — the two cases must stay indistinguishable to
// callers.
type AccountProvider interface {
	Authenticate(ctx context.Context, email, password string) (*AccountInfo, error)
	Create(ctx context.Context, params CreateAccountParams) (*AccountInfo, error)
	GetByID(ctx context.Context, id string) (*AccountInfo, error)
	GetByEmail(ctx context.Context, email string) (*AccountInfo, error)
	SetRefreshTokenHash(ctx context.Context, id, tokenHash string) error
}

type Service struct {
	provider AccountProvider
	jwt      *JWTManager
}

func NewService(provider AccountProvider, jwt *JWTManager) *Service {
	return &Service{
		provider: provider,
		jwt:      jwt,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	account, err := s.provider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if account == nil {
		return nil, ErrInvalidCredentials
	}

	return s.createAuthResponse(ctx, account)
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	account, err := s.provider.Create(ctx, CreateAccountParams{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		FarmName:     req.FarmName,
		FarmLocation: req.FarmLocation,
		FarmSize:     req.FarmSize,
		State:        req.State,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return s.createAuthResponse(ctx, account)
}

// Logout clears the stored refresh token for the account, if any. A
// nonexistent or already-logged-out account is not an error.
func (s *Service) Logout(ctx context.Context, email string) error {
	account, err := s.provider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get account: %w", err)
	}

	if err := s.provider.SetRefreshTokenHash(ctx, account.ID, ""); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("clear refresh token: %w", err)
	}

	return nil
}

// Refresh exchanges a valid refresh token for a new pair. The presented
// token must hash to the value stored on the account; any previously
// issued token was invalidated by the last rotation.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken string,
) (*RefreshResponse, error) {
	accountID, err := s.jwt.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	account, err := s.provider.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	if account.RefreshTokenHash == "" ||
		!core.CompareTokenHash(refreshToken, account.RefreshTokenHash) {
		return nil, fmt.Errorf("refresh: stale token: %w", core.ErrTokenInvalid)
	}

	resp, err := s.createAuthResponse(ctx, account)
	if err != nil {
		return nil, err
	}

	return &RefreshResponse{
		Success: true,
		Data: TokenPair{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
		},
	}, nil
}

func (s *Service) CurrentUser(
	ctx context.Context,
	accountID string,
) (*AccountResponse, error) {
	account, err := s.provider.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	resp := toAccountResponse(account)
	return &resp, nil
}

func (s *Service) createAuthResponse(
	ctx context.Context,
	account *AccountInfo,
) (*AuthResponse, error) {
	accessToken, err := s.jwt.CreateAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshToken, err := s.jwt.CreateRefreshToken(account)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	// Rotation point: storing the new hash invalidates every refresh
	// token issued before this one.
	tokenHash := core.HashToken(refreshToken)
	if err := s.provider.SetRefreshTokenHash(ctx, account.ID, tokenHash); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &AuthResponse{
		AccountResponse: toAccountResponse(account),
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
	}, nil
}
