// AngelaMos | 2026
// service.go

package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agritrack/backend/internal/auth"
	"github.com/agritrack/backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new account. The password is hashed here; the
// repository refuses anything that is not an encoded hash.
func (s *Service) Create(
	ctx context.Context,
	params auth.CreateAccountParams,
) (*auth.AccountInfo, error) {
	if params.Email == "" {
		return nil, core.ValidationError("Email is required")
	}
	if params.Password == "" {
		return nil, core.ValidationError("Password is required")
	}
	if params.FirstName == "" {
		return nil, core.ValidationError("First name is required")
	}
	if params.LastName == "" {
		return nil, core.ValidationError("Last name is required")
	}
	if params.State == "" {
		return nil, core.ValidationError("State is required")
	}
	if !ValidState(params.State) {
		return nil, core.ValidationError(
			"Invalid state. Must be one of the southwestern Nigerian states.",
		)
	}

	hash, err := core.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &Account{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(params.Email),
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		FarmName:     params.FarmName,
		FarmLocation: params.FarmLocation,
		FarmSize:     params.FarmSize,
		State:        params.State,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	return toAccountInfo(account), nil
}

// Authenticate verifies credentials. An unknown email and a wrong
// password both return (nil, nil); callers must not distinguish them. A
// dummy verification runs on the unknown-email path so both failures
// cost the same.
func (s *Service) Authenticate(
	ctx context.Context,
	email, password string,
) (*auth.AccountInfo, error) {
	if email == "" || password == "" {
		return nil, core.ValidationError("Email and password are required")
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing equalization only
			_, _ = core.VerifyPasswordTimingSafe(password, nil)
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(password, &account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, nil
	}

	lastLogin, err := s.repo.TouchLastLogin(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	account.LastLoginAt = lastLogin

	return toAccountInfo(account), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.AccountInfo, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toAccountInfo(account), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.AccountInfo, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toAccountInfo(account), nil
}

func (s *Service) SetRefreshTokenHash(
	ctx context.Context,
	id, tokenHash string,
) error {
	return s.repo.SetRefreshTokenHash(ctx, id, tokenHash)
}

// UpdateProfile merges the given fields into the account and persists.
func (s *Service) UpdateProfile(
	ctx context.Context,
	id string,
	req UpdateProfileRequest,
) (*Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.FirstName = req.FirstName
	account.LastName = req.LastName
	if req.FarmName != nil {
		account.FarmName = *req.FarmName
	}
	if req.FarmLocation != nil {
		account.FarmLocation = *req.FarmLocation
	}
	if req.FarmSize != nil {
		account.FarmSize = *req.FarmSize
	}

	if err := s.repo.UpdateProfile(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *Service) SetPassword(
	ctx context.Context,
	id, password string,
) error {
	if password == "" {
		return core.ValidationError("Password is required")
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

func (s *Service) GetProfile(ctx context.Context, id string) (*Account, error) {
	if id == "" {
		return nil, fmt.Errorf("get profile: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, id)
}

func toAccountInfo(a *Account) *auth.AccountInfo {
	info := &auth.AccountInfo{
		ID:             a.ID,
		Email:          a.Email,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		FarmName:       a.FarmName,
		FarmLocation:   a.FarmLocation,
		FarmSize:       a.FarmSize,
		State:          a.State,
		ProfilePicture: a.ProfilePicture,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		LastLoginAt:    a.LastLoginAt,
	}

	if a.RefreshTokenHash != nil {
		info.RefreshTokenHash = *a.RefreshTokenHash
	}

	return info
}

var _ auth.AccountProvider = (*Service)(nil)
