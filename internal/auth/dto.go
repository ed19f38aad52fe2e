// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisterRequest struct {
	Email        string `json:"email"     validate:"required,email,max=255"`
	Password     string `json:"password"  validate:"required,min=6,max=128"`
	FirstName    string `json:"firstName" validate:"required,min=1,max=100"`
	LastName     string `json:"lastName"  validate:"required,min=1,max=100"`
	State        string `json:"state"     validate:"required"`
	FarmName     string `json:"farmName,omitempty"     validate:"omitempty,max=255"`
	FarmLocation string `json:"farmLocation,omitempty" validate:"omitempty,max=255"`
	FarmSize     string `json:"farmSize,omitempty"     validate:"omitempty,max=255"`
}

type LogoutRequest struct {
	Email string `json:"email"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AccountResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	FarmName       string    `json:"farmName,omitempty"`
	FarmLocation   string    `json:"farmLocation,omitempty"`
	FarmSize       string    `json:"farmSize,omitempty"`
	State          string    `json:"state"`
	ProfilePicture string    `json:"profilePicture"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	LastLoginAt    time.Time `json:"lastLoginAt"`
}

// AuthResponse is the login/register body: public account fields plus
// the freshly issued token pair.
type AuthResponse struct {
	AccountResponse
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	Success bool      `json:"success"`
	Data    TokenPair `json:"data"`
}

func toAccountResponse(a *AccountInfo) AccountResponse {
	return AccountResponse{
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
}
