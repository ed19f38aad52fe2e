// AngelaMos | 2026
// dto.go

package account

import (
	"time"
)

type UpdateProfileRequest struct {
	FirstName    string  `json:"firstName"    validate:"required,min=1,max=100"`
	LastName     string  `json:"lastName"     validate:"required,min=1,max=100"`
	FarmName     *string `json:"farmName,omitempty"     validate:"omitempty,max=255"`
	FarmLocation *string `json:"farmLocation,omitempty" validate:"omitempty,max=255"`
	FarmSize     *string `json:"farmSize,omitempty"     validate:"omitempty,max=255"`
}

// ProfileResponse is the serialized account. The password hash is never
// part of any response shape.
type ProfileResponse struct {
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

type GetProfileResponse struct {
	Profile ProfileResponse `json:"profile"`
}

type UpdateProfileResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Profile ProfileResponse `json:"profile"`
}

func ToProfileResponse(a *Account) ProfileResponse {
	return ProfileResponse{
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
