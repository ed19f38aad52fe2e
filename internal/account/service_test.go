// AngelaMos | 2026
// service_test.go

package account

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrack/backend/internal/auth"
	"github.com/agritrack/backend/internal/core"
)

type fakeRepository struct {
	accounts map[string]*Account
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{accounts: make(map[string]*Account)}
}

func (f *fakeRepository) Create(_ context.Context, account *Account) error {
	if !core.IsPasswordHash(account.PasswordHash) {
		return fmt.Errorf("create account: %w", core.ErrInvalidInput)
	}
	for _, existing := range f.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return fmt.Errorf("create account: %w", core.ErrDuplicateKey)
		}
	}
	account.IsActive = true
	account.CreatedAt = time.Now()
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	copied := *account
	return &copied, nil
}

func (f *fakeRepository) GetByEmail(
	_ context.Context,
	email string,
) (*Account, error) {
	for _, account := range f.accounts {
		if strings.EqualFold(account.Email, email) {
			copied := *account
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
}

func (f *fakeRepository) UpdateProfile(
	_ context.Context,
	account *Account,
) error {
	stored, ok := f.accounts[account.ID]
	if !ok {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	stored.FirstName = account.FirstName
	stored.LastName = account.LastName
	stored.FarmName = account.FarmName
	stored.FarmLocation = account.FarmLocation
	stored.FarmSize = account.FarmSize
	stored.ProfilePicture = account.ProfilePicture
	return nil
}

func (f *fakeRepository) UpdatePassword(
	_ context.Context,
	id, passwordHash string,
) error {
	if !core.IsPasswordHash(passwordHash) {
		return fmt.Errorf("update password: %w", core.ErrInvalidInput)
	}
	stored, ok := f.accounts[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	stored.PasswordHash = passwordHash
	return nil
}

func (f *fakeRepository) SetRefreshTokenHash(
	_ context.Context,
	id, tokenHash string,
) error {
	stored, ok := f.accounts[id]
	if !ok {
		return fmt.Errorf("set refresh token: %w", core.ErrNotFound)
	}
	if tokenHash == "" {
		stored.RefreshTokenHash = nil
	} else {
		stored.RefreshTokenHash = &tokenHash
	}
	return nil
}

func (f *fakeRepository) TouchLastLogin(
	_ context.Context,
	id string,
) (time.Time, error) {
	stored, ok := f.accounts[id]
	if !ok {
		return time.Time{}, fmt.Errorf("touch last login: %w", core.ErrNotFound)
	}
	stored.LastLoginAt = time.Now()
	return stored.LastLoginAt, nil
}

func (f *fakeRepository) ExistsByEmail(
	_ context.Context,
	email string,
) (bool, error) {
	for _, account := range f.accounts {
		if strings.EqualFold(account.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func seedAccount(t *testing.T, svc *Service) *auth.AccountInfo {
	t.Helper()

	info, err := svc.Create(context.Background(), auth.CreateAccountParams{
		Email:     "ade@farm.ng",
		Password:  "secret1",
		FirstName: "Ade",
		LastName:  "Balogun",
		State:     "Lagos",
	})
	require.NoError(t, err)
	return info
}

func TestServiceCreate(t *testing.T) {
	svc := NewService(newFakeRepository())

	info, err := svc.Create(context.Background(), auth.CreateAccountParams{
		Email:        "Ade@Farm.NG",
		Password:     "secret1",
		FirstName:    "Ade",
		LastName:     "Balogun",
		FarmName:     "Green Acres",
		FarmLocation: "Ikorodu",
		FarmSize:     "5 hectares",
		State:        "Lagos",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, info.ID)
	assert.Equal(t, "ade@farm.ng", info.Email)
	assert.Equal(t, "Green Acres", info.FarmName)
	assert.Equal(t, "Lagos", info.State)
	assert.True(t, info.IsActive)
}

func TestServiceCreateStoresHashNotPassword(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	info := seedAccount(t, svc)

	stored, err := repo.GetByID(context.Background(), info.ID)
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, core.IsPasswordHash(stored.PasswordHash))
}

func TestServiceCreateValidation(t *testing.T) {
	base := auth.CreateAccountParams{
		Email:     "ade@farm.ng",
		Password:  "secret1",
		FirstName: "Ade",
		LastName:  "Balogun",
		State:     "Lagos",
	}

	tests := []struct {
		name    string
		mutate  func(*auth.CreateAccountParams)
		message string
	}{
		{
			name:    "missing email",
			mutate:  func(p *auth.CreateAccountParams) { p.Email = "" },
			message: "Email is required",
		},
		{
			name:    "missing password",
			mutate:  func(p *auth.CreateAccountParams) { p.Password = "" },
			message: "Password is required",
		},
		{
			name:    "missing first name",
			mutate:  func(p *auth.CreateAccountParams) { p.FirstName = "" },
			message: "First name is required",
		},
		{
			name:    "missing last name",
			mutate:  func(p *auth.CreateAccountParams) { p.LastName = "" },
			message: "Last name is required",
		},
		{
			name:    "missing state",
			mutate:  func(p *auth.CreateAccountParams) { p.State = "" },
			message: "State is required",
		},
		{
			name:   "unsupported state",
			mutate: func(p *auth.CreateAccountParams) { p.State = "Kano" },
			message: "Invalid state. Must be one of the southwestern " +
				"Nigerian states.",
		},
		{
			name:   "state is case sensitive",
			mutate: func(p *auth.CreateAccountParams) { p.State = "lagos" },
			message: "Invalid state. Must be one of the southwestern " +
				"Nigerian states.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepository())

			params := base
			tt.mutate(&params)

			_, err := svc.Create(context.Background(), params)
			require.Error(t, err)

			var appErr *core.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestServiceCreateDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepository())
	seedAccount(t, svc)

	_, err := svc.Create(context.Background(), auth.CreateAccountParams{
		Email:     "ADE@farm.ng",
		Password:  "another1",
		FirstName: "Other",
		LastName:  "Person",
		State:     "Ogun",
	})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestServiceAuthenticate(t *testing.T) {
	svc := NewService(newFakeRepository())
	seedAccount(t, svc)

	info, err := svc.Authenticate(context.Background(), "ade@farm.ng", "secret1")
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "ade@farm.ng", info.Email)
	assert.False(t, info.LastLoginAt.IsZero())
}

func TestServiceAuthenticateFailuresIndistinguishable(t *testing.T) {
	svc := NewService(newFakeRepository())
	seedAccount(t, svc)

	// Unknown email and wrong password both come back (nil, nil).
	info, err := svc.Authenticate(
		context.Background(),
		"nobody@farm.ng",
		"secret1",
	)
	require.NoError(t, err)
	assert.Nil(t, info)

	info, err = svc.Authenticate(context.Background(), "ade@farm.ng", "wrong")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestServiceAuthenticateMissingCredentials(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Authenticate(context.Background(), "", "secret1")
	require.Error(t, err)

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Email and password are required", appErr.Message)

	_, err = svc.Authenticate(context.Background(), "ade@farm.ng", "")
	assert.Error(t, err)
}

func TestServiceUpdateProfile(t *testing.T) {
	svc := NewService(newFakeRepository())
	info := seedAccount(t, svc)

	farmName := "Sunrise Farms"
	farmSize := "12 hectares"

	updated, err := svc.UpdateProfile(context.Background(), info.ID,
		UpdateProfileRequest{
			FirstName: "Adewale",
			LastName:  "Balogun",
			FarmName:  &farmName,
			FarmSize:  &farmSize,
		})
	require.NoError(t, err)

	assert.Equal(t, "Adewale", updated.FirstName)
	assert.Equal(t, "Sunrise Farms", updated.FarmName)
	assert.Equal(t, "12 hectares", updated.FarmSize)
	// Omitted optional fields keep their stored values.
	assert.Equal(t, "", updated.FarmLocation)
	assert.Equal(t, "Lagos", updated.State)
}

func TestServiceUpdateProfileNotFound(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.UpdateProfile(context.Background(), "missing",
		UpdateProfileRequest{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestServiceSetPassword(t *testing.T) {
	svc := NewService(newFakeRepository())
	info := seedAccount(t, svc)

	require.NoError(
		t,
		svc.SetPassword(context.Background(), info.ID, "newsecret"),
	)

	got, err := svc.Authenticate(
		context.Background(),
		"ade@farm.ng",
		"newsecret",
	)
	require.NoError(t, err)
	assert.NotNil(t, got)

	old, err := svc.Authenticate(context.Background(), "ade@farm.ng", "secret1")
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestServiceSetPasswordEmpty(t *testing.T) {
	svc := NewService(newFakeRepository())
	info := seedAccount(t, svc)

	err := svc.SetPassword(context.Background(), info.ID, "")
	require.Error(t, err)

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Password is required", appErr.Message)
}

func TestServiceGetProfile(t *testing.T) {
	svc := NewService(newFakeRepository())
	info := seedAccount(t, svc)

	profile, err := svc.GetProfile(context.Background(), info.ID)
	require.NoError(t, err)
	assert.Equal(t, info.ID, profile.ID)

	_, err = svc.GetProfile(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	_, err = svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestValidState(t *testing.T) {
	for _, state := range States {
		assert.True(t, ValidState(state))
	}
	assert.False(t, ValidState("Kano"))
	assert.False(t, ValidState("lagos"))
	assert.False(t, ValidState(""))
}
