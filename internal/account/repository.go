// AngelaMos | 2026
// repository.go

package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agritrack/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	UpdateProfile(ctx context.Context, account *Account) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetRefreshTokenHash(ctx context.Context, id, tokenHash string) error
	TouchLastLogin(ctx context.Context, id string) (time.Time, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const accountColumns = `
	id, email, password_hash, first_name, last_name,
	farm_name, farm_location, farm_size, state, profile_picture,
	refresh_token_hash, is_active, created_at, last_login_at`

func (r *repository) Create(ctx context.Context, account *Account) error {
	if !core.IsPasswordHash(account.PasswordHash) {
		return fmt.Errorf(
			"create account: password is not hashed: %w",
			core.ErrInvalidInput,
		)
	}

	query := `
		INSERT INTO accounts (
			id, email, password_hash, first_name, last_name,
			farm_name, farm_location, farm_size, state, profile_picture
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, last_login_at, is_active`

	err := r.db.GetContext(ctx, account, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.FarmName,
		account.FarmLocation,
		account.FarmSize,
		account.State,
		account.ProfilePicture,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create account: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1`

	var account Account
	err := r.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &account, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE LOWER(email) = LOWER($1)`

	var account Account
	err := r.db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}

	return &account, nil
}

func (r *repository) UpdateProfile(
	ctx context.Context,
	account *Account,
) error {
	query := `
		UPDATE accounts
		SET first_name = $2, last_name = $3, farm_name = $4,
		    farm_location = $5, farm_size = $6, profile_picture = $7
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.FirstName,
		account.LastName,
		account.FarmName,
		account.FarmLocation,
		account.FarmSize,
		account.ProfilePicture,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	if !core.IsPasswordHash(passwordHash) {
		return fmt.Errorf(
			"update password: password is not hashed: %w",
			core.ErrInvalidInput,
		)
	}

	query := `
		UPDATE accounts
		SET password_hash = $2
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

// SetRefreshTokenHash rotates the stored refresh token in a single
// statement; concurrent logins cannot leave the column torn. An empty
// hash clears the session (logout).
func (r *repository) SetRefreshTokenHash(
	ctx context.Context,
	id, tokenHash string,
) error {
	query := `
		UPDATE accounts
		SET refresh_token_hash = NULLIF($2, '')
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, tokenHash)
	if err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set refresh token: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) TouchLastLogin(
	ctx context.Context,
	id string,
) (time.Time, error) {
	query := `
		UPDATE accounts
		SET last_login_at = NOW()
		WHERE id = $1
		RETURNING last_login_at`

	var lastLogin time.Time
	err := r.db.GetContext(ctx, &lastLogin, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("touch last login: %w", core.ErrNotFound)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("touch last login: %w", err)
	}

	return lastLogin, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1))`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
