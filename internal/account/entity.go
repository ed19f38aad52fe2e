// AngelaMos | 2026
// entity.go

package account

import (
	"time"
)

type Account struct {
	ID               string    `db:"id"`
	Email            string    `db:"email"`
	PasswordHash     string    `db:"password_hash"`
	FirstName        string    `db:"first_name"`
	LastName         string    `db:"last_name"`
	FarmName         string    `db:"farm_name"`
	FarmLocation     string    `db:"farm_location"`
	FarmSize         string    `db:"farm_size"`
	State            string    `db:"state"`
	ProfilePicture   string    `db:"profile_picture"`
	RefreshTokenHash *string   `db:"refresh_token_hash"`
	IsActive         bool      `db:"is_active"`
	CreatedAt        time.Time `db:"created_at"`
	LastLoginAt      time.Time `db:"last_login_at"`
}

// States is the closed set of supported southwestern Nigerian states.
var States = []string{"Lagos", "Ogun", "Oyo", "Osun", "Ondo", "Ekiti"}

func ValidState(state string) bool {
	for _, s := range States {
		if s == state {
			return true
		}
	}
	return false
}
