package domain

import "time"

// Role enumerates the access tiers for CMS accounts.
type Role string

const (
	RoleUser   Role = "user"
	RoleExpert Role = "expert"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleExpert, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for accounts that read and manage
// conservation content. Accounts are never physically deleted;
// deactivation flips IsActive instead.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	FullName      string
	Role          Role
	EmailVerified bool
	IsActive      bool
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
