package entity

import (
	"time"
)

// Roles a user can hold. Role is assigned at creation and never mutated
// through the API surface.
const (
	RoleMember        = "member"
	RoleAdministrator = "administrator"
)

// User is the aggregate root for the identity store.
// Passwords are stored as bcrypt hashes in PasswordHash.
// Points is the user's spendable balance; it is mutated only by the
// redemption engine and is never negative.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Points       int64
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdministrator reports whether the user may operate the approval gate.
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

// CanAfford reports whether the balance covers the given price.
func (u *User) CanAfford(price int64) bool {
	return u.Points >= price
}
