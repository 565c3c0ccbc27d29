package models

import (
	"time"
)

// Roles a user can hold. Exactly one role per account; admins come from
// the seeder, never from registration.
const (
	RoleBuyer   = "buyer"
	RoleArtisan = "artisan"
	RoleAdmin   = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Login
	Username string `gorm:"unique;not null;size:50" json:"username"`
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	FullName string `gorm:"size:100" json:"full_name"`
	Phone    string `gorm:"size:15" json:"phone"`

	Role string `gorm:"not null;size:20;index" json:"role"` // buyer, artisan, admin

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRegistrationRole reports whether a role may be chosen at signup.
func ValidRegistrationRole(role string) bool {
	return role == RoleBuyer || role == RoleArtisan
}
