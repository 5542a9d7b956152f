package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                 int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email              string     `json:"email" db:"email" example:"user@escuela.edu.ar"`           // User's email address
	Password           string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	FirstName          string     `json:"firstName" db:"first_name" example:"Ana"`                  // User's first name
	LastName           string     `json:"lastName" db:"last_name" example:"Garcia"`                 // User's last name
	DNI                string     `json:"dni" db:"dni" example:"28456789"`                          // National identity document, unique
	Role               RoleType   `json:"role" db:"role" example:"STUDENT"`                         // User's role (ADMIN, STUDENT or GUEST)
	IsActive           bool       `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	MustChangePassword bool       `json:"mustChangePassword" db:"must_change_password"`             // Forces a password change on next login
	FailedAttempts     int        `json:"-" db:"failed_attempts"`                                   // Consecutive failed login attempts
	LockedUntil        *time.Time `json:"-" db:"locked_until"`                                      // Account lockout deadline (nullable)
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last successful login (nullable)
	LastLoginIP        *string    `json:"-" db:"last_login_ip"`                                     // Source IP of the last successful login (nullable)
	CreatedAt          time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// FullName returns "First Last", falling back to the email when names are empty.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsLocked reports whether the account lockout deadline is still in the future.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
