package domain

import "time"

type UserRole string

const (
	RoleCustomer  UserRole = "customer"
	RoleCaregiver UserRole = "caregiver"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CaregiverProfile extends a user with caregiver-specific data. Only
// verified profiles appear in the directory and receive emergency alerts.
type CaregiverProfile struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Bio             string     `json:"bio,omitempty"`
	Specialty       string     `json:"specialty,omitempty"`
	HourlyRateCents int64      `json:"hourly_rate_cents"`
	Verified        bool       `json:"verified"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`

	User *User `json:"user,omitempty"`
}
