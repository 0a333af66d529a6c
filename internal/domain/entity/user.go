package entity

import "time"

// User roles.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User represents an account able to run onboarding for its company.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string // owner | manager | staff
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
