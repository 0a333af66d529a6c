package entity

import "time"

// Company represents a merchant company (tenant). Every store, zone and user
// belongs to exactly one company.
type Company struct {
	ID        string
	Name      string
	CRNumber  string // commercial registration
	VATNumber string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
