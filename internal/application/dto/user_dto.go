package dto

import "time"

// RegisterRequest input to create a user.
type RegisterRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"name"`
	Role      string `json:"role"` // owner | manager | staff
}

// LoginRequest input for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse user output.
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token plus user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateCompanyRequest input to create a company.
type CreateCompanyRequest struct {
	Name      string `json:"name" validate:"required"`
	CRNumber  string `json:"cr_number"`
	VATNumber string `json:"vat_number"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// CompanyResponse company output.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CRNumber  string    `json:"cr_number"`
	VATNumber string    `json:"vat_number"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
