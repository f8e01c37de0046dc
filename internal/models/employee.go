package models

import "time"

// Employee roles
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)

type Employee struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Username          string     `json:"username,omitempty"`
	PasswordHash      string     `json:"-"` // "saltHex:hashHex"
	Phone             string     `json:"phone"`
	Role              string     `json:"role"`
	IsActive          bool       `json:"isActive"`
	Language          string     `json:"language"` // "es" or "en"
	LocationID        *int       `json:"locationId"`
	CompletedServices int        `json:"completedServices"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// EmployeeSummary is the subset of employee fields joined into entries.
type EmployeeSummary struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	IsActive   bool   `json:"isActive"`
	LocationID *int   `json:"locationId"`
}

// Summary projects the joined subset used by entry enrichment.
func (e *Employee) Summary() *EmployeeSummary {
	return &EmployeeSummary{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Role:       e.Role,
		IsActive:   e.IsActive,
		LocationID: e.LocationID,
	}
}

type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	IsActive   *bool  `json:"isActive"`
	LocationID *int   `json:"locationId"`
}

// UpdateEmployeeRequest carries partial updates; nil means "leave unchanged".
// A non-empty Password triggers a rehash; LocationID zero clears the link.
type UpdateEmployeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	Phone      *string `json:"phone"`
	Role       *string `json:"role"`
	Language   *string `json:"language"`
	IsActive   *bool   `json:"isActive"`
	LocationID *int    `json:"locationId"`
}
