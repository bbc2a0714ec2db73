package domain

import "strings"

// Role is the closed set of actor roles.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole trims and lower-cases raw before matching it against the known roles.
func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleCustomer, RoleAdmin:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Emails are stored and looked up in this form.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func (r Role) IsAdmin() bool    { return r == RoleAdmin }
func (r Role) IsCustomer() bool { return r == RoleCustomer }

// User models a registered shop account. PasswordHash never leaves the process.
type User struct {
	ID           string `json:"_id"`
	Name         string `json:"name"  validate:"required,min=1,max=50"`
	Email        string `json:"email" validate:"required,email_pattern"`
	PasswordHash string `json:"-"     validate:"required"`
	Role         Role   `json:"role"  validate:"required,oneof=customer admin"`
}
