package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims issued to merchant and admin users.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	CompanyID uuid.UUID `json:"company_id"`
	Roles     []string  `json:"roles"`
}

// HasRole reports whether the claims carry role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// IsAdmin is shorthand for HasRole(RoleAdmin).
func (c Claims) IsAdmin() bool {
	return c.HasRole(RoleAdmin)
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
