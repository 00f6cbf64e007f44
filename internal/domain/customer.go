package domain

import "errors"

// Customer is an account in the users file. Admins share the same record shape.
type Customer struct {
	ID           string
	Name         string
	PasswordHash string
	Role         Role
	Address      string
	Mobile       string
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin manages customers, entries, payments and rates
	RoleAdmin Role = "admin"

	// RoleCustomer can only read its own entries, payments and statement
	RoleCustomer Role = "customer"
)

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// CanView reports whether a user with this role may read data belonging to customerID.
func (r Role) CanView(userID, customerID string) bool {
	return r == RoleAdmin || (r == RoleCustomer && userID == customerID)
}

// CustomerPatch carries editable customer fields. Empty Address or Mobile keep
// the current value.
type CustomerPatch struct {
	Name         string
	PasswordHash string
	Address      string
	Mobile       string
}

// Update returns a copy of c with the patch applied.
func (c Customer) Update(p CustomerPatch) Customer {
	out := c
	out.Name = p.Name
	if p.PasswordHash != "" {
		out.PasswordHash = p.PasswordHash
	}
	if p.Address != "" {
		out.Address = p.Address
	}
	if p.Mobile != "" {
		out.Mobile = p.Mobile
	}
	return out
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("insufficient role for this operation")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
