package domain

import "time"

// Role is the capability group a user belongs to.
type Role string

const (
	RoleBorrower      Role = "borrower"
	RoleProvider      Role = "provider"
	RoleBankPersonnel Role = "bank_personnel"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleBorrower, RoleProvider, RoleBankPersonnel:
		return true
	}
	return false
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string    `json:"userID"` // Primary Key (e.g., UUID)
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	IsAdmin      bool      `json:"isAdmin"`
	PasswordHash *string   `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal returns the resolved identity the core works with.
func (u User) Principal() Principal {
	return Principal{UserID: u.UserID, Role: u.Role, IsAdmin: u.IsAdmin}
}

// Principal is a caller whose role has already been resolved by the boundary layer.
type Principal struct {
	UserID  string
	Role    Role
	IsAdmin bool
}

// CanReview reports whether the principal may approve or reject applications.
func (p Principal) CanReview() bool {
	return p.IsAdmin || p.Role == RoleBankPersonnel
}
