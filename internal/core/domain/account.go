package domain

import (
	"strings"
	"time"
)

// Role is the closed set of privilege levels, ordered from least to most
// privileged: User < Admin < SuperAdmin.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
	RoleSuperAdmin
)

// String returns the canonical wire representation of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAdmin:
		return "Admin"
	case RoleSuperAdmin:
		return "SuperAdmin"
	default:
		return "Unknown"
	}
}

// ParseRole converts a case-insensitive role name into a Role.
// The second return value is false for anything outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, true
	case "admin":
		return RoleAdmin, true
	case "superadmin":
		return RoleSuperAdmin, true
	default:
		return RoleUser, false
	}
}

// Account models a stored identity record.
type Account struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
