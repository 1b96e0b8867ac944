// Package policy holds the pure role-hierarchy decision functions for
// account management. Policy evaluation takes plain (role, id) values and
// does no I/O, so every rule is testable without transport or storage.
package policy

import (
	"github.com/veridian/identity-api/internal/core/domain"
)

// DenyKind enumerates why an operation was denied.
type DenyKind int

const (
	DenyNone DenyKind = iota
	DenyForbidden
	DenyNotFound
	DenyInvalidArgument
	DenyConflict
)

func (k DenyKind) String() string {
	switch k {
	case DenyForbidden:
		return "forbidden"
	case DenyNotFound:
		return "not_found"
	case DenyInvalidArgument:
		return "invalid_argument"
	case DenyConflict:
		return "conflict"
	default:
		return "none"
	}
}

// Decision is the outcome of evaluating one operation.
//
// Allowed=true with a non-empty Roles slice means "allow, restricted to
// accounts with these roles" (list operations). Allowed=true with Role set
// means "allow, the affected account gets exactly this role" (create and
// role-changing updates). Allowed=false carries the deny kind.
type Decision struct {
	Allowed bool
	Kind    DenyKind

	// Roles is the set of target roles visible to the caller on a list.
	Roles []domain.Role
	// Role is the effective role for create/update decisions.
	Role domain.Role
}

func allow() Decision { return Decision{Allowed: true} }

func allowRoles(rs ...domain.Role) Decision { return Decision{Allowed: true, Roles: rs} }

func allowRole(r domain.Role) Decision { return Decision{Allowed: true, Role: r} }

func deny(k DenyKind) Decision { return Decision{Kind: k} }

// List decides which role set the caller may enumerate.
// Admins see only Users; SuperAdmins see Users and Admins, optionally
// narrowed by roleFilter. SuperAdmin accounts are never listed.
func List(caller domain.Role, roleFilter string) Decision {
	switch caller {
	case domain.RoleAdmin:
		return allowRoles(domain.RoleUser)
	case domain.RoleSuperAdmin:
		if r, ok := domain.ParseRole(roleFilter); ok && (r == domain.RoleUser || r == domain.RoleAdmin) {
			return allowRoles(r)
		}
		// absent or unrecognised filter means both
		return allowRoles(domain.RoleUser, domain.RoleAdmin)
	default:
		return deny(DenyForbidden)
	}
}

// Get decides whether the caller may view the target account.
// SuperAdmin records are never exposed through this surface, not even to a
// SuperAdmin caller.
func Get(caller domain.Role, target *domain.Account) Decision {
	if target == nil {
		return deny(DenyNotFound)
	}
	if target.Role == domain.RoleSuperAdmin {
		return deny(DenyForbidden)
	}
	if caller == domain.RoleAdmin && target.Role != domain.RoleUser {
		return deny(DenyForbidden)
	}
	return allow()
}

// Create decides whether the caller may create an account and which role the
// new account receives. Admins always create Users, ignoring the requested
// role. SuperAdmins must request exactly User or Admin.
func Create(caller domain.Role, requestedRole string) Decision {
	switch caller {
	case domain.RoleAdmin:
		return allowRole(domain.RoleUser)
	case domain.RoleSuperAdmin:
		r, ok := domain.ParseRole(requestedRole)
		if !ok || r == domain.RoleSuperAdmin {
			return deny(DenyInvalidArgument)
		}
		return allowRole(r)
	default:
		return deny(DenyForbidden)
	}
}

// Update decides whether the caller may modify the target and, when
// requestedRole is non-empty, which role the target ends up with.
// SuperAdmin targets are immutable through this surface regardless of caller.
// An Admin may never change anyone's role: a requested role that differs from
// the target's current role denies the whole operation.
func Update(caller domain.Role, target *domain.Account, requestedRole string) Decision {
	if target == nil {
		return deny(DenyNotFound)
	}
	if target.Role == domain.RoleSuperAdmin {
		return deny(DenyInvalidArgument)
	}
	if caller == domain.RoleAdmin && target.Role != domain.RoleUser {
		return deny(DenyForbidden)
	}

	if requestedRole == "" {
		return allowRole(target.Role)
	}

	r, ok := domain.ParseRole(requestedRole)
	if !ok || r == domain.RoleSuperAdmin {
		return deny(DenyInvalidArgument)
	}
	if caller == domain.RoleAdmin && r != target.Role {
		return deny(DenyForbidden)
	}
	return allowRole(r)
}

// Delete decides whether the caller may remove the target account.
// Self-deletion and SuperAdmin targets are rejected before the Admin gate,
// so those denials read as invalid-argument for every caller role.
func Delete(caller domain.Role, callerID int64, target *domain.Account) Decision {
	if target == nil {
		return deny(DenyNotFound)
	}
	if target.Role == domain.RoleSuperAdmin {
		return deny(DenyInvalidArgument)
	}
	if target.ID == callerID {
		return deny(DenyInvalidArgument)
	}
	if caller == domain.RoleAdmin && target.Role != domain.RoleUser {
		return deny(DenyForbidden)
	}
	return allow()
}

// Err maps a deny kind to its sentinel domain error.
func (d Decision) Err() error {
	switch d.Kind {
	case DenyForbidden:
		return domain.ErrForbidden
	case DenyNotFound:
		return domain.ErrAccountNotFound
	case DenyInvalidArgument:
		return domain.ErrInvalidInput
	case DenyConflict:
		return domain.ErrEmailTaken
	default:
		return nil
	}
}
