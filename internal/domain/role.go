package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of caller tiers issued by the identity provider.
type Role string

const (
	RoleDirectionAdmin Role = "DIRECTION_ADMIN"
	RoleHRAdmin        Role = "HR_ADMIN"
	RoleEmployee       Role = "EMPLOYEE"
)

var Roles = []Role{RoleDirectionAdmin, RoleHRAdmin, RoleEmployee}

func ParseRole(v string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(v)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", v)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleDirectionAdmin, RoleHRAdmin, RoleEmployee:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

func (r Role) IsAdmin() bool {
	return r == RoleDirectionAdmin || r == RoleHRAdmin
}

func (r Role) CanApprove() bool {
	return r.IsAdmin()
}

// CanOverrideBalance reports whether approvals by r may leave the balance negative.
func (r Role) CanOverrideBalance() bool {
	return r == RoleDirectionAdmin
}

func (r Role) CanAdjustVacation() bool {
	return r.IsAdmin()
}

// CanChangeHireDate guards edits that rewrite the accrual baseline.
func (r Role) CanChangeHireDate() bool {
	return r == RoleDirectionAdmin
}

// Actor is the authenticated caller as issued by the identity collaborator.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       Role
}
