package domain

import (
	"fmt"
	"strings"
)

// Role is the caller's role as asserted by the upstream gateway.
type Role string

// Known roles.
const (
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	RoleAgent    Role = "delivery_agent"
	RoleCustomer Role = "customer"
	RoleSystem   Role = "system"
)

// Capability is an operation class gated by role.
type Capability int

// Capabilities.
const (
	CapCreateAssignment Capability = iota + 1
	CapDispatch
	CapDeliver
	CapOverride
	CapViewFinance
	CapWithdraw
	CapViewPayouts
	CapManageSettings
	CapManageAgents
)

// ParseRole maps a header value onto a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleVendor, RoleAgent, RoleCustomer, RoleSystem:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	switch r {
	case RoleAdmin:
		return c != CapDeliver && c != CapWithdraw
	case RoleSystem:
		return c == CapCreateAssignment || c == CapDispatch || c == CapOverride
	case RoleVendor:
		return c == CapCreateAssignment || c == CapViewPayouts
	case RoleAgent:
		return c == CapDeliver || c == CapWithdraw
	case RoleCustomer:
		return false
	default:
		return false
	}
}

// Actor identifies who performs an operation.
type Actor struct {
	ID   string
	Role Role
}

// SystemActor is used by background processing.
var SystemActor = Actor{ID: "system", Role: RoleSystem}
