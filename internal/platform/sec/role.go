// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: davi.tran.dev@gmail.com

package sec

// # Caller Roles

// Role represents the authorization level granted to an authenticated caller.
//
// Anonymous callers carry no role at all: they are represented by the
// absence of [AuthClaims] in the request context.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Can author and manage their own editorial content, but not publish it
	RoleAgent Role = "agent"

	// Default role for standard registered users (read-only on content)
	RoleCustomer Role = "customer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleAgent:
		return 20
	case RoleCustomer:
		return 10
	default:
		return 0
	}
}
