package auth

// Package auth contains domain-level types for authentication, sessions, and
// the role hierarchy. It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
	RoleMaster   Role = "master"
)

// NormalizeRole maps an arbitrary stored role string onto the closed role
// set. Unknown or absent values fall back to operator (least privilege), so a
// new role added to the store can never satisfy a master or admin check by
// accident.
func NormalizeRole(raw string) Role {
	switch Role(raw) {
	case RoleOperator, RoleAdmin, RoleMaster:
		return Role(raw)
	default:
		return RoleOperator
	}
}

// Requirement is a declarative minimum privilege for a guarded operation.
type Requirement string

const (
	// RequireAuthenticated admits any valid active session regardless of role.
	RequireAuthenticated Requirement = "authenticated"
	// RequireOperator admits any operator-tier role (operator, admin, master).
	RequireOperator Requirement = "operator"
	// RequireAdmin admits admin and master.
	RequireAdmin Requirement = "admin"
	// RequireMaster admits master only.
	RequireMaster Requirement = "master"
)

// Valid reports whether req is a member of the recognized requirement set.
// Guards treat an invalid requirement as a programmer error, never as allow.
func (r Requirement) Valid() bool {
	switch r {
	case RequireAuthenticated, RequireOperator, RequireAdmin, RequireMaster:
		return true
	default:
		return false
	}
}

// Satisfies reports whether a role meets a requirement. Checks are by exact
// or superset membership, not numeric rank, so an unrecognized role (already
// normalized to operator) can only ever pass operator-tier checks.
func Satisfies(actual Role, req Requirement) bool {
	switch req {
	case RequireAuthenticated:
		return true
	case RequireOperator:
		return actual == RoleOperator || actual == RoleAdmin || actual == RoleMaster
	case RequireAdmin:
		return actual == RoleAdmin || actual == RoleMaster
	case RequireMaster:
		return actual == RoleMaster
	default:
		return false
	}
}

// Identity represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (e.g., samAccountName or sub)
	FirstName string
	LastName  string
	Email     string
	Groups    []string
	ExpiresAt time.Time // absolute expiry from IdP token
}

// Session is the server-side record the session provider persists for an
// authenticated user. ID is an opaque session identifier. This core only
// reads sessions; it never mutates them.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// User is the directory record backing a session. Active is the
// administrative kill switch: a structurally valid session whose user has
// Active=false must never pass authentication.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	Active    bool
	CreatedAt time.Time
}

// IsOperatorTier reports whether the session role belongs to the operator
// tier (any recognized role).
func (s Session) IsOperatorTier() bool { return Satisfies(s.Role, RequireOperator) }
