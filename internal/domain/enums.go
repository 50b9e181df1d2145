package domain

import "fmt"

// Scope represents a GHG Protocol emission scope.
type Scope string

const (
	Scope1 Scope = "SCOPE_1"
	Scope2 Scope = "SCOPE_2"
	Scope3 Scope = "SCOPE_3"
)

func (s Scope) String() string { return string(s) }

func (s Scope) IsValid() bool {
	switch s {
	case Scope1, Scope2, Scope3:
		return true
	}
	return false
}

// ParseScope converts the wire forms "scope1"/"scope2"/"scope3" (and the
// canonical SCOPE_N form) into a Scope. Returns false for anything else.
func ParseScope(s string) (Scope, bool) {
	switch s {
	case "scope1", string(Scope1):
		return Scope1, true
	case "scope2", string(Scope2):
		return Scope2, true
	case "scope3", string(Scope3):
		return Scope3, true
	}
	return "", false
}

// Role represents the access level of a user within the platform.
type Role string

const (
	// RoleMember records emissions for their own organization.
	RoleMember Role = "MEMBER"
	// RoleConsultant records emissions on behalf of client organizations.
	RoleConsultant Role = "CONSULTANT"
	// RoleAdmin administers the platform.
	RoleAdmin Role = "ADMIN"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleConsultant, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts a string into a Role. Returns an error for unknown
// values; role checks never fall through to a default.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}
