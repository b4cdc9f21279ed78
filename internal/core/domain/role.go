package domain

import (
	"fmt"
	"strings"
)

// Role is the campus identity a user signs in with.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleOrganization Role = "organization"
	RoleFaculty      Role = "faculty"
	RoleStudent      Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganization, RoleFaculty, RoleStudent:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole canonicalizes a role name from config, SSO claims or persisted
// metadata. The SSO directory hands out several aliases for the same role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "administrator", "super_admin":
		return RoleAdmin, nil
	case "org", "organization":
		return RoleOrganization, nil
	case "faculty":
		return RoleFaculty, nil
	case "student":
		return RoleStudent, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}
