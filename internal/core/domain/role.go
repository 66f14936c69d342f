package domain

// Role classifies an account for authorization. Only the values below are
// ever persisted.
type Role string

const (
	RoleUser            Role = "User"
	RoleSuperAdmin      Role = "SuperAdmin"
	RoleAdmissionsAdmin Role = "AdmissionsAdmin"
	RoleContentAdmin    Role = "ContentAdmin"
	RoleAudienceAdmin   Role = "AudienceAdmin"
)

var roles = []Role{
	RoleUser,
	RoleSuperAdmin,
	RoleAdmissionsAdmin,
	RoleContentAdmin,
	RoleAudienceAdmin,
}

// Roles returns the closed role enumeration.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// Valid reports whether r belongs to the enumeration.
func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole converts s into a Role, rejecting anything outside the enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}
