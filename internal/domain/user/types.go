package user

import (
	"library-lending/internal/pkg/errs"
)

var ErrInvalidRole = errs.Wrap(errs.ErrValidation, "invalid role")

type Role string

const (
	RoleMember    Role = "member"
	RoleLibrarian Role = "librarian"
	RoleAdmin     Role = "admin"
)

var roleHierarchy = map[Role]int{
	RoleMember:    1,
	RoleLibrarian: 2,
	RoleAdmin:     3,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleHierarchy[r]
	return ok
}

// AtLeast reports whether r ranks at or above min. Unknown roles never qualify.
func (r Role) AtLeast(min Role) bool {
	level, ok := roleHierarchy[r]
	minLevel, minOk := roleHierarchy[min]
	return ok && minOk && level >= minLevel
}

func (r Role) IsStaff() bool {
	return r.AtLeast(RoleLibrarian)
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
