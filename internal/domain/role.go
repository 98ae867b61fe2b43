package domain

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleStudent      Role = "student"
	RoleCounselor    Role = "counselor"
	RolePeer         Role = "peer"
	RoleCollegeAdmin Role = "college_admin"
)

// roleAliases folds spellings accepted by older clients onto the canonical role.
var roleAliases = map[string]Role{
	"admin":         RoleAdmin,
	"student":       RoleStudent,
	"counselor":     RoleCounselor,
	"counsellor":    RoleCounselor,
	"concellor":     RoleCounselor,
	"peer":          RolePeer,
	"college_admin": RoleCollegeAdmin,
	"collegeadmin":  RoleCollegeAdmin,
	"collage_admin": RoleCollegeAdmin,
	"college":       RoleCollegeAdmin,
}

func ParseRole(raw string) (Role, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	if r, ok := roleAliases[key]; ok {
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, raw)
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleCounselor, RolePeer, RoleCollegeAdmin:
		return true
	}
	return false
}
