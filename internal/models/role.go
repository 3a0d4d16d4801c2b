package models

import "fmt"

// Role is the closed set of user roles. The numeric values are part of the
// registration form contract and the database encoding.
type Role int16

const (
	RoleAdmin  Role = 0
	RoleBidder Role = 1
	RoleSeller Role = 2
)

// ParseRole converts the numeric form/database value into a Role.
func ParseRole(v int) (Role, error) {
	switch Role(v) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleBidder:
		return RoleBidder, nil
	case RoleSeller:
		return RoleSeller, nil
	default:
		return 0, fmt.Errorf("unknown role %d", v)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBidder, RoleSeller:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleBidder:
		return "bidder"
	case RoleSeller:
		return "seller"
	default:
		return fmt.Sprintf("role(%d)", int16(r))
	}
}
