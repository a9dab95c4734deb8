package domain

import "errors"

// Role is the access level assigned to a user. It is fixed for the life of a
// session; changing it requires a new login.
type Role string

const (
	RoleAdministrator Role = "ADMINISTRADOR"
	RoleCustomer      Role = "CLIENTE"
	RoleCook          Role = "COCINERO"
	RoleCashier       Role = "CAJERO"
	RoleDelivery      Role = "DELIVERY"
)

var ErrInvalidRole = errors.New("invalid role")

// StaffRoles are the roles subject to the business-hours inactivity exemption.
var StaffRoles = []Role{RoleAdministrator, RoleCook, RoleCashier, RoleDelivery}

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleCustomer, RoleCook, RoleCashier, RoleDelivery:
		return true
	}
	return false
}

// Staff reports whether the role belongs to restaurant personnel rather than a
// customer.
func (r Role) Staff() bool {
	return r.Valid() && r != RoleCustomer
}

// Identity is the authenticated principal carried by a session. Profile fields
// (DisplayName, Email, Phone) are mutable via profile updates; UserID and Role
// never change without a re-login.
type Identity struct {
	UserID      int64  `json:"user_id"`
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Deactivated bool   `json:"deactivated"`
}
