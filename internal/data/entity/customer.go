package entity

import (
	"slices"

	"github.com/google/uuid"
)

const (
	RoleCustomer = "ROLE_CUSTOMER"
	RoleAdmin    = "ROLE_ADMIN"
)

// Customer is an API consumer and the authenticated principal.
type Customer struct {
	Base
	Name     string   `db:"name"`
	Email    string   `db:"email"`
	Password string   `db:"password"`
	Roles    []string `db:"roles"`

	users []*User
}

// GetRoles always includes ROLE_CUSTOMER.
func (c *Customer) GetRoles() []string {
	roles := []string{RoleCustomer}
	for _, role := range c.Roles {
		if !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	return roles
}

func (c *Customer) HasRole(role string) bool {
	return slices.Contains(c.GetRoles(), role)
}

func (c *Customer) IsAdmin() bool {
	return c.HasRole(RoleAdmin)
}

// Users returns a copy of the linked users.
func (c *Customer) Users() []*User {
	return slices.Clone(c.users)
}

func (c *Customer) HasUser(id uuid.UUID) bool {
	return c.indexOfUser(id) >= 0
}

func (c *Customer) AddUser(u *User) {
	Link(c, u)
}

func (c *Customer) RemoveUser(u *User) {
	Unlink(c, u)
}

func (c *Customer) indexOfUser(id uuid.UUID) int {
	return slices.IndexFunc(c.users, func(u *User) bool { return u.ID == id })
}
