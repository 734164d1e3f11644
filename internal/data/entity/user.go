package entity

import (
	"slices"

	"github.com/google/uuid"
)

// User is a sub-account managed by one or more customers.
type User struct {
	Base
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`

	customers []*Customer
}

// Customers returns a copy of the linked customers.
func (u *User) Customers() []*Customer {
	return slices.Clone(u.customers)
}

func (u *User) HasCustomer(id uuid.UUID) bool {
	return u.indexOfCustomer(id) >= 0
}

func (u *User) AddCustomer(c *Customer) {
	Link(c, u)
}

func (u *User) RemoveCustomer(c *Customer) {
	Unlink(c, u)
}

func (u *User) indexOfCustomer(id uuid.UUID) int {
	return slices.IndexFunc(u.customers, func(c *Customer) bool { return c.ID == id })
}
