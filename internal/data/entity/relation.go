package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// CustomerUser is a row of the user_customers join table.
type CustomerUser struct {
	CustomerID uuid.UUID `db:"customer_id"`
	UserID     uuid.UUID `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
}

// Link records the edge on both sides. It reports false when the edge
// already existed.
func Link(c *Customer, u *User) bool {
	if c == nil || u == nil {
		return false
	}

	added := false
	if !c.HasUser(u.ID) {
		c.users = append(c.users, u)
		added = true
	}
	if !u.HasCustomer(c.ID) {
		u.customers = append(u.customers, c)
		added = true
	}
	return added
}

// Unlink removes the edge from both sides. It reports false when there was
// no edge to remove.
func Unlink(c *Customer, u *User) bool {
	if c == nil || u == nil {
		return false
	}

	removed := false
	if i := c.indexOfUser(u.ID); i >= 0 {
		c.users = slices.Delete(c.users, i, i+1)
		removed = true
	}
	if i := u.indexOfCustomer(c.ID); i >= 0 {
		u.customers = slices.Delete(u.customers, i, i+1)
		removed = true
	}
	return removed
}
