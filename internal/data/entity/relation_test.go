package entity

import (
	"testing"

	"github.com/google/uuid"
)

func newPair() (*Customer, *User) {
	return &Customer{Base: Base{ID: uuid.New()}, Name: "Acme"},
		&User{Base: Base{ID: uuid.New()}, Email: "jane@example.com"}
}

func TestLink_UpdatesBothSides(t *testing.T) {
	c, u := newPair()

	if !Link(c, u) {
		t.Fatal("expected first Link to report a change")
	}
	if !c.HasUser(u.ID) {
		t.Error("customer side missing user")
	}
	if !u.HasCustomer(c.ID) {
		t.Error("user side missing customer")
	}

	if Link(c, u) {
		t.Error("expected second Link to be a no-op")
	}
	if len(c.Users()) != 1 || len(u.Customers()) != 1 {
		t.Errorf("duplicate edge: %d users, %d customers", len(c.Users()), len(u.Customers()))
	}
}

func TestLink_ThroughEitherSide(t *testing.T) {
	c, u := newPair()
	u.AddCustomer(c)

	if !c.HasUser(u.ID) {
		t.Fatal("AddCustomer did not update the customer side")
	}

	other := &User{Base: Base{ID: uuid.New()}}
	c.AddUser(other)
	if !other.HasCustomer(c.ID) {
		t.Fatal("AddUser did not update the user side")
	}
	if got := len(c.Users()); got != 2 {
		t.Errorf("expected 2 users, got %d", got)
	}
}

func TestUnlink_RemovesBothSides(t *testing.T) {
	c, u := newPair()
	Link(c, u)

	if !Unlink(c, u) {
		t.Fatal("expected Unlink to report a change")
	}
	if c.HasUser(u.ID) || u.HasCustomer(c.ID) {
		t.Error("edge still present after Unlink")
	}
	if Unlink(c, u) {
		t.Error("expected Unlink of a missing edge to be a no-op")
	}
}

func TestUnlink_KeepsOtherEdges(t *testing.T) {
	c1, u := newPair()
	c2 := &Customer{Base: Base{ID: uuid.New()}}
	Link(c1, u)
	Link(c2, u)

	c1.RemoveUser(u)

	if u.HasCustomer(c1.ID) {
		t.Error("removed customer still linked")
	}
	if !u.HasCustomer(c2.ID) || !c2.HasUser(u.ID) {
		t.Error("unrelated edge was removed")
	}
}

func TestLink_MatchesByID(t *testing.T) {
	c, u := newPair()
	Link(c, u)

	// a second instance of the same row is the same member
	reloaded := &User{Base: Base{ID: u.ID}}
	Link(c, reloaded)

	if len(c.Users()) != 1 {
		t.Errorf("expected one user, got %d", len(c.Users()))
	}
}

func TestLink_NilIsNoop(t *testing.T) {
	c, _ := newPair()
	if Link(c, nil) || Link(nil, &User{}) || Unlink(nil, nil) {
		t.Error("expected nil operands to be ignored")
	}
}

func TestUsers_ReturnsCopy(t *testing.T) {
	c, u := newPair()
	Link(c, u)

	users := c.Users()
	users[0] = nil

	if c.Users()[0] == nil {
		t.Error("caller mutated the customer's users")
	}
}

func TestCustomer_Roles(t *testing.T) {
	c := &Customer{}
	if got := c.GetRoles(); len(got) != 1 || got[0] != RoleCustomer {
		t.Errorf("expected [ROLE_CUSTOMER], got %v", got)
	}
	if c.IsAdmin() {
		t.Error("plain customer reported as admin")
	}

	c.Roles = []string{RoleAdmin, RoleCustomer}
	if !c.IsAdmin() || !c.HasRole(RoleCustomer) {
		t.Errorf("unexpected roles %v", c.GetRoles())
	}
	if got := len(c.GetRoles()); got != 2 {
		t.Errorf("expected 2 roles without duplicates, got %d", got)
	}
}
