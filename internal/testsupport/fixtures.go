package testsupport

import (
	"context"
	"testing"
	"time"

	"bilemo-api/internal/data/entity"
	"bilemo-api/pkg/utils"

	"github.com/google/uuid"
)

// Password is the clear text password of every fixture customer.
const Password = "secret123"

// AddCustomer stores a customer whose password is Password.
func (s *Store) AddCustomer(t testing.TB, name, email string, roles ...string) *entity.Customer {
	t.Helper()

	hashed, err := utils.HashPassword(Password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	customer := &entity.Customer{
		Base:     newBase(),
		Name:     name,
		Email:    email,
		Password: hashed,
		Roles:    roles,
	}
	if err := (&customerRepo{s}).Create(context.Background(), customer); err != nil {
		t.Fatalf("add customer: %v", err)
	}
	return customer
}

// AddUser stores a user linked to each of the given customers.
func (s *Store) AddUser(t testing.TB, email, firstName, lastName string, owners ...*entity.Customer) *entity.User {
	t.Helper()

	user := &entity.User{
		Base:      newBase(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}
	ctx := context.Background()
	if err := (&userRepo{s}).Create(ctx, user); err != nil {
		t.Fatalf("add user: %v", err)
	}
	for _, owner := range owners {
		edge := &entity.CustomerUser{CustomerID: owner.ID, UserID: user.ID, CreatedAt: time.Now()}
		if err := (&customerUserRepo{s}).Attach(ctx, edge); err != nil {
			t.Fatalf("link user: %v", err)
		}
	}
	return user
}

// AddPhone stores a phone with every required attribute filled in.
func (s *Store) AddPhone(t testing.TB, model string) *entity.Phone {
	t.Helper()

	stock := "12"
	phone := &entity.Phone{
		Base:            newBase(),
		Model:           model,
		Manufacturer:    "Google",
		Processor:       "Tensor G4",
		RAM:             "12 GB",
		StorageCapacity: "128GB",
		CameraDetails:   "50MP",
		BatteryLife:     "24 heures",
		ScreenSize:      "6.30 pouces",
		Price:           "899.00",
		StockQuantity:   &stock,
		ReleaseDate:     time.Now(),
	}
	if err := (&phoneRepo{s}).Create(context.Background(), phone); err != nil {
		t.Fatalf("add phone: %v", err)
	}
	return phone
}

var clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// newBase hands out strictly increasing creation times so list order is stable.
func newBase() entity.Base {
	clock = clock.Add(time.Second)
	return entity.Base{ID: uuid.New(), CreatedAt: clock, UpdatedAt: clock}
}
