package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"bilemo-api/internal/data/entity"
	"bilemo-api/pkg/database"
	"bilemo-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zaptest"
)

var errRollback = errors.New("rollback")

// TestRepositoriesIntegration runs against the database configured in .env.
// Every write happens in a transaction that is rolled back at the end.
func TestRepositoriesIntegration(t *testing.T) {
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run this integration test")
	}

	for _, path := range []string{".env", "../../../.env"} {
		_ = godotenv.Load(path)
	}

	config, err := utils.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewRepository(db, zaptest.NewLogger(t))
	now := time.Now().UTC().Truncate(time.Microsecond)
	base := func() entity.Base { return entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now} }

	err = repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		acme := &entity.Customer{Base: base(), Name: "Acme", Email: "Acme." + uuid.NewString() + "@example.com", Password: "hash", Roles: []string{entity.RoleAdmin}}
		globex := &entity.Customer{Base: base(), Name: "Globex", Email: "globex." + uuid.NewString() + "@example.com", Password: "hash", Roles: []string{}}
		for _, c := range []*entity.Customer{acme, globex} {
			if err := repo.Customer.Create(ctx, c); err != nil {
				t.Fatalf("create customer: %v", err)
			}
		}

		found, err := repo.Customer.FindByEmail(ctx, acme.Email)
		if err != nil || found == nil || found.ID != acme.ID || !found.IsAdmin() {
			t.Fatalf("find by email (case-insensitive): %+v, %v", found, err)
		}

		jane := &entity.User{Base: base(), Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"}
		if err := repo.User.Create(ctx, jane); err != nil {
			t.Fatalf("create user: %v", err)
		}

		edges := []*entity.CustomerUser{
			{CustomerID: acme.ID, UserID: jane.ID, CreatedAt: now},
			{CustomerID: globex.ID, UserID: jane.ID, CreatedAt: now},
		}
		if err := repo.CustomerUser.AttachBatch(ctx, edges); err != nil {
			t.Fatalf("attach batch: %v", err)
		}
		// attaching twice is a no-op
		if err := repo.CustomerUser.Attach(ctx, edges[0]); err != nil {
			t.Fatalf("re-attach: %v", err)
		}

		users, err := repo.User.FindByCustomerID(ctx, acme.ID, 10, 0)
		if err != nil || len(users) != 1 || users[0].ID != jane.ID {
			t.Fatalf("users of acme: %v, %v", users, err)
		}
		if n, err := repo.User.CountByCustomerID(ctx, acme.ID); err != nil || n != 1 {
			t.Fatalf("count users of acme: %d, %v", n, err)
		}

		if err := repo.CustomerUser.Detach(ctx, acme.ID, jane.ID); err != nil {
			t.Fatalf("detach: %v", err)
		}
		if ok, err := repo.CustomerUser.Exists(ctx, acme.ID, jane.ID); err != nil || ok {
			t.Fatalf("edge still exists: %v, %v", ok, err)
		}
		if ok, err := repo.CustomerUser.Exists(ctx, globex.ID, jane.ID); err != nil || !ok {
			t.Fatalf("other edge missing: %v, %v", ok, err)
		}

		stock := "7"
		phone := &entity.Phone{
			Base: base(), Model: "Pixel 9", Manufacturer: "Google", Processor: "Tensor G4",
			RAM: "12 GB", StorageCapacity: "128GB", CameraDetails: "50MP", BatteryLife: "24 heures",
			ScreenSize: "6.3 pouces", Price: "899.00", StockQuantity: &stock, ReleaseDate: now,
		}
		if err := repo.Phone.Create(ctx, phone); err != nil {
			t.Fatalf("create phone: %v", err)
		}
		phone.Price = "799.00"
		phone.StockQuantity = nil
		if err := repo.Phone.Update(ctx, phone); err != nil {
			t.Fatalf("update phone: %v", err)
		}
		got, err := repo.Phone.FindByID(ctx, phone.ID)
		if err != nil || got == nil || got.Price != "799.00" || got.StockQuantity != nil {
			t.Fatalf("reload phone: %+v, %v", got, err)
		}

		if err := repo.Phone.Delete(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
			t.Fatalf("delete missing phone: expected ErrNotFound, got %v", err)
		}

		return errRollback
	})
	if !errors.Is(err, errRollback) {
		t.Fatalf("unexpected transaction result: %v", err)
	}
}
