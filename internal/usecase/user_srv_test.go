package usecase

import (
	"context"
	"errors"
	"testing"

	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/dto/request"
)

func TestUserService_DeleteDetachesWhenShared(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acme := env.store.AddCustomer(t, "Acme", "acme@example.com")
	globex := env.store.AddCustomer(t, "Globex", "globex@example.com")
	user := env.store.AddUser(t, "jane@example.com", "Jane", "Doe", acme, globex)

	if err := env.svc.User.DeleteUser(ctx, acme, user.ID.String()); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if !env.store.HasUser(user.ID) {
		t.Fatal("user row removed while another customer still holds it")
	}
	if env.store.HasEdge(acme.ID, user.ID) {
		t.Error("edge to the acting customer still present")
	}
	if !env.store.HasEdge(globex.ID, user.ID) {
		t.Error("edge to the other customer was removed")
	}
}

func TestUserService_DeleteRemovesRowWhenLastCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acme := env.store.AddCustomer(t, "Acme", "acme@example.com")
	user := env.store.AddUser(t, "jane@example.com", "Jane", "Doe", acme)

	if err := env.svc.User.DeleteUser(ctx, acme, user.ID.String()); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if env.store.HasUser(user.ID) {
		t.Error("user row still present")
	}
	if env.store.EdgeCount() != 0 {
		t.Errorf("expected no edges, got %d", env.store.EdgeCount())
	}
}

func TestUserService_DeleteRequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acme := env.store.AddCustomer(t, "Acme", "acme@example.com")
	globex := env.store.AddCustomer(t, "Globex", "globex@example.com")
	user := env.store.AddUser(t, "jane@example.com", "Jane", "Doe", globex)

	err := env.svc.User.DeleteUser(ctx, acme, user.ID.String())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if !env.store.HasUser(user.ID) || !env.store.HasEdge(globex.ID, user.ID) {
		t.Error("forbidden delete changed the store")
	}
}

func TestUserService_GetUserByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acme := env.store.AddCustomer(t, "Acme", "acme@example.com")
	globex := env.store.AddCustomer(t, "Globex", "globex@example.com")
	mine := env.store.AddUser(t, "jane@example.com", "Jane", "Doe", acme)
	theirs := env.store.AddUser(t, "john@example.com", "John", "Roe", globex)

	got, err := env.svc.User.GetUserByID(ctx, acme, mine.ID.String())
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Email != "jane@example.com" || got.Links["delete"].Method != "DELETE" {
		t.Errorf("unexpected representation %+v", got)
	}

	if _, err := env.svc.User.GetUserByID(ctx, acme, theirs.ID.String()); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign user: expected ErrForbidden, got %v", err)
	}
	if _, err := env.svc.User.GetUserByID(ctx, acme, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user: expected ErrNotFound, got %v", err)
	}
	if _, err := env.svc.User.GetUserByID(ctx, acme, "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("bad id: expected ErrNotFound, got %v", err)
	}
}

func TestUserService_CreateLinksPrincipalAndInvalidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acme := env.store.AddCustomer(t, "Acme", "acme@example.com")
	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	before, err := env.svc.User.GetUsers(ctx, acme, page)
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(before.Data) != 0 {
		t.Fatalf("expected no users, got %d", len(before.Data))
	}

	created, err := env.svc.User.CreateUser(ctx, acme, &request.UserRequest{
		Email: "jane@example.com", FirstName: "Jane", LastName: "Doe",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	after, err := env.svc.User.GetUsers(ctx, acme, page)
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(after.Data) != 1 || after.Data[0].ID != created.ID {
		t.Errorf("cached page was not invalidated: %+v", after.Data)
	}
	if after.Pagination.TotalRecords != 1 || after.Pagination.TotalPages != 1 {
		t.Errorf("unexpected pagination %+v", after.Pagination)
	}
}

func TestUserService_CreateValidates(t *testing.T) {
	env := newTestEnv(t)
	acme := env.store.AddCustomer(t, "Acme", "acme@example.com")

	_, err := env.svc.User.CreateUser(context.Background(), acme, &request.UserRequest{
		Email: "not-an-email", FirstName: "Jo", LastName: "Doe",
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.Fields["email"]; !ok {
		t.Errorf("missing email error: %v", vErr.Fields)
	}
	if _, ok := vErr.Fields["firstName"]; !ok {
		t.Errorf("missing firstName error: %v", vErr.Fields)
	}
	if env.store.UserCount() != 0 {
		t.Error("invalid user was persisted")
	}
}

func TestUserService_UpdateOwnerOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acme := env.store.AddCustomer(t, "Acme", "acme@example.com")
	globex := env.store.AddCustomer(t, "Globex", "globex@example.com")
	admin := env.store.AddCustomer(t, "admin", "admin@bilemo.com", entity.RoleAdmin)
	user := env.store.AddUser(t, "jane@example.com", "Jane", "Doe", acme)

	if _, err := env.svc.User.UpdateUser(ctx, globex, user.ID.String(), &request.UserUpdateRequest{LastName: ptr("Smith")}); !errors.Is(err, ErrForbidden) {
		t.Errorf("non owner: expected ErrForbidden, got %v", err)
	}

	got, err := env.svc.User.UpdateUser(ctx, acme, user.ID.String(), &request.UserUpdateRequest{LastName: ptr("Smith")})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if got.LastName != "Smith" || got.FirstName != "Jane" {
		t.Errorf("unexpected result %+v", got)
	}

	if _, err := env.svc.User.UpdateUser(ctx, admin, user.ID.String(), &request.UserUpdateRequest{FirstName: ptr("Janet")}); err != nil {
		t.Errorf("admin update: %v", err)
	}
}
