package usecase

import (
	"context"
	"fmt"

	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/data/repository"

	"github.com/google/uuid"
)

// attachUsers loads the users of each customer and links both sides.
func attachUsers(ctx context.Context, repo *repository.Repository, customers []*entity.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*entity.Customer, len(customers))
	ids := make([]uuid.UUID, 0, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	edges, err := repo.CustomerUser.FindByCustomerIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load customer users: %w", err)
	}
	if len(edges) == 0 {
		return nil
	}

	userIDs := make([]uuid.UUID, 0, len(edges))
	seen := make(map[uuid.UUID]bool, len(edges))
	for _, edge := range edges {
		if !seen[edge.UserID] {
			seen[edge.UserID] = true
			userIDs = append(userIDs, edge.UserID)
		}
	}

	users, err := repo.User.FindByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	usersByID := make(map[uuid.UUID]*entity.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	for _, edge := range edges {
		entity.Link(byID[edge.CustomerID], usersByID[edge.UserID])
	}

	return nil
}

// attachCustomers loads every customer the user belongs to and links both sides.
func attachCustomers(ctx context.Context, repo *repository.Repository, user *entity.User) error {
	edges, err := repo.CustomerUser.FindByUserID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("load user customers: %w", err)
	}
	if len(edges) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.CustomerID)
	}

	customers, err := repo.Customer.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}

	for _, c := range customers {
		entity.Link(c, user)
	}

	return nil
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("id %q: %w", id, ErrNotFound)
	}
	return parsed, nil
}
