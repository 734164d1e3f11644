package testsupport

import (
	"context"
	"fmt"
	"strings"

	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/data/repository"

	"github.com/google/uuid"
)

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if strings.EqualFold(c.Email, customer.Email) {
			return fmt.Errorf("create customer %s: duplicate email", customer.Email)
		}
	}
	r.s.customers[customer.ID] = *copyCustomer(*customer)
	return nil
}

func (r *customerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return copyCustomer(c), nil
}

func (r *customerRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Customer
	for _, id := range ids {
		if c, ok := r.s.customers[id]; ok {
			out = append(out, copyCustomer(c))
		}
	}
	return out, nil
}

func (r *customerRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if strings.EqualFold(c.Email, email) {
			return copyCustomer(c), nil
		}
	}
	return nil, nil
}

func (r *customerRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	r.s.CustomerListCalls.Add(1)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		rows = append(rows, copyCustomer(c))
	}
	return window(ordered(rows, func(c *entity.Customer) entity.Base { return c.Base }), limit, offset), nil
}

func (r *customerRepo) CountAll(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.customers)), nil
}

func (r *customerRepo) Update(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[customer.ID]; !ok {
		return fmt.Errorf("update customer %s: %w", customer.ID, repository.ErrNotFound)
	}
	r.s.customers[customer.ID] = *copyCustomer(*customer)
	return nil
}

func (r *customerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return fmt.Errorf("delete customer %s: %w", id, repository.ErrNotFound)
	}
	delete(r.s.customers, id)
	for key := range r.s.edges {
		if key.customerID == id {
			delete(r.s.edges, key)
		}
	}
	return nil
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = *copyUser(*user)
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r *userRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

func (r *userRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.User, error) {
	r.s.UserListCalls.Add(1)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*entity.User
	for key := range r.s.edges {
		if key.customerID != customerID {
			continue
		}
		if u, ok := r.s.users[key.userID]; ok {
			rows = append(rows, copyUser(u))
		}
	}
	return window(ordered(rows, func(u *entity.User) entity.Base { return u.Base }), limit, offset), nil
}

func (r *userRepo) CountByCustomerID(_ context.Context, customerID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for key := range r.s.edges {
		if key.customerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return fmt.Errorf("update user %s: %w", user.ID, repository.ErrNotFound)
	}
	r.s.users[user.ID] = *copyUser(*user)
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return fmt.Errorf("delete user %s: %w", id, repository.ErrNotFound)
	}
	delete(r.s.users, id)
	for key := range r.s.edges {
		if key.userID == id {
			delete(r.s.edges, key)
		}
	}
	return nil
}

type customerUserRepo struct{ s *Store }

func (r *customerUserRepo) Attach(_ context.Context, edge *entity.CustomerUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[edge.CustomerID]; !ok {
		return fmt.Errorf("attach: unknown customer %s", edge.CustomerID)
	}
	if _, ok := r.s.users[edge.UserID]; !ok {
		return fmt.Errorf("attach: unknown user %s", edge.UserID)
	}
	key := edgeKey{edge.CustomerID, edge.UserID}
	if _, ok := r.s.edges[key]; !ok {
		r.s.edges[key] = *edge
	}
	return nil
}

func (r *customerUserRepo) Detach(_ context.Context, customerID, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.edges, edgeKey{customerID, userID})
	return nil
}

func (r *customerUserRepo) DeleteByCustomerID(_ context.Context, customerID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key := range r.s.edges {
		if key.customerID == customerID {
			delete(r.s.edges, key)
		}
	}
	return nil
}

func (r *customerUserRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key := range r.s.edges {
		if key.userID == userID {
			delete(r.s.edges, key)
		}
	}
	return nil
}

func (r *customerUserRepo) FindByCustomerIDs(_ context.Context, customerIDs []uuid.UUID) ([]*entity.CustomerUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	wanted := make(map[uuid.UUID]bool, len(customerIDs))
	for _, id := range customerIDs {
		wanted[id] = true
	}
	var out []*entity.CustomerUser
	for key, edge := range r.s.edges {
		if wanted[key.customerID] {
			e := edge
			out = append(out, &e)
		}
	}
	return out, nil
}

func (r *customerUserRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.CustomerUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.CustomerUser
	for key, edge := range r.s.edges {
		if key.userID == userID {
			e := edge
			out = append(out, &e)
		}
	}
	return out, nil
}

func (r *customerUserRepo) Exists(_ context.Context, customerID, userID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.edges[edgeKey{customerID, userID}]
	return ok, nil
}

func (r *customerUserRepo) AttachBatch(ctx context.Context, edges []*entity.CustomerUser) error {
	for _, edge := range edges {
		if err := r.Attach(ctx, edge); err != nil {
			return err
		}
	}
	return nil
}

type phoneRepo struct{ s *Store }

func (r *phoneRepo) Create(_ context.Context, phone *entity.Phone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.phones[phone.ID] = *copyPhone(*phone)
	return nil
}

func (r *phoneRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Phone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.phones[id]
	if !ok {
		return nil, nil
	}
	return copyPhone(p), nil
}

func (r *phoneRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Phone, error) {
	r.s.PhoneListCalls.Add(1)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]*entity.Phone, 0, len(r.s.phones))
	for _, p := range r.s.phones {
		rows = append(rows, copyPhone(p))
	}
	return window(ordered(rows, func(p *entity.Phone) entity.Base { return p.Base }), limit, offset), nil
}

func (r *phoneRepo) CountAll(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.phones)), nil
}

func (r *phoneRepo) Update(_ context.Context, phone *entity.Phone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.phones[phone.ID]; !ok {
		return fmt.Errorf("update phone %s: %w", phone.ID, repository.ErrNotFound)
	}
	r.s.phones[phone.ID] = *copyPhone(*phone)
	return nil
}

func (r *phoneRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.phones[id]; !ok {
		return fmt.Errorf("delete phone %s: %w", id, repository.ErrNotFound)
	}
	delete(r.s.phones, id)
	return nil
}
