// Package testsupport backs the repository interfaces with maps so services
// and the router can run without PostgreSQL.
package testsupport

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/data/repository"

	"github.com/google/uuid"
)

type edgeKey struct {
	customerID uuid.UUID
	userID     uuid.UUID
}

// Store holds every table. Rows are stored and returned as copies, so
// relations loaded on a returned entity never leak back into the store.
type Store struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]entity.Customer
	users     map[uuid.UUID]entity.User
	phones    map[uuid.UUID]entity.Phone
	edges     map[edgeKey]entity.CustomerUser

	// list query counters, used to observe cache hits
	CustomerListCalls atomic.Int64
	UserListCalls     atomic.Int64
	PhoneListCalls    atomic.Int64

	PingErr error
}

func NewStore() *Store {
	return &Store{
		customers: make(map[uuid.UUID]entity.Customer),
		users:     make(map[uuid.UUID]entity.User),
		phones:    make(map[uuid.UUID]entity.Phone),
		edges:     make(map[edgeKey]entity.CustomerUser),
	}
}

// Repository wires the store behind the repository interfaces.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		Customer:     &customerRepo{s},
		User:         &userRepo{s},
		CustomerUser: &customerUserRepo{s},
		Phone:        &phoneRepo{s},
		Tx:           &txManager{s},
		Health:       pinger{s},
	}
}

func (s *Store) HasUser(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok
}

func (s *Store) HasCustomer(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.customers[id]
	return ok
}

func (s *Store) HasEdge(customerID, userID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.edges[edgeKey{customerID, userID}]
	return ok
}

func (s *Store) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

func (s *Store) CustomerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers)
}

func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *Store) PhoneCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.phones)
}

type snapshot struct {
	customers map[uuid.UUID]entity.Customer
	users     map[uuid.UUID]entity.User
	phones    map[uuid.UUID]entity.Phone
	edges     map[edgeKey]entity.CustomerUser
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		customers: maps.Clone(s.customers),
		users:     maps.Clone(s.users),
		phones:    maps.Clone(s.phones),
		edges:     maps.Clone(s.edges),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = snap.customers
	s.users = snap.users
	s.phones = snap.phones
	s.edges = snap.edges
}

func copyCustomer(c entity.Customer) *entity.Customer {
	return &entity.Customer{
		Base:     c.Base,
		Name:     c.Name,
		Email:    c.Email,
		Password: c.Password,
		Roles:    slices.Clone(c.Roles),
	}
}

func copyUser(u entity.User) *entity.User {
	return &entity.User{
		Base:      u.Base,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func copyPhone(p entity.Phone) *entity.Phone {
	out := p
	if p.StockQuantity != nil {
		stock := *p.StockQuantity
		out.StockQuantity = &stock
	}
	return &out
}

// ordered sorts by creation time then id, like the SQL ORDER BY.
func ordered[T any](rows []T, base func(T) entity.Base) []T {
	slices.SortFunc(rows, func(a, b T) int {
		ba, bb := base(a), base(b)
		if c := ba.CreatedAt.Compare(bb.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(ba.ID.String(), bb.ID.String())
	})
	return rows
}

func window[T any](rows []T, limit, offset int) []T {
	if offset < 0 || limit < 1 || offset >= len(rows) {
		return nil
	}
	end := offset + min(limit, len(rows)-offset)
	return rows[offset:end]
}

type txKey struct{}

type txManager struct{ s *Store }

// WithinTx restores the state taken before fn when fn fails.
func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	snap := m.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

type pinger struct{ s *Store }

func (p pinger) Ping(context.Context) error {
	return p.s.PingErr
}
