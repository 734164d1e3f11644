package repository

import (
	"context"
	"errors"
	"fmt"

	"bilemo-api/internal/data/entity"
	"bilemo-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

const customerColumns = `id, name, email, password, roles, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Password,
		&c.Roles,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, password, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Password,
		customer.Roles,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("email", customer.Email),
		)
		return fmt.Errorf("create customer %s: %w", customer.Email, err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return nil, fmt.Errorf("find customer by ID %s: %w", id.String(), err)
	}

	return customer, nil
}

func (r *customerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = ANY($1::uuid[]) ORDER BY created_at, id`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, uuidStrings(ids))
	if err != nil {
		r.log.Error("Failed to find customers by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find customers by IDs: %w", err)
	}

	return r.collect(rows)
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE LOWER(email) = LOWER($1)`

	customer, err := scanCustomer(database.Conn(ctx, r.db).QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find customer by email %s: %w", email, err)
	}

	return customer, nil
}

// FindAll retrieves one page of customers, oldest first
func (r *customerRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all customers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all customers limit %d offset %d: %w", limit, offset, err)
	}

	return r.collect(rows)
}

func (r *customerRepository) collect(rows pgx.Rows) ([]*entity.Customer, error) {
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting customers", zap.Error(err))
		return 0, fmt.Errorf("count all customers: %w", err)
	}

	return count, nil
}

// Update never touches id or created_at
func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, password = $4, roles = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Password,
		customer.Roles,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return fmt.Errorf("update customer %s: %w", customer.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", customer.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete customer",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete customer %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Customer deleted", zap.String("id", id.String()))
	return nil
}
