package repository

import (
	"context"
	"fmt"

	"bilemo-api/internal/data/entity"
	"bilemo-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerUserRepository interface {
	// Bridge table operations
	Attach(ctx context.Context, edge *entity.CustomerUser) error
	Detach(ctx context.Context, customerID, userID uuid.UUID) error
	DeleteByCustomerID(ctx context.Context, customerID uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	FindByCustomerIDs(ctx context.Context, customerIDs []uuid.UUID) ([]*entity.CustomerUser, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CustomerUser, error)
	Exists(ctx context.Context, customerID, userID uuid.UUID) (bool, error)

	// Batch operations
	AttachBatch(ctx context.Context, edges []*entity.CustomerUser) error
}

type customerUserRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerUserRepository(db database.PgxIface, log *zap.Logger) CustomerUserRepository {
	return &customerUserRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer_user")),
	}
}

// Attach is a no-op when the edge already exists
func (r *customerUserRepository) Attach(ctx context.Context, edge *entity.CustomerUser) error {
	query := `
		INSERT INTO user_customers (customer_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, user_id) DO NOTHING
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query, edge.CustomerID, edge.UserID, edge.CreatedAt)
	if err != nil {
		r.log.Error("Failed to attach user to customer",
			zap.Error(err),
			zap.String("customer_id", edge.CustomerID.String()),
			zap.String("user_id", edge.UserID.String()),
		)
		return fmt.Errorf("failed to attach user %s to customer %s: %w", edge.UserID, edge.CustomerID, err)
	}

	return nil
}

func (r *customerUserRepository) Detach(ctx context.Context, customerID, userID uuid.UUID) error {
	query := `DELETE FROM user_customers WHERE customer_id = $1 AND user_id = $2`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query, customerID, userID)
	if err != nil {
		r.log.Error("Failed to detach user from customer",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("failed to detach user %s from customer %s: %w", userID, customerID, err)
	}

	return nil
}

func (r *customerUserRepository) DeleteByCustomerID(ctx context.Context, customerID uuid.UUID) error {
	_, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM user_customers WHERE customer_id = $1`, customerID)
	if err != nil {
		r.log.Error("Failed to delete edges by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return fmt.Errorf("failed to delete user_customers: %w", err)
	}

	return nil
}

func (r *customerUserRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM user_customers WHERE user_id = $1`, userID)
	if err != nil {
		r.log.Error("Failed to delete edges by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("failed to delete user_customers: %w", err)
	}

	return nil
}

func (r *customerUserRepository) FindByCustomerIDs(ctx context.Context, customerIDs []uuid.UUID) ([]*entity.CustomerUser, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT customer_id, user_id, created_at
		FROM user_customers
		WHERE customer_id = ANY($1::uuid[])
		ORDER BY created_at, user_id
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, uuidStrings(customerIDs))
	if err != nil {
		r.log.Error("Failed to find edges by customer IDs", zap.Error(err))
		return nil, fmt.Errorf("failed to find user_customers: %w", err)
	}

	return r.collect(rows)
}

func (r *customerUserRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CustomerUser, error) {
	query := `
		SELECT customer_id, user_id, created_at
		FROM user_customers
		WHERE user_id = $1
		ORDER BY created_at, customer_id
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find edges by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("failed to find user_customers: %w", err)
	}

	return r.collect(rows)
}

func (r *customerUserRepository) collect(rows pgx.Rows) ([]*entity.CustomerUser, error) {
	defer rows.Close()

	var edges []*entity.CustomerUser
	for rows.Next() {
		var edge entity.CustomerUser
		if err := rows.Scan(&edge.CustomerID, &edge.UserID, &edge.CreatedAt); err != nil {
			r.log.Error("Failed to scan user_customers row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan user_customers: %w", err)
		}
		edges = append(edges, &edge)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user_customers rows: %w", err)
	}

	return edges, nil
}

func (r *customerUserRepository) Exists(ctx context.Context, customerID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_customers WHERE customer_id = $1 AND user_id = $2)`

	var exists bool
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, customerID, userID).Scan(&exists); err != nil {
		r.log.Error("Failed to check edge", zap.Error(err))
		return false, fmt.Errorf("failed to check user_customers: %w", err)
	}

	return exists, nil
}

func (r *customerUserRepository) AttachBatch(ctx context.Context, edges []*entity.CustomerUser) error {
	if len(edges) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO user_customers (customer_id, user_id, created_at) VALUES `
	args := []interface{}{}

	for i, edge := range edges {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3)

		args = append(args, edge.CustomerID, edge.UserID, edge.CreatedAt)
	}
	query += ` ON CONFLICT (customer_id, user_id) DO NOTHING`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to attach batch",
			zap.Error(err),
			zap.Int("count", len(edges)),
		)
		return fmt.Errorf("failed to attach batch user_customers: %w", err)
	}

	return nil
}
