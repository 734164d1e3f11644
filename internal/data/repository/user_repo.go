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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.User, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user record
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := database.Conn(ctx, ur.db).Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, email, first_name, last_name, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(database.Conn(ctx, ur.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, email, first_name, last_name, created_at, updated_at
		FROM users
		WHERE id = ANY($1::uuid[])
		ORDER BY created_at, id
	`

	rows, err := database.Conn(ctx, ur.db).Query(ctx, query, uuidStrings(ids))
	if err != nil {
		ur.log.Error("Failed to find users by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find users by IDs: %w", err)
	}

	return ur.collect(rows)
}

// FindByCustomerID retrieves one page of the users linked to a customer
func (ur *userRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.created_at, u.updated_at
		FROM users u
		JOIN user_customers uc ON uc.user_id = u.id
		WHERE uc.customer_id = $1
		ORDER BY u.created_at, u.id
		LIMIT $2 OFFSET $3
	`

	rows, err := database.Conn(ctx, ur.db).Query(ctx, query, customerID, limit, offset)
	if err != nil {
		ur.log.Error("Failed to get users by customer",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find users of customer %s: %w", customerID.String(), err)
	}

	return ur.collect(rows)
}

func (ur *userRepository) collect(rows pgx.Rows) ([]*entity.User, error) {
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM user_customers WHERE customer_id = $1`

	var count int64
	err := database.Conn(ctx, ur.db).QueryRow(ctx, query, customerID).Scan(&count)
	if err != nil {
		ur.log.Error("Database error counting users",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count users of customer %s: %w", customerID.String(), err)
	}

	return count, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := database.Conn(ctx, ur.db).Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.UpdatedAt,
	)
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.ID.String(), ErrNotFound)
	}

	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, ur.db).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id.String(), ErrNotFound)
	}

	ur.log.Info("User deleted", zap.String("id", id.String()))
	return nil
}
