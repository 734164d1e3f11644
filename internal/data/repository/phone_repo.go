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

type PhoneRepository interface {
	Create(ctx context.Context, phone *entity.Phone) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Phone, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Phone, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, phone *entity.Phone) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type phoneRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPhoneRepository(db database.PgxIface, log *zap.Logger) PhoneRepository {
	return &phoneRepository{
		db:  db,
		log: log.With(zap.String("repository", "phone")),
	}
}

const phoneColumns = `id, model, manufacturer, processor, ram, storage_capacity, camera_details,
	battery_life, screen_size, price, stock_quantity, release_date, created_at, updated_at`

func scanPhone(row pgx.Row) (*entity.Phone, error) {
	var p entity.Phone
	err := row.Scan(
		&p.ID,
		&p.Model,
		&p.Manufacturer,
		&p.Processor,
		&p.RAM,
		&p.StorageCapacity,
		&p.CameraDetails,
		&p.BatteryLife,
		&p.ScreenSize,
		&p.Price,
		&p.StockQuantity,
		&p.ReleaseDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *phoneRepository) Create(ctx context.Context, phone *entity.Phone) error {
	query := `
		INSERT INTO phones (` + phoneColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		phone.ID,
		phone.Model,
		phone.Manufacturer,
		phone.Processor,
		phone.RAM,
		phone.StorageCapacity,
		phone.CameraDetails,
		phone.BatteryLife,
		phone.ScreenSize,
		phone.Price,
		phone.StockQuantity,
		phone.ReleaseDate,
		phone.CreatedAt,
		phone.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create phone",
			zap.Error(err),
			zap.String("model", phone.Model),
		)
		return fmt.Errorf("create phone %s: %w", phone.Model, err)
	}

	return nil
}

func (r *phoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Phone, error) {
	query := `SELECT ` + phoneColumns + ` FROM phones WHERE id = $1`

	phone, err := scanPhone(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find phone by ID",
			zap.Error(err),
			zap.String("phone_id", id.String()),
		)
		return nil, fmt.Errorf("find phone by ID %s: %w", id.String(), err)
	}

	return phone, nil
}

func (r *phoneRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Phone, error) {
	query := `SELECT ` + phoneColumns + ` FROM phones ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all phones",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all phones limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var phones []*entity.Phone
	for rows.Next() {
		phone, err := scanPhone(rows)
		if err != nil {
			r.log.Error("Failed to scan phone row", zap.Error(err))
			return nil, fmt.Errorf("scan phone row: %w", err)
		}
		phones = append(phones, phone)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate phone rows: %w", err)
	}

	return phones, nil
}

func (r *phoneRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM phones`).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting phones", zap.Error(err))
		return 0, fmt.Errorf("count all phones: %w", err)
	}

	return count, nil
}

func (r *phoneRepository) Update(ctx context.Context, phone *entity.Phone) error {
	query := `
		UPDATE phones
		SET model = $2, manufacturer = $3, processor = $4, ram = $5,
		    storage_capacity = $6, camera_details = $7, battery_life = $8,
		    screen_size = $9, price = $10, stock_quantity = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		phone.ID,
		phone.Model,
		phone.Manufacturer,
		phone.Processor,
		phone.RAM,
		phone.StorageCapacity,
		phone.CameraDetails,
		phone.BatteryLife,
		phone.ScreenSize,
		phone.Price,
		phone.StockQuantity,
		phone.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update phone",
			zap.Error(err),
			zap.String("phone_id", phone.ID.String()),
		)
		return fmt.Errorf("update phone %s: %w", phone.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("phone %s: %w", phone.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *phoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM phones WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete phone",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete phone %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("phone %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Phone deleted", zap.String("id", id.String()))
	return nil
}
