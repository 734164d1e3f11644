package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		roles TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_customers (
		customer_id UUID NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (customer_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_customers_user_id ON user_customers (user_id)`,
	`CREATE TABLE IF NOT EXISTS phones (
		id UUID PRIMARY KEY,
		model VARCHAR(255) NOT NULL,
		manufacturer VARCHAR(255) NOT NULL,
		processor VARCHAR(255) NOT NULL,
		ram VARCHAR(255) NOT NULL,
		storage_capacity VARCHAR(255) NOT NULL,
		camera_details VARCHAR(255) NOT NULL,
		battery_life VARCHAR(255) NOT NULL,
		screen_size VARCHAR(255) NOT NULL,
		price VARCHAR(255) NOT NULL,
		stock_quantity VARCHAR(255),
		release_date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the tables the API needs when they are missing.
func Migrate(ctx context.Context, db Querier) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
