package repository

import (
	"context"
	"fmt"

	"bilemo-api/pkg/database"

	"go.uber.org/zap"
)

// TxManager runs a unit of work. Repositories called with the ctx passed to
// fn join the same transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// HealthChecker reports whether the store answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type txManager struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTxManager(db database.PgxIface, log *zap.Logger) TxManager {
	return &txManager{
		db:  db,
		log: log.With(zap.String("repository", "tx")),
	}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := database.TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		m.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		// no-op once committed
		_ = tx.Rollback(ctx)
	}()

	if err := fn(database.ContextWithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		m.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
