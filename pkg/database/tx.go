package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type txKey struct{}

// ContextWithTx binds tx to ctx so repositories called with it join the transaction.
func ContextWithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok && tx != nil
}

// Conn returns the transaction bound to ctx, or db.
func Conn(ctx context.Context, db PgxIface) Querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}
