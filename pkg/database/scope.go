package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Scope wraps the handle repositories use for one unit of work: either a
// pooled connection or an open transaction.
type Scope struct {
	Conn DBTX

	conn *pgxpool.Conn
	tx   pgx.Tx
}

// Close releases the pooled connection. It is a no-op for transaction scopes,
// whose lifetime is owned by RunInTx.
func (s *Scope) Close() {
	if s.conn == nil {
		return
	}
	s.conn.Release()
	s.conn = nil
}

// Acquire takes a connection from the pool for a sequence of reads or
// single-statement writes. The returned Scope MUST be closed with defer scope.Close().
func (db *DB) Acquire(ctx context.Context) (*Scope, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &Scope{Conn: conn, conn: conn}, nil
}

// WithScope returns a context carrying a pooled connection scope.
// The cleanup function must be called when the scope is no longer needed.
func (db *DB) WithScope(ctx context.Context) (context.Context, func(), error) {
	scope, err := db.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	return SetScope(ctx, scope), scope.Close, nil
}

// TxRunner executes a function inside one database transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RunInTx begins a transaction, stores it in the context passed to fn and
// commits when fn returns nil. Any error rolls the whole unit back.
// When ctx already carries a transaction, fn joins it instead of nesting.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(SetScope(ctx, &Scope{Conn: tx, tx: tx})); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

var _ TxRunner = (*DB)(nil)
