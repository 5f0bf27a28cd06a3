package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type contextKey string

const (
	// ScopeKey is the context key for storing the scoped database handle.
	ScopeKey contextKey = "dbScope"
)

// DBTX is satisfied by a pooled connection, the pool itself, and pgx.Tx,
// so repositories run unchanged inside and outside of a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetScope retrieves the scoped database handle from context.
// Returns nil and false if not present.
func GetScope(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(ScopeKey).(*Scope)
	return scope, ok
}

// SetScope stores the scoped database handle in context.
func SetScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, ScopeKey, scope)
}

// InTransaction reports whether ctx carries a transaction scope.
func InTransaction(ctx context.Context) bool {
	scope, ok := GetScope(ctx)
	return ok && scope.tx != nil
}
