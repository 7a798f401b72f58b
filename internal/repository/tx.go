package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohmpiriya/cinema-booking/pkg/metrics"
)

// Transactor runs a function inside one database transaction
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Querier is the subset of pgx shared by pools and transactions
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// txState is the open transaction and the hooks to run once it commits
type txState struct {
	tx          pgx.Tx
	afterCommit []func(ctx context.Context)
}

func stateFrom(ctx context.Context) *txState {
	state, _ := ctx.Value(txKey{}).(*txState)
	return state
}

func (s *txState) runAfterCommit(ctx context.Context) {
	for _, fn := range s.afterCommit {
		fn(ctx)
	}
}

// InTx reports whether ctx carries an open transaction
func InTx(ctx context.Context) bool {
	return stateFrom(ctx) != nil
}

// AfterCommit runs fn once the transaction on ctx commits, or right away
// when ctx carries none. Hooks are dropped on rollback.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if state := stateFrom(ctx); state != nil {
		state.afterCommit = append(state.afterCommit, fn)
		return
	}
	fn(ctx)
}

// querier returns the transaction stored on ctx, or the pool
func querier(ctx context.Context, pool *pgxpool.Pool) Querier {
	if state := stateFrom(ctx); state != nil && state.tx != nil {
		return state.tx
	}
	return pool
}

// PgxTransactor implements Transactor on a pgx pool.
// Repositories called with the ctx passed to fn join the transaction.
type PgxTransactor struct {
	pool *pgxpool.Pool
}

// NewPgxTransactor creates a new PgxTransactor
func NewPgxTransactor(pool *pgxpool.Pool) *PgxTransactor {
	return &PgxTransactor{pool: pool}
}

// WithinTx commits when fn returns nil and rolls back otherwise.
// Nested calls reuse the outer transaction.
func (t *PgxTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	start := time.Now()
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		metrics.RecordDBError(err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		metrics.RecordTx(start, err)
	}()

	state := &txState{tx: tx}
	if err = fn(context.WithValue(ctx, txKey{}, state)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		metrics.RecordDBError(err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	state.runAfterCommit(ctx)
	return nil
}
