// Package dbx holds the database/sql plumbing shared by the local key-value
// store: the DBTX handle and a transaction helper used for multi-key session
// writes.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is what kv.SQLiteStore runs its statements on. Both *sql.DB and
// *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFunc is the body of a transaction.
type TxFunc func(ctx context.Context, tx DBTX) error

// WithTx runs fn inside one transaction, so the session keys are written or
// dropped together. fn's error is returned as is when the rollback succeeds
// and joined with the rollback error otherwise. A panic in fn rolls back and
// is re-raised.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return kv.NewSQLiteStore(tx).Set(ctx, common.SessionUserKey, user)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return rollback(tx, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func rollback(tx *sql.Tx, cause error) error {
	rerr := tx.Rollback()
	if rerr == nil || errors.Is(rerr, sql.ErrTxDone) {
		return cause
	}
	return errors.Join(cause, fmt.Errorf("rollback tx: %w", rerr))
}
