// Package dbx holds the database seam the repository layer is built on:
// DBTX, satisfied by both *sql.DB and *sql.Tx, lets the same repository
// code run inside or outside a transaction, and WithTx drives the
// begin/commit/rollback lifecycle around a callback.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql the repositories call. Passing a *sql.Tx
// scopes every repository call made through it to that transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// when it returns an error or panics (the panic is rethrown). Repositories
// bound to the tx handle, e.g. repomanager.Users(tx), participate in it:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := m.Users(tx)
//	    ...
//	    return nil
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
