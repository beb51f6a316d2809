package zsq

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx is a running transaction; it executes statements like DB does.
// Transactions don't nest: what a nested "begin" does is up to the
// database engine, and Tx deliberately has no TX method.
type Tx struct {
	tx *sql.Tx
	db *DB
}

// Exec is like DB.Exec, inside the transaction.
func (tx *Tx) Exec(ctx context.Context, template string, values ...Value) (*Result, error) {
	return execImpl(ctx, tx.db, tx.tx, template, values)
}

// TX runs fn in a transaction.
//
// The transaction is committed if fn returns nil, and rolled back if it
// doesn't; in that case fn's error is returned unchanged. Exactly one
// begin/commit or begin/rollback happens per call.
func (db *DB) TX(ctx context.Context, fn func(context.Context, *Tx) error) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("zsq.TX: %w", err)
	}

	defer tx.Rollback()

	err = fn(ctx, &Tx{tx: tx, db: db})
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("zsq.TX commit: %w", err)
	}
	return nil
}
