// Package zsq is a thin convenience layer over database/sql.
//
// It does three things:
//
//  1. Expand a single "?" placeholder into multiple placeholders, so that
//     lists become IN clauses ("id in ?" → "id in (?, ?, ?)"), lists of
//     lists become row values, and keyed maps become update clauses
//     ("set ?" → "set `a` = ?, `b` = ?"). See Flatten.
//
//  2. Wrap the result of a statement in a lazily materialized Result,
//     which can be indexed, iterated, and projected (First, Value, Count)
//     without dealing with *sql.Rows directly.
//
//  3. Wrap multi-statement work in a commit/rollback helper (TX).
//
// It does not parse SQL, build queries, or map rows to structs.
package zsq

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DB is a connection to a SQL database.
type DB struct {
	db      *sql.DB
	dialect Dialect
	log     io.Writer
	stmts   *lru.Cache[string, *sql.Stmt]
}

// Options for New and Connect.
type Options struct {
	// Log writes every statement (with parameters applied, for debugging
	// only) to this writer before it's executed.
	Log io.Writer

	// StmtCache keeps up to this many prepared statements cached per
	// connection. 0 disables the cache, and every Exec prepares a new
	// statement which is released when the Result is closed.
	StmtCache int
}

// New creates a DB from an existing *sql.DB handle.
//
// Most code wants Connect; New is useful for connections set up elsewhere
// (such as test doubles).
func New(db *sql.DB, dialect Dialect, opts *Options) (*DB, error) {
	if db == nil {
		return nil, errors.New("zsq.New: db is nil")
	}
	d := &DB{db: db, dialect: dialect}
	if opts != nil {
		d.log = opts.Log
		if opts.StmtCache > 0 {
			c, err := lru.NewWithEvict(opts.StmtCache, func(_ string, s *sql.Stmt) {
				s.Close()
			})
			if err != nil {
				return nil, fmt.Errorf("zsq.New: %w", err)
			}
			d.stmts = c
		}
	}
	return d, nil
}

// SQLDialect returns the SQL dialect for this connection.
func (db *DB) SQLDialect() Dialect { return db.dialect }

// DBSQL returns the underlying *sql.DB.
func (db *DB) DBSQL() *sql.DB { return db.db }

// Close the connection, releasing any cached prepared statements first.
func (db *DB) Close() error {
	if db.stmts != nil {
		db.stmts.Purge() // Evict callback closes the statements.
	}
	return db.db.Close()
}

// Exec flattens values, substitutes them in the template, and executes the
// statement. See the package documentation for the placeholder rules.
//
// The number of "?" placeholders in the template (string literals and
// comments don't count) must match the number of values exactly.
//
// The returned Result must be closed when done:
//
//	res, err := db.Exec(ctx, `select * from t where id in ?`, zsq.List(1, 2, 3))
//	if err != nil {
//	    return err
//	}
//	defer res.Close()
func (db *DB) Exec(ctx context.Context, template string, values ...Value) (*Result, error) {
	return execImpl(ctx, db, db.db, template, values)
}

// ErrNoRows reports if this error is sql.ErrNoRows.
func ErrNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
