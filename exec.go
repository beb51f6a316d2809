package zsq

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"zgo.at/zsq/internal/sqlscan"
)

// handle is the part of *sql.DB and *sql.Tx we need.
type handle interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

func execImpl(ctx context.Context, db *DB, h handle, template string, values []Value) (*Result, error) {
	fragments, args, err := Flatten(values, true)
	if err != nil {
		return nil, err
	}

	query, err := substitute(template, fragments)
	if err != nil {
		return nil, err
	}
	// Log before rebinding: ApplyParams works on "?" placeholders.
	if db.log != nil {
		fmt.Fprintln(db.log, "zsq:", ApplyParams(query, args...))
	}
	query = db.dialect.Rebind(query)

	// Statements prepared inside a transaction belong to that transaction,
	// so the cache only serves the plain connection.
	cache := db.stmts
	if _, ok := h.(*sql.Tx); ok {
		cache = nil
	}

	var (
		stmt   *sql.Stmt
		cached bool
	)
	if cache != nil {
		stmt, cached = cache.Get(query)
	}
	if stmt == nil {
		// Driver errors from here on are the driver's own; they're returned
		// as-is so the caller sees the root cause.
		stmt, err = h.PrepareContext(ctx, query)
		if err != nil {
			return nil, err
		}
		if cache != nil {
			cache.Add(query, stmt)
			cached = true
		}
	}

	res := &Result{sql: query, stmt: stmt, ownStmt: !cached}
	if returnsRows(query) {
		res.rows, err = stmt.QueryContext(ctx, args...)
	} else {
		var r sql.Result
		r, err = stmt.ExecContext(ctx, args...)
		if err == nil {
			// Not all drivers support both; those that don't just report 0.
			if n, aerr := r.RowsAffected(); aerr == nil {
				res.affected = n
			}
			if id, ierr := r.LastInsertId(); ierr == nil {
				res.lastID = id
			}
		}
	}
	if err != nil {
		if res.ownStmt {
			stmt.Close()
		}
		return nil, err
	}
	return res, nil
}

// substitute replaces the Nth "?" in template with fragments[N]. The
// substituted fragments are never re-scanned, so placeholder characters
// inside them stay untouched.
func substitute(template string, fragments []string) (string, error) {
	pos := sqlscan.Placeholders(template)
	if len(pos) != len(fragments) {
		return "", fmt.Errorf("zsq.Exec: %w: query has %d placeholders but %d values were given",
			ErrMalformedArguments, len(pos), len(fragments))
	}
	if len(pos) == 0 {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template) + 8*len(fragments))
	prev := 0
	for n, p := range pos {
		b.WriteString(template[prev:p])
		b.WriteString(fragments[n])
		prev = p + 1
	}
	b.WriteString(template[prev:])
	return b.String(), nil
}

// returnsRows reports whether this statement produces a result set, which
// decides if it's sent as a query or as an exec. DML with a "returning"
// clause counts as a query; "returning" inside a string literal does not.
func returnsRows(query string) bool {
	q := strings.ToLower(skipLeadingComments(query))
	i := strings.IndexAny(q, " \t\n\r(")
	if i == -1 {
		i = len(q)
	}
	switch q[:i] {
	case "select", "with", "values", "show", "explain", "pragma", "describe", "desc":
		return true
	case "insert", "update", "delete":
		return sqlscan.HasKeyword(q, "returning")
	}
	return false
}

func skipLeadingComments(query string) string {
	for {
		query = strings.TrimLeft(query, " \t\n\r")
		switch {
		case strings.HasPrefix(query, "--"):
			i := strings.IndexByte(query, '\n')
			if i == -1 {
				return ""
			}
			query = query[i+1:]
		case strings.HasPrefix(query, "/*"):
			i := strings.Index(query, "*/")
			if i == -1 {
				return ""
			}
			query = query[i+2:]
		default:
			return query
		}
	}
}
