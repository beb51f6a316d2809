package zsq

import (
	"database/sql"
	"fmt"
	"strings"
	"text/tabwriter"
)

// Row is a single result row, keyed by column name.
type Row map[string]any

// Result is the outcome of one Exec call.
//
// The affected-row count and last insert id are captured when the
// statement runs; reading them never touches the rows. Everything else
// (All, First, Count, Value, Index, iteration, String) materializes the
// full row set on first use and serves the cached rows from then on.
//
// A Result is read-only and is not safe for concurrent use.
type Result struct {
	sql      string
	stmt     *sql.Stmt
	ownStmt  bool
	rows     *sql.Rows
	affected int64
	lastID   int64

	done   bool // row set fetched
	merr   error
	cols   []string
	all    []Row
	pos    int
	closed bool
}

// RowsAffected returns the number of rows changed by the statement, or 0
// for statements that return rows.
func (r *Result) RowsAffected() int64 { return r.affected }

// LastInsertID returns the id generated by the statement, or 0 when the
// driver or statement doesn't produce one.
func (r *Result) LastInsertID() int64 { return r.lastID }

// materialize drains the row set into memory. It runs at most once; the
// outcome (including a fetch error) is remembered.
func (r *Result) materialize() error {
	if r.done {
		return r.merr
	}
	r.done = true
	if r.rows == nil {
		return nil
	}
	defer func() {
		r.rows.Close()
		r.rows = nil
	}()

	cols, err := r.rows.Columns()
	if err != nil {
		r.merr = err
		return err
	}
	r.cols = cols

	for r.rows.Next() {
		var (
			vals = make([]any, len(cols))
			ptrs = make([]any, len(cols))
		)
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := r.rows.Scan(ptrs...); err != nil {
			r.merr = err
			return err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		r.all = append(r.all, row)
	}
	if err := r.rows.Err(); err != nil {
		r.merr = err
		return err
	}
	return nil
}

// All returns all rows in order.
func (r *Result) All() ([]Row, error) {
	if err := r.materialize(); err != nil {
		return nil, err
	}
	return r.all, nil
}

// First returns the first row, or nil if there are no rows.
func (r *Result) First() (Row, error) {
	if err := r.materialize(); err != nil {
		return nil, err
	}
	if len(r.all) == 0 {
		return nil, nil
	}
	return r.all[0], nil
}

// Count returns the number of rows.
func (r *Result) Count() (int, error) {
	if err := r.materialize(); err != nil {
		return 0, err
	}
	return len(r.all), nil
}

// Value returns the first column of the first row, or nil if there are no
// rows or no columns. Useful for "select count(*) …" and friends.
func (r *Result) Value() (any, error) {
	if err := r.materialize(); err != nil {
		return nil, err
	}
	if len(r.all) == 0 || len(r.cols) == 0 {
		return nil, nil
	}
	return r.all[0][r.cols[0]], nil
}

// Index returns the row at position i, or ErrIndexRange.
func (r *Result) Index(i int) (Row, error) {
	if err := r.materialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(r.all) {
		return nil, fmt.Errorf("zsq.Result.Index: %w: %d with %d rows", ErrIndexRange, i, len(r.all))
	}
	return r.all[i], nil
}

// Set always fails: a Result can't be modified once constructed.
func (r *Result) Set(int, Row) error {
	return fmt.Errorf("zsq.Result.Set: %w", ErrImmutableResult)
}

// Unset always fails: a Result can't be modified once constructed.
func (r *Result) Unset(int) error {
	return fmt.Errorf("zsq.Result.Unset: %w", ErrImmutableResult)
}

// Next advances the cursor to the next row, reporting whether there is
// one. Since the rows are cached the iteration can be restarted with
// Reset. Check Err when Next returns false.
func (r *Result) Next() bool {
	if r.materialize() != nil {
		return false
	}
	if r.pos >= len(r.all) {
		// Park the cursor past the last row, so Row returns nil until
		// Reset.
		r.pos = len(r.all) + 1
		return false
	}
	r.pos++
	return true
}

// Row returns the row the cursor is on, or nil before the first Next or
// after the last.
func (r *Result) Row() Row {
	if r.pos == 0 || r.pos > len(r.all) {
		return nil
	}
	return r.all[r.pos-1]
}

// Err returns the error that stopped iteration, if any.
func (r *Result) Err() error { return r.merr }

// Reset restarts iteration from the first row.
func (r *Result) Reset() { r.pos = 0 }

// Close releases the statement handle and any unread rows. It's safe to
// call more than once.
func (r *Result) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.rows != nil {
		err = r.rows.Close()
		r.rows = nil
	}
	if r.ownStmt && r.stmt != nil {
		if cerr := r.stmt.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// String renders the result for debugging: row count, affected count,
// last insert id, the executed SQL, and the first row.
func (r *Result) String() string {
	err := r.materialize()

	b := new(strings.Builder)
	fmt.Fprintf(b, "zsq.Result: %d rows; %d affected; last id %d\n", len(r.all), r.affected, r.lastID)
	for _, line := range strings.Split(deIndent(r.sql), "\n") {
		fmt.Fprintf(b, "    | %s\n", line)
	}
	if err != nil {
		fmt.Fprintf(b, "    error: %s\n", err)
		return b.String()
	}
	if len(r.all) > 0 {
		t := tabwriter.NewWriter(b, 4, 4, 2, ' ', 0)
		for _, c := range r.cols {
			fmt.Fprintf(t, "    %s\t%v\n", c, formatParam(r.all[0][c], false))
		}
		t.Flush()
	}
	return b.String()
}
