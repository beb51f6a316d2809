// Package sqlite3 provides a zsq driver for SQLite.
//
// This uses https://github.com/mattn/go-sqlite3
package sqlite3

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"zgo.at/zsq/drivers"
)

func init() {
	drivers.RegisterDriver(driver{})
}

type driver struct{}

func (driver) Name() string    { return "sqlite3" }
func (driver) Dialect() string { return "sqlite" }

func (driver) ErrUnique(err error) bool {
	var sqlErr sqlite3.Error
	return errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func (driver) Connect(ctx context.Context, connect string) (*sql.DB, error) {
	file := connect
	if i := strings.IndexByte(file, '?'); i > -1 {
		file = file[:i]
	}
	if file != ":memory:" && !strings.HasPrefix(file, "file:") {
		err := os.MkdirAll(filepath.Dir(file), 0o755)
		if err != nil {
			return nil, fmt.Errorf("sqlite3.Connect: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", connect)
	if err != nil {
		return nil, fmt.Errorf("sqlite3.Connect: %w", err)
	}

	// SQLite only ever allows one writer; with more connections "database
	// is locked" errors get returned to the application.
	db.SetMaxOpenConns(1)
	return db, nil
}
