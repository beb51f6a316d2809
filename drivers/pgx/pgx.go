// Package pgx provides a zsq driver for PostgreSQL.
//
// This uses https://github.com/jackc/pgx through database/sql.
package pgx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"zgo.at/zsq/drivers"
)

func init() {
	drivers.RegisterDriver(driver{})
}

type driver struct{}

func (driver) Name() string    { return "pgx" }
func (driver) Dialect() string { return "postgresql" }

func (driver) ErrUnique(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (driver) Connect(ctx context.Context, connect string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connect)
	if err != nil {
		return nil, fmt.Errorf("pgx.Connect: %w", err)
	}
	db.SetMaxIdleConns(25)
	db.SetMaxOpenConns(25)
	return db, nil
}
