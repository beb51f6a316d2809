// Package pq provides a zsq driver for PostgreSQL.
//
// This uses https://github.com/lib/pq
package pq

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"zgo.at/zsq/drivers"
)

func init() {
	drivers.RegisterDriver(driver{})
}

type driver struct{}

func (driver) Name() string    { return "pq" }
func (driver) Dialect() string { return "postgresql" }

func (driver) ErrUnique(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (driver) Connect(ctx context.Context, connect string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connect)
	if err != nil {
		return nil, fmt.Errorf("pq.Connect: %w", err)
	}
	db.SetMaxIdleConns(25)
	db.SetMaxOpenConns(25)
	return db, nil
}
