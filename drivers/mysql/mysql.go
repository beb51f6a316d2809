// Package mysql provides a zsq driver for MySQL and MariaDB.
//
// This uses https://github.com/go-sql-driver/mysql
//
// Client-side parameter interpolation is always off: parameters are sent
// separately from the statement, never spliced into it by the client.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"zgo.at/zsq/drivers"
)

func init() {
	drivers.RegisterDriver(driver{})
}

type driver struct{}

func (driver) Name() string    { return "mysql" }
func (driver) Dialect() string { return "mysql" }

func (driver) ErrUnique(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062 // ER_DUP_ENTRY
}

func (driver) Connect(ctx context.Context, connect string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(connect)
	if err != nil {
		return nil, fmt.Errorf("mysql.Connect: %w", err)
	}
	cfg.InterpolateParams = false
	cfg.ParseTime = true

	conn, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql.Connect: %w", err)
	}
	return sql.OpenDB(conn), nil
}
