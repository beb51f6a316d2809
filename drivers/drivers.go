// Package drivers registers SQL drivers for zsq.Connect.
//
// Import the subpackage for the engine you use:
//
//	_ "zgo.at/zsq/drivers/sqlite3"
//	_ "zgo.at/zsq/drivers/pq"
//	_ "zgo.at/zsq/drivers/pgx"
//	_ "zgo.at/zsq/drivers/mysql"
package drivers

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// Driver for a SQL connection.
type Driver interface {
	// Name of this driver.
	Name() string

	// Dialect of the database engine; "sqlite", "postgresql", or "mysql".
	Dialect() string

	// Connect to the database with the given connect string, which has
	// everything up to and including "://" removed.
	Connect(ctx context.Context, connect string) (*sql.DB, error)

	// ErrUnique reports if this error is a UNIQUE constraint violation.
	ErrUnique(error) bool
}

var (
	drivers   []Driver
	driversMu sync.Mutex
)

// RegisterDriver registers a new Driver; this is usually called from a
// driver package's init.
func RegisterDriver(d Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()

	for _, have := range drivers {
		if have.Name() == d.Name() {
			panic(fmt.Sprintf("zsq.RegisterDriver: driver %q is already registered", d.Name()))
		}
	}
	drivers = append(drivers, d)
}

// Drivers returns the currently registered drivers.
func Drivers() []Driver {
	driversMu.Lock()
	defer driversMu.Unlock()
	return append([]Driver(nil), drivers...)
}

// Find a registered driver by dialect, and optionally by driver name for
// dialects with more than one driver (e.g. "postgresql+pgx"). With an
// empty name the first registered driver for the dialect wins.
func Find(dialect, name string) (Driver, bool) {
	driversMu.Lock()
	defer driversMu.Unlock()

	for _, d := range drivers {
		if d.Dialect() != dialect {
			continue
		}
		if name == "" || d.Name() == name {
			return d, true
		}
	}
	return nil, false
}
