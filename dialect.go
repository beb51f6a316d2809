package zsq

import (
	"strconv"
	"strings"

	"zgo.at/zsq/internal/sqlscan"
)

// Dialect is the SQL dialect of the underlying engine; this determines
// the placeholder style sent over the wire.
type Dialect uint8

const (
	DialectUnknown Dialect = iota
	DialectSQLite
	DialectPostgreSQL
	DialectMySQL
)

func (d Dialect) String() string {
	switch d {
	case DialectSQLite:
		return "sqlite"
	case DialectPostgreSQL:
		return "postgresql"
	case DialectMySQL:
		return "mysql"
	default:
		return "unknown"
	}
}

// Rebind rewrites "?" placeholders to the dialect's placeholder style:
// $1, $2, … for PostgreSQL, "?" unchanged for everything else.
// Placeholders inside literals and comments are left alone.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgreSQL {
		return query
	}

	pos := sqlscan.Placeholders(query)
	if len(pos) == 0 {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 2*len(pos))
	prev := 0
	for n, p := range pos {
		b.WriteString(query[prev:p])
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n + 1))
		prev = p + 1
	}
	b.WriteString(query[prev:])
	return b.String()
}
