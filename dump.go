package zsq

import (
	"fmt"
	"strings"
	"time"

	"zgo.at/zstd/zbyte"
	"zgo.at/zsq/internal/sqlscan"
)

// Date format for SQL.
const Date = "2006-01-02 15:04:05"

// ApplyParams replaces parameter placeholders in query with the values.
//
// This is ONLY for printf-debugging, and NOT for actual usage. Security
// was NOT a consideration when writing this. Parameters in SQL are sent
// separately over the wire and are not interpolated, so it's very
// different.
func ApplyParams(query string, params ...any) string {
	pos := sqlscan.Placeholders(query)
	for n := len(pos) - 1; n >= 0; n-- {
		if n >= len(params) {
			continue
		}
		p := pos[n]
		query = query[:p] + formatParam(params[n], true) + query[p+1:]
	}
	query = deIndent(query)
	if !strings.HasSuffix(query, ";") {
		return query + ";"
	}
	return query
}

func formatParam(a any, quoted bool) string {
	if a == nil {
		return "NULL"
	}
	switch aa := a.(type) {
	case *string:
		if aa == nil {
			return "NULL"
		}
		a = *aa
	case *int64:
		if aa == nil {
			return "NULL"
		}
		a = *aa
	case *time.Time:
		if aa == nil {
			return "NULL"
		}
		a = *aa
	}

	switch aa := a.(type) {
	case time.Time:
		return formatParam(aa.Format(Date), quoted)
	case int, int64, float64:
		return fmt.Sprintf("%v", aa)
	case []byte:
		if zbyte.Binary(aa) {
			return fmt.Sprintf("%x", aa)
		}
		return formatParam(string(aa), quoted)
	case string:
		if quoted {
			return fmt.Sprintf("'%v'", strings.ReplaceAll(aa, "'", "''"))
		}
		return aa
	default:
		if quoted {
			return fmt.Sprintf("'%v'", aa)
		}
		return fmt.Sprintf("%v", aa)
	}
}

func deIndent(in string) string {
	indent := -1
	for _, line := range strings.Split(strings.TrimLeft(in, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, "\t "))
		if indent == -1 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.TrimSpace(in)
	}

	var b strings.Builder
	for i, line := range strings.Split(in, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if len(line) >= indent {
			line = line[indent:]
		}
		b.WriteString(line)
	}
	return strings.TrimSpace(b.String())
}
