package dbx

import (
	"strconv"
	"strings"
)

// Dialect names the SQL flavour a repository talks to.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// GooseDialect returns the dialect name goose expects for migrations.
func (d Dialect) GooseDialect() string {
	if d == DialectSQLite {
		return "sqlite3"
	}
	return "pgx"
}

// Rebind rewrites the '?' placeholders of query into the form used by d.
// Repositories write queries with '?' and rebind them once per call.
// Question marks inside single-quoted literals are left alone.
func Rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ContainsCI is a predicate matching col against a '?' argument as a
// case-insensitive substring. The argument must go through EscapeLike.
func ContainsCI(col string) string {
	return "LOWER(" + col + `) LIKE '%' || LOWER(CAST(? AS TEXT)) || '%' ESCAPE '\'`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Paginate returns the LIMIT/OFFSET tail for a query and its arguments.
// A negative limit means no limit.
func Paginate(d Dialect, skip, limit int) (string, []any) {
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit >= 0:
		return " LIMIT ? OFFSET ?", []any{limit, skip}
	case skip == 0:
		return "", nil
	case d == DialectSQLite:
		return " LIMIT -1 OFFSET ?", []any{skip}
	default:
		return " OFFSET ?", []any{skip}
	}
}
