package utils

import (
	"strings"
)

// Storage backend names.
const (
	BackendCSV      = "csv"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendJSON     = "json"
)

// Backends lists the canonical backend names in display order.
func Backends() []string {
	return []string{BackendCSV, BackendSQLite, BackendPostgres, BackendJSON}
}

// NormalizeBackend normalizes a storage backend name.
// Accepts various aliases for the supported backends:
// - "text", "delimited", "file", "csv" -> "csv"
// - "sqlite3", "db", "sqlite" -> "sqlite"
// - "pg", "postgresql", "pgx", "postgres" -> "postgres"
// Returns the normalized name and a boolean indicating if the input was valid.
func NormalizeBackend(input string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "csv", "text", "delimited", "file":
		return BackendCSV, true
	case "sqlite", "sqlite3", "db":
		return BackendSQLite, true
	case "postgres", "postgresql", "pg", "pgx":
		return BackendPostgres, true
	case "json":
		return BackendJSON, true
	default:
		return s, false
	}
}

// UnescapeDelimiter turns the escape spellings accepted on the command line
// and in environment variables into the literal delimiter.
// "\t", "tab", "\n", "newline" and "\r\n" are recognised; anything else is
// returned unchanged.
func UnescapeDelimiter(s string) string {
	switch strings.ToLower(s) {
	case `\t`, "tab":
		return "\t"
	case `\n`, "newline", "lf":
		return "\n"
	case `\r\n`, "crlf":
		return "\r\n"
	case "comma":
		return ","
	case "semicolon":
		return ";"
	case "pipe":
		return "|"
	default:
		return s
	}
}
