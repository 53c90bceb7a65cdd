// Package sqlstore keeps each family in its own table of a relational
// database. SQLite (modernc.org/sqlite) and PostgreSQL (pgx) are supported.
//
// Every column holds the encoded record token as TEXT, plus an integer
// position column that preserves insertion order. A write replaces the whole
// table inside one transaction. Family names that differ only in case or in
// the choice of space, hyphen or underscore share a table; see TableName.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/nibzard/familytree-go/internal/codec"
	"github.com/nibzard/familytree-go/internal/store"
)

// Dialect selects placeholder syntax and catalog queries.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// PositionColumn orders rows.
const PositionColumn = "position"

// driverName maps a dialect to its registered database/sql driver.
func (d Dialect) driverName() (string, error) {
	switch d {
	case SQLite:
		return "sqlite", nil
	case Postgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported SQL dialect %q", d)
	}
}

func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// TableName derives a safe table identifier from a family name. The table
// name is the family's identity in the database: case is folded and spaces
// and hyphens become underscores, so "Smith Jones", "smith-jones" and
// "smith_jones" all name the same family. ListFamilies reports this form.
func TableName(family string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(family)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune('_')
		default:
			return "", fmt.Errorf("family name %q: character %q is not allowed in a table name", family, r)
		}
	}
	name := b.String()
	if !identRE.MatchString(name) {
		return "", fmt.Errorf("family name %q does not make a valid table name", family)
	}
	return name, nil
}

// Store is a table-per-family backend.
type Store struct {
	db      *sql.DB
	dialect Dialect
	table   string
	ownsDB  bool
}

// Open connects to dsn and returns a Store for the family's table.
// For SQLite the dsn is a file path.
func Open(ctx context.Context, dialect Dialect, dsn, family string) (*Store, error) {
	driver, err := dialect.driverName()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to %s database: %w", dialect, err)
	}
	s, err := New(db, dialect, family)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.ownsDB = true
	return s, nil
}

// New wraps an existing connection pool. Close does not close db.
func New(db *sql.DB, dialect Dialect, family string) (*Store, error) {
	if _, err := dialect.driverName(); err != nil {
		return nil, err
	}
	table, err := TableName(family)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, dialect: dialect, table: table}, nil
}

// Table returns the table name in use.
func (s *Store) Table() string { return s.table }

func quote(ident string) string {
	return `"` + ident + `"`
}

func (s *Store) exists(ctx context.Context) (bool, error) {
	var q string
	switch s.dialect {
	case Postgres:
		q = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1"
	default:
		q = "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
	}
	var n int
	if err := s.db.QueryRowContext(ctx, q, s.table).Scan(&n); err != nil {
		return false, fmt.Errorf("look up table %s: %w", s.table, err)
	}
	return n > 0, nil
}

// Read returns every row ordered by position. A missing table reads as an
// empty table. The header is the stored column list minus the position
// column, so a table created with a different layout fails header checks.
func (s *Store) Read(ctx context.Context) (store.Table, error) {
	ok, err := s.exists(ctx)
	if err != nil || !ok {
		return store.Table{}, err
	}

	// Order by the first column so a foreign layout reaches the column check.
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY 1", quote(s.table)))
	if err != nil {
		return store.Table{}, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return store.Table{}, fmt.Errorf("columns of %s: %w", s.table, err)
	}
	if len(cols) == 0 || !strings.EqualFold(cols[0], PositionColumn) {
		return store.Table{}, &codec.SchemaMismatchError{Reason: fmt.Sprintf("table %s has no leading %s column", s.table, PositionColumn)}
	}

	t := store.Table{Header: cols[1:]}
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return store.Table{}, fmt.Errorf("scan %s: %w", s.table, err)
		}
		row := make([]string, len(cols)-1)
		for i, v := range vals[1:] {
			row[i] = v.String
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return store.Table{}, fmt.Errorf("read %s: %w", s.table, err)
	}
	return t, nil
}

// Write drops and recreates the table with t's rows in one transaction.
func (s *Store) Write(ctx context.Context, t store.Table) error {
	cols := make([]string, len(t.Header))
	for i, h := range t.Header {
		idx, ok := codec.Lookup(h)
		if !ok {
			return &codec.SchemaMismatchError{Reason: fmt.Sprintf("unknown column %q", h)}
		}
		cols[i] = codec.Fields[idx].Column
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(s.table)); err != nil {
		return fmt.Errorf("drop %s: %w", s.table, err)
	}

	defs := []string{quote(PositionColumn) + " INTEGER PRIMARY KEY"}
	for _, c := range cols {
		defs = append(defs, quote(c)+" TEXT NOT NULL")
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quote(s.table), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create %s: %w", s.table, err)
	}

	names := []string{quote(PositionColumn)}
	marks := []string{s.dialect.placeholder(1)}
	for i, c := range cols {
		names = append(names, quote(c))
		marks = append(marks, s.dialect.placeholder(i+2))
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(s.table), strings.Join(names, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for pos, row := range t.Rows {
		if len(row) != len(cols) {
			return &codec.SchemaMismatchError{Reason: fmt.Sprintf("row %d has %d fields, want %d", pos+1, len(row), len(cols))}
		}
		args := make([]any, 0, len(row)+1)
		args = append(args, pos+1)
		for _, v := range row {
			args = append(args, v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", pos+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListFamilies connects to dsn and lists the family tables it holds.
func ListFamilies(ctx context.Context, dialect Dialect, dsn string) ([]string, error) {
	driver, err := dialect.driverName()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	defer db.Close()
	return (&Store{db: db, dialect: dialect}).Families(ctx)
}

// Families lists the tables that look like family tables.
func (s *Store) Families(ctx context.Context) ([]string, error) {
	var q string
	switch s.dialect {
	case Postgres:
		q = "SELECT table_name FROM information_schema.columns WHERE table_schema = current_schema() AND column_name = 'position' ORDER BY table_name"
	default:
		q = "SELECT name FROM sqlite_master WHERE type = 'table' AND sql LIKE '%\"position\" INTEGER PRIMARY KEY%' ORDER BY name"
	}
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list families: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Close closes the connection pool when Open created it.
func (s *Store) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

var _ store.Store = (*Store)(nil)
