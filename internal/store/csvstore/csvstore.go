// Package csvstore keeps a family in a delimited text file: one header line,
// then one line per record. Fields are never quoted, so a token containing
// either delimiter is rejected on write.
package csvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/familytree-go/internal/codec"
	"github.com/nibzard/familytree-go/internal/store"
)

// Default delimiters.
const (
	DefaultFieldDelimiter  = ","
	DefaultRecordDelimiter = "\n"
)

// Store is a delimited text file backend.
type Store struct {
	path        string
	fieldDelim  string
	recordDelim string
}

// Option configures a Store.
type Option func(*Store)

// WithDelimiters overrides the field and record delimiters. Empty values
// keep the defaults.
func WithDelimiters(field, record string) Option {
	return func(s *Store) {
		if field != "" {
			s.fieldDelim = field
		}
		if record != "" {
			s.recordDelim = record
		}
	}
}

// New returns a Store for path.
func New(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, fieldDelim: DefaultFieldDelimiter, recordDelim: DefaultRecordDelimiter}
	for _, opt := range opts {
		opt(s)
	}
	if s.fieldDelim == s.recordDelim || strings.Contains(s.recordDelim, s.fieldDelim) || strings.Contains(s.fieldDelim, s.recordDelim) {
		return nil, fmt.Errorf("field delimiter %q and record delimiter %q overlap", s.fieldDelim, s.recordDelim)
	}
	return s, nil
}

// Path returns the file path.
func (s *Store) Path() string { return s.path }

// Read loads the file. A missing file reads as an empty table.
func (s *Store) Read(ctx context.Context) (store.Table, error) {
	if err := ctx.Err(); err != nil {
		return store.Table{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store.Table{}, nil
		}
		return store.Table{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	var t store.Table
	for _, line := range strings.Split(string(data), s.recordDelim) {
		if s.recordDelim == "\n" {
			line = strings.TrimSuffix(line, "\r")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, s.fieldDelim)
		if t.Header == nil {
			t.Header = fields
			continue
		}
		t.Rows = append(t.Rows, fields)
	}
	return t, nil
}

// Write replaces the file contents. The data goes to a temporary file in
// the same directory which is then renamed over the target.
func (s *Store) Write(ctx context.Context, t store.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var b strings.Builder
	for _, row := range append([][]string{t.Header}, t.Rows...) {
		if err := codec.CheckDelimiter(row, s.fieldDelim); err != nil {
			return err
		}
		if err := codec.CheckDelimiter(row, s.recordDelim); err != nil {
			return err
		}
		b.WriteString(strings.Join(row, s.fieldDelim))
		b.WriteString(s.recordDelim)
	}

	return store.WriteFileAtomic(s.path, []byte(b.String()))
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

var _ store.Store = (*Store)(nil)
