// Package store defines the persistence boundary. A backend reads and writes
// whole tables of encoded record tokens; decoding stays in package codec.
package store

import (
	"context"
	"fmt"

	"github.com/nibzard/familytree-go/internal/codec"
	"github.com/nibzard/familytree-go/internal/family"
)

// Table is a header plus ordered rows of tokens. A backend with no data
// yet returns the zero Table.
type Table struct {
	Header []string
	Rows   [][]string
}

// Store reads and replaces a family's stored records.
type Store interface {
	// Read returns every stored row. Missing data is not an error.
	Read(ctx context.Context) (Table, error)
	// Write replaces the stored contents with t.
	Write(ctx context.Context, t Table) error
	// Close releases backend resources.
	Close() error
}

// Load reads s and builds the named family from it.
func Load(ctx context.Context, s Store, name string) (*family.Family, error) {
	t, err := s.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(t.Header) > 0 {
		if err := codec.CheckHeader(t.Header); err != nil {
			return nil, fmt.Errorf("read store: %w", err)
		}
	} else if len(t.Rows) > 0 {
		return nil, fmt.Errorf("read store: %w", &codec.SchemaMismatchError{Reason: "records without a header"})
	}
	return family.Load(name, t.Rows)
}

// Save replaces the contents of s with every record of f.
func Save(ctx context.Context, s Store, f *family.Family) error {
	t := Table{Header: codec.Header(), Rows: f.Rows()}
	if err := s.Write(ctx, t); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}
