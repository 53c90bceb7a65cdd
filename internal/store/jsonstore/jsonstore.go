package jsonstore

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/familytree-go/internal/codec"
	"github.com/nibzard/familytree-go/internal/store"
)

// SchemaVersion is the only document version understood.
const SchemaVersion = 1

const schemaURL = "https://familytree.local/people.schema.json"

//go:embed people.schema.json
var schemaJSON string

// File is the document structure.
type File struct {
	SchemaVersion int                 `json:"schema_version"`
	Family        string              `json:"family"`
	ExportedAt    *time.Time          `json:"exported_at,omitempty"`
	People        []map[string]string `json:"people"`
}

// ValidationError is one schema violation.
type ValidationError struct {
	Path string // dotted path to the offending value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DocumentError reports a document that failed schema validation. It
// matches codec.ErrSchemaMismatch.
type DocumentError struct {
	Path   string
	Errors []error
}

func (e *DocumentError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: invalid document: %s", e.Path, strings.Join(msgs, "; "))
}

// Is makes errors.Is(err, codec.ErrSchemaMismatch) succeed.
func (e *DocumentError) Is(target error) bool { return target == codec.ErrSchemaMismatch }

// Unwrap exposes the individual violations.
func (e *DocumentError) Unwrap() []error { return e.Errors }

var compiled *jsonschema.Schema

func schema() (*jsonschema.Schema, error) {
	if compiled != nil {
		return compiled, nil
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	compiled = s
	return s, nil
}

// Validate checks raw JSON against the document schema and returns every
// violation found.
func Validate(data []byte) []error {
	s, err := schema()
	if err != nil {
		return []error{err}
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []error{&ValidationError{Err: fmt.Errorf("parse document: %w", err)}}
	}
	if err := s.Validate(doc); err != nil {
		var errs []error
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			collectSchemaErrors(&errs, ve)
		} else {
			errs = append(errs, err)
		}
		return errs
	}
	return nil
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: fieldPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// fieldPath turns a schema instance location such as "/people/0/is_male"
// into the dotted form "people[0].is_male" used in ValidationError.
func fieldPath(loc string) string {
	var b strings.Builder
	for _, seg := range strings.Split(strings.TrimPrefix(loc, "#"), "/") {
		if seg == "" {
			continue
		}
		seg = strings.NewReplacer("~1", "/", "~0", "~").Replace(seg)
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Load reads and validates the document at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if errs := Validate(data); len(errs) > 0 {
		return nil, &DocumentError{Path: path, Errors: errs}
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &f, nil
}

// Save writes the document to path with 2-space indentation.
func (f *File) Save(path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return store.WriteFileAtomic(path, buf.Bytes())
}

// Table converts the people list into record rows in column order.
func (f *File) Table() store.Table {
	t := store.Table{Header: codec.Columns()}
	for _, p := range f.People {
		row := make([]string, len(t.Header))
		for i, col := range t.Header {
			row[i] = p[col]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FromTable builds a document from record rows.
func FromTable(family string, t store.Table) (*File, error) {
	cols := make([]string, len(t.Header))
	for i, h := range t.Header {
		idx, ok := codec.Lookup(h)
		if !ok {
			return nil, &codec.SchemaMismatchError{Reason: fmt.Sprintf("unknown column %q", h)}
		}
		cols[i] = codec.Fields[idx].Column
	}
	now := time.Now().UTC().Truncate(time.Second)
	f := &File{SchemaVersion: SchemaVersion, Family: family, ExportedAt: &now, People: make([]map[string]string, 0, len(t.Rows))}
	for n, row := range t.Rows {
		if len(row) != len(cols) {
			return nil, &codec.SchemaMismatchError{Reason: fmt.Sprintf("row %d has %d fields, want %d", n+1, len(row), len(cols))}
		}
		p := make(map[string]string, len(cols))
		for i, col := range cols {
			p[col] = row[i]
		}
		f.People = append(f.People, p)
	}
	return f, nil
}

// Store is a JSON document backend.
type Store struct {
	path   string
	family string
}

// New returns a Store for the document at path. family is recorded in
// documents written by the store.
func New(path, family string) *Store {
	return &Store{path: path, family: family}
}

// Read loads the document. A missing file reads as an empty table.
func (s *Store) Read(ctx context.Context) (store.Table, error) {
	if err := ctx.Err(); err != nil {
		return store.Table{}, err
	}
	f, err := Load(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store.Table{}, nil
		}
		return store.Table{}, err
	}
	return f.Table(), nil
}

// Write replaces the document.
func (s *Store) Write(ctx context.Context, t store.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := FromTable(s.family, t)
	if err != nil {
		return err
	}
	return f.Save(s.path)
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

var _ store.Store = (*Store)(nil)
