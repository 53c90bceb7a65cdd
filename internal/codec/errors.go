package codec

import (
	"errors"
	"fmt"
)

// ErrSchemaMismatch matches every *SchemaMismatchError via errors.Is.
var ErrSchemaMismatch = errors.New("schema mismatch")

// SchemaMismatchError reports stored data whose shape does not match the
// record layout.
type SchemaMismatchError struct {
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return "schema mismatch: " + e.Reason
}

// Is makes errors.Is(err, ErrSchemaMismatch) succeed.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

func mismatch(format string, args ...any) error {
	return &SchemaMismatchError{Reason: fmt.Sprintf(format, args...)}
}
