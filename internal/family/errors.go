package family

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrUnresolvedReference matches every *UnresolvedReferenceError.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// NotFoundError reports a person id that does not exist.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("person %d not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UnresolvedReferenceError reports a parent id that is neither 0 nor an
// existing person, or that points at the person itself.
type UnresolvedReferenceError struct {
	Field string // "Mother ID" or "Father ID"
	ID    int    // the person holding the reference
	Ref   int    // the offending parent id
}

func (e *UnresolvedReferenceError) Error() string {
	if e.ID == e.Ref {
		return fmt.Sprintf("%s of person %d: a person cannot be their own parent", e.Field, e.ID)
	}
	return fmt.Sprintf("%s of person %d: no person with id %d", e.Field, e.ID, e.Ref)
}

// Is makes errors.Is(err, ErrUnresolvedReference) succeed.
func (e *UnresolvedReferenceError) Is(target error) bool { return target == ErrUnresolvedReference }

// ErrParentSex matches every *ParentSexError.
var ErrParentSex = errors.New("parent has the wrong sex")

// ParentSexError reports a mother who is recorded as male or a father who
// is recorded as female.
type ParentSexError struct {
	Field string // "Mother ID" or "Father ID"
	ID    int    // the child
	Ref   int    // the parent
}

func (e *ParentSexError) Error() string {
	want := "female"
	if e.Field == "Father ID" {
		want = "male"
	}
	return fmt.Sprintf("%s of person %d: person %d is not %s", e.Field, e.ID, e.Ref, want)
}

// Is makes errors.Is(err, ErrParentSex) succeed.
func (e *ParentSexError) Is(target error) bool { return target == ErrParentSex }
