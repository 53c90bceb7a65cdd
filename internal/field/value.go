package field

import "fmt"

// Literals used to represent sentinel states in serialized form.
const (
	UnknownLiteral = "?"
	AbsentLiteral  = ""
)

// State describes whether a Value holds data.
type State uint8

const (
	// StateAbsent means the field does not apply (e.g. a living person's death date).
	StateAbsent State = iota
	// StateUnknown means the value exists but was never recorded.
	StateUnknown
	// StateKnown means the value is recorded.
	StateKnown
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateUnknown:
		return "unknown"
	case StateKnown:
		return "known"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Value is a tagged optional: Absent, Unknown, or Known(v).
// The zero value is Absent.
type Value[T comparable] struct {
	state State
	v     T
}

// Known returns a Value holding v.
func Known[T comparable](v T) Value[T] {
	return Value[T]{state: StateKnown, v: v}
}

// Unknown returns a Value marked as never recorded.
func Unknown[T comparable]() Value[T] {
	return Value[T]{state: StateUnknown}
}

// Absent returns a Value marked as not applicable.
func Absent[T comparable]() Value[T] {
	return Value[T]{state: StateAbsent}
}

// State returns the value's state.
func (v Value[T]) State() State { return v.state }

// IsKnown reports whether v holds data.
func (v Value[T]) IsKnown() bool { return v.state == StateKnown }

// IsUnknown reports whether v was never recorded.
func (v Value[T]) IsUnknown() bool { return v.state == StateUnknown }

// IsAbsent reports whether v does not apply.
func (v Value[T]) IsAbsent() bool { return v.state == StateAbsent }

// Get returns the held value and whether it is known.
func (v Value[T]) Get() (T, bool) {
	return v.v, v.state == StateKnown
}

// OrElse returns the held value, or def when v is not known.
func (v Value[T]) OrElse(def T) T {
	if v.state == StateKnown {
		return v.v
	}
	return def
}

// OrElseString formats the held value, or returns def when v is not known.
func (v Value[T]) OrElseString(def string) string {
	if v.state == StateKnown {
		return fmt.Sprint(v.v)
	}
	return def
}

// Equal reports whether two values have the same state and, when known, the
// same data.
func (v Value[T]) Equal(o Value[T]) bool {
	if v.state != o.state {
		return false
	}
	return v.state != StateKnown || v.v == o.v
}

// String renders the serialized form: "?" for unknown, "" for absent.
func (v Value[T]) String() string {
	switch v.state {
	case StateKnown:
		return fmt.Sprint(v.v)
	case StateUnknown:
		return UnknownLiteral
	default:
		return AbsentLiteral
	}
}
