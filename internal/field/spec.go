package field

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Spec validates one raw field value. The set of implementations is closed:
// IntSpec and StrSpec.
type Spec interface {
	// Label is the display name used in prompts and errors.
	Label() string
	// Validate returns the accepted (possibly case-folded) value, or an
	// *InvalidInputError.
	Validate(raw string) (string, error)
	// Describe summarizes the accepted input for prompt hints.
	Describe() string

	spec()
}

// Bound returns a pointer to n, for use as an IntSpec limit.
func Bound(n int) *int {
	return &n
}

// IntSpec accepts whole numbers, optionally limited to [Min, Max].
// A nil bound leaves that side unbounded.
type IntSpec struct {
	Name      string
	Min, Max  *int
	Sentinels []string
}

func (IntSpec) spec() {}

// Label returns the display name.
func (s IntSpec) Label() string { return s.Name }

// Validate checks raw against the spec.
func (s IntSpec) Validate(raw string) (string, error) {
	if slices.Contains(s.Sentinels, raw) {
		return raw, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return "", Invalid(s.Name, raw, "must be "+s.Describe())
	}
	if s.Min != nil && n < *s.Min {
		return "", Invalid(s.Name, raw, fmt.Sprintf("must be at least %d", *s.Min))
	}
	if s.Max != nil && n > *s.Max {
		return "", Invalid(s.Name, raw, fmt.Sprintf("must be at most %d", *s.Max))
	}
	return raw, nil
}

// Parse validates raw and converts it: "?" becomes Unknown, "" becomes
// Absent, anything else Known. Sentinels other than those two are rejected
// here since they have no typed meaning.
func (s IntSpec) Parse(raw string) (Value[int], error) {
	v, err := s.Validate(raw)
	if err != nil {
		return Value[int]{}, err
	}
	switch v {
	case UnknownLiteral:
		return Unknown[int](), nil
	case AbsentLiteral:
		return Absent[int](), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return Value[int]{}, Invalid(s.Name, raw, "must be a whole number")
	}
	return Known(n), nil
}

// Describe summarizes the accepted input.
func (s IntSpec) Describe() string {
	var b strings.Builder
	b.WriteString("a whole number")
	if s.Min != nil {
		fmt.Fprintf(&b, ", minimum %d", *s.Min)
	}
	if s.Max != nil {
		fmt.Fprintf(&b, ", maximum %d", *s.Max)
	}
	writeSentinels(&b, s.Sentinels)
	return b.String()
}

// Fold selects case folding applied before a StrSpec comparison.
type Fold uint8

const (
	FoldNone Fold = iota
	FoldLower
	FoldUpper
)

func (f Fold) apply(s string) string {
	switch f {
	case FoldLower:
		return strings.ToLower(s)
	case FoldUpper:
		return strings.ToUpper(s)
	default:
		return s
	}
}

// StrSpec accepts a string equal to one of Allowed, or composed solely of
// characters in Charset. Fold is applied to the input, Allowed and Charset
// before comparing.
type StrSpec struct {
	Name      string
	Allowed   []string
	Charset   string
	Fold      Fold
	Sentinels []string
}

func (StrSpec) spec() {}

// Label returns the display name.
func (s StrSpec) Label() string { return s.Name }

// Validate checks raw against the spec and returns the folded value.
func (s StrSpec) Validate(raw string) (string, error) {
	if slices.Contains(s.Sentinels, raw) {
		return raw, nil
	}
	folded := s.Fold.apply(raw)
	for _, allowed := range s.Allowed {
		if folded == s.Fold.apply(allowed) {
			return folded, nil
		}
	}
	if s.Charset != "" && folded != "" {
		charset := s.Fold.apply(s.Charset)
		ok := true
		for _, r := range folded {
			if !strings.ContainsRune(charset, r) {
				ok = false
				break
			}
		}
		if ok {
			return folded, nil
		}
	}
	return "", Invalid(s.Name, raw, "must be "+s.Describe())
}

// Describe summarizes the accepted input.
func (s StrSpec) Describe() string {
	var b strings.Builder
	var parts []string
	if len(s.Allowed) > 0 {
		quoted := make([]string, len(s.Allowed))
		for i, a := range s.Allowed {
			quoted[i] = fmt.Sprintf("'%s'", s.Fold.apply(a))
		}
		parts = append(parts, "one of "+strings.Join(quoted, ", "))
	}
	if s.Charset != "" {
		parts = append(parts, "text made of letters from "+summarizeCharset(s.Fold.apply(s.Charset)))
	}
	if len(parts) == 0 {
		parts = append(parts, "nothing")
	}
	b.WriteString(strings.Join(parts, " or "))
	if s.Fold != FoldNone {
		b.WriteString(" (case-insensitive)")
	}
	writeSentinels(&b, s.Sentinels)
	return b.String()
}

func summarizeCharset(charset string) string {
	var extras []string
	letters := 0
	for _, r := range charset {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
			continue
		}
		switch r {
		case ' ':
			extras = append(extras, "space")
		default:
			extras = append(extras, fmt.Sprintf("'%c'", r))
		}
	}
	out := "a-z"
	if letters == 0 {
		out = "the given characters"
	}
	if len(extras) > 0 {
		out += " plus " + strings.Join(extras, ", ")
	}
	return out
}

func writeSentinels(b *strings.Builder, sentinels []string) {
	if len(sentinels) == 0 {
		return
	}
	quoted := make([]string, 0, len(sentinels))
	for _, s := range sentinels {
		switch s {
		case AbsentLiteral:
			quoted = append(quoted, "blank")
		default:
			quoted = append(quoted, fmt.Sprintf("'%s'", s))
		}
	}
	b.WriteString(", or ")
	b.WriteString(strings.Join(quoted, " or "))
}
