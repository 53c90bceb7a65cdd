package field

import "slices"

// BoolSpec accepts the yes/no spellings understood by ParseBool.
var BoolSpec = StrSpec{
	Name:    "Yes/No",
	Allowed: []string{"t", "f", "true", "false", "y", "n", "yes", "no"},
	Fold:    FoldLower,
}

var truthy = []string{"t", "true", "y", "yes"}

// ParseBool validates raw against s and reports whether the accepted value
// is one of the truthy spellings. s is normally BoolSpec or a copy of it with
// a different Name.
func ParseBool(s StrSpec, raw string) (bool, error) {
	v, err := s.Validate(raw)
	if err != nil {
		return false, err
	}
	return slices.Contains(truthy, v), nil
}

// ParseInt validates raw against s and converts it. See IntSpec.Parse.
func ParseInt(s IntSpec, raw string) (Value[int], error) {
	return s.Parse(raw)
}
