package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/familytree-go/internal/field"
	"github.com/nibzard/familytree-go/internal/person"
)

// Boolean tokens.
const (
	True  = "t"
	False = "f"
)

// Encode converts p into its field tokens.
func Encode(p *person.Person) []string {
	row := make([]string, FieldCount)
	row[ColID] = strconv.Itoa(p.ID)
	row[ColFirstName] = p.FirstName
	row[ColMiddleNames] = p.MiddleNames.String()
	row[ColLastName] = p.LastName
	row[ColIsMale] = False
	if p.IsMale {
		row[ColIsMale] = True
	}
	row[ColBirthDay] = p.Birth.Day.String()
	row[ColBirthMonth] = p.Birth.Month.String()
	row[ColBirthYear] = p.Birth.Year.String()
	row[ColDeathDay] = p.Death.Day.String()
	row[ColDeathMonth] = p.Death.Month.String()
	row[ColDeathYear] = p.Death.Year.String()
	row[ColMotherID] = encodeParent(p.MotherID)
	row[ColFatherID] = encodeParent(p.FatherID)
	return row
}

func encodeParent(id int) string {
	if id == person.UnknownParent {
		return field.UnknownLiteral
	}
	return strconv.Itoa(id)
}

// CheckDelimiter fails with an InvalidInput error when a token of row
// contains delim. Tokens are never quoted, so such a value cannot be stored.
func CheckDelimiter(row []string, delim string) error {
	if delim == "" {
		return nil
	}
	for i, tok := range row {
		if strings.Contains(tok, delim) {
			name := "field " + strconv.Itoa(i+1)
			if i < FieldCount {
				name = Fields[i].Header
			}
			return field.Invalid(name, tok, fmt.Sprintf("must not contain the delimiter %q", delim))
		}
	}
	return nil
}

// Decode converts field tokens into a validated Person.
func Decode(row []string) (person.Person, error) {
	var p person.Person
	if len(row) != FieldCount {
		return p, mismatch("record has %d fields, want %d", len(row), FieldCount)
	}
	for i, raw := range row {
		if err := apply(&p, i, raw); err != nil {
			return p, err
		}
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// ApplyField sets one field of p from a raw token using the same rules as
// Decode. Cross-field checks (a partly filled death date, for example) are
// left to person.Validate.
func ApplyField(p *person.Person, name, raw string) error {
	idx, ok := Lookup(name)
	if !ok {
		return field.Invalid("Field", name, "unknown field")
	}
	return apply(p, idx, raw)
}

func apply(p *person.Person, idx int, raw string) error {
	raw = strings.TrimSpace(raw)
	f := Fields[idx]
	switch spec := f.Spec.(type) {
	case field.IntSpec:
		v, err := spec.Parse(raw)
		if err != nil {
			return err
		}
		setInt(p, idx, v)
	case field.StrSpec:
		if idx == ColIsMale {
			b, err := field.ParseBool(spec, raw)
			if err != nil {
				return err
			}
			p.IsMale = b
			return nil
		}
		v, err := spec.Validate(raw)
		if err != nil {
			return err
		}
		setName(p, idx, v)
	}
	return nil
}

func setInt(p *person.Person, idx int, v field.Value[int]) {
	switch idx {
	case ColID:
		p.ID = v.OrElse(0)
	case ColBirthDay:
		p.Birth.Day = v
	case ColBirthMonth:
		p.Birth.Month = v
	case ColBirthYear:
		p.Birth.Year = v
	case ColDeathDay:
		p.Death.Day = v
	case ColDeathMonth:
		p.Death.Month = v
	case ColDeathYear:
		p.Death.Year = v
	case ColMotherID:
		p.MotherID = v.OrElse(person.UnknownParent)
	case ColFatherID:
		p.FatherID = v.OrElse(person.UnknownParent)
	}
}

func setName(p *person.Person, idx int, v string) {
	switch idx {
	case ColFirstName:
		p.FirstName = person.TitleCase(v)
	case ColLastName:
		p.LastName = person.TitleCase(v)
	case ColMiddleNames:
		switch v {
		case field.AbsentLiteral:
			p.MiddleNames = field.Absent[string]()
		case field.UnknownLiteral:
			p.MiddleNames = field.Unknown[string]()
		default:
			p.MiddleNames = field.Known(person.TitleCase(v))
		}
	}
}

// DecodeAll decodes rows in order, reporting the failing record number.
func DecodeAll(rows [][]string) ([]person.Person, error) {
	out := make([]person.Person, 0, len(rows))
	for i, row := range rows {
		p, err := Decode(row)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}
