// Package codec converts between person.Person and its serialized field
// tuple. The same tokens are used by every storage backend.
package codec

import (
	"strings"

	"github.com/nibzard/familytree-go/internal/calendar"
	"github.com/nibzard/familytree-go/internal/field"
)

// Field describes one serialized column.
type Field struct {
	Header string     // name used in delimited text headers
	Column string     // identifier used by SQL and JSON backends
	Spec   field.Spec // rule every non-sentinel token must satisfy
}

// Column positions within a record.
const (
	ColID = iota
	ColFirstName
	ColMiddleNames
	ColLastName
	ColIsMale
	ColBirthDay
	ColBirthMonth
	ColBirthYear
	ColDeathDay
	ColDeathMonth
	ColDeathYear
	ColMotherID
	ColFatherID

	FieldCount
)

const nameCharset = "abcdefghijklmnopqrstuvwxyz '-"

var (
	unknownOnly     = []string{field.UnknownLiteral}
	unknownOrAbsent = []string{field.UnknownLiteral, field.AbsentLiteral}
)

func nameSpec(label string, sentinels []string) field.StrSpec {
	return field.StrSpec{Name: label, Charset: nameCharset, Fold: field.FoldLower, Sentinels: sentinels}
}

func dateSpecs(prefix string, sentinels []string) (day, month, year field.IntSpec) {
	day = field.IntSpec{Name: prefix + " Day", Min: field.Bound(1), Max: field.Bound(31), Sentinels: sentinels}
	month = field.IntSpec{Name: prefix + " Month", Min: field.Bound(1), Max: field.Bound(12), Sentinels: sentinels}
	year = field.IntSpec{Name: prefix + " Year", Min: field.Bound(calendar.MinYear), Max: field.Bound(calendar.MaxYear), Sentinels: sentinels}
	return day, month, year
}

// Fields lists the record layout in serialized order.
var Fields = buildFields()

func buildFields() []Field {
	bd, bm, by := dateSpecs("Birth", unknownOnly)
	dd, dm, dy := dateSpecs("Death", unknownOrAbsent)
	isMale := field.BoolSpec
	isMale.Name = "Is Male"
	return []Field{
		ColID:          {"ID", "id", field.IntSpec{Name: "ID", Min: field.Bound(1)}},
		ColFirstName:   {"First Name", "first_name", nameSpec("First Name", nil)},
		ColMiddleNames: {"Middle Names", "middle_names", nameSpec("Middle Names", unknownOrAbsent)},
		ColLastName:    {"Last Name", "last_name", nameSpec("Last Name", nil)},
		ColIsMale:      {"Is Male", "is_male", isMale},
		ColBirthDay:    {"Birth Day", "birth_day", bd},
		ColBirthMonth:  {"Birth Month", "birth_month", bm},
		ColBirthYear:   {"Birth Year", "birth_year", by},
		ColDeathDay:    {"Death Day", "death_day", dd},
		ColDeathMonth:  {"Death Month", "death_month", dm},
		ColDeathYear:   {"Death Year", "death_year", dy},
		ColMotherID:    {"Mother ID", "mother_id", field.IntSpec{Name: "Mother ID", Min: field.Bound(0), Sentinels: unknownOnly}},
		ColFatherID:    {"Father ID", "father_id", field.IntSpec{Name: "Father ID", Min: field.Bound(0), Sentinels: unknownOnly}},
	}
}

// Header returns the delimited text header names.
func Header() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = f.Header
	}
	return out
}

// Columns returns the SQL/JSON column identifiers.
func Columns() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = f.Column
	}
	return out
}

// Lookup finds a field by header or column name, ignoring case.
func Lookup(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, f := range Fields {
		if strings.EqualFold(f.Header, name) || strings.EqualFold(f.Column, name) {
			return i, true
		}
	}
	return 0, false
}

// CheckHeader verifies that header names the fields in order. Header and
// column spellings are both accepted, ignoring case and surrounding space.
func CheckHeader(header []string) error {
	if len(header) != FieldCount {
		return mismatch("header has %d fields, want %d", len(header), FieldCount)
	}
	for i, name := range header {
		idx, ok := Lookup(name)
		if !ok || idx != i {
			return mismatch("header field %d is %q, want %q", i+1, name, Fields[i].Header)
		}
	}
	return nil
}
