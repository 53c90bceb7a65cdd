// Package person defines a family member record and its derived fields.
package person

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/nibzard/familytree-go/internal/calendar"
	"github.com/nibzard/familytree-go/internal/field"
)

// UnknownParent is the parent reference meaning "not recorded".
const UnknownParent = 0

// Person is one family member.
type Person struct {
	ID          int
	FirstName   string
	MiddleNames field.Value[string] // Absent when the person has none
	LastName    string
	IsMale      bool
	Birth       calendar.Date
	Death       calendar.Date // calendar.Living while alive
	MotherID    int
	FatherID    int
}

// FullName joins first, middle and last names.
func (p *Person) FullName() string {
	parts := []string{p.FirstName}
	if m, ok := p.MiddleNames.Get(); ok && m != "" {
		parts = append(parts, m)
	}
	parts = append(parts, p.LastName)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// ShortName joins first and last names.
func (p *Person) ShortName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Sex returns "Male" or "Female".
func (p *Person) Sex() string {
	if p.IsMale {
		return "Male"
	}
	return "Female"
}

// IsAlive reports whether the person has no death date.
func (p *Person) IsAlive() bool {
	return p.Death.IsLiving()
}

// Age returns the person's age today if alive, or their age at death.
func (p *Person) Age(today time.Time) field.Value[int] {
	if p.IsAlive() {
		return calendar.Age(p.Birth, calendar.FromTime(today))
	}
	return calendar.Age(p.Birth, p.Death)
}

// DaysUntilBirthday returns the days until the next birthday.
func (p *Person) DaysUntilBirthday(today time.Time) field.Value[int] {
	return calendar.DaysUntilNextBirthday(p.Birth, today)
}

// Validate checks the record's own invariants. Parent references are only
// checked for shape here; resolving them needs the whole family.
func (p *Person) Validate() error {
	if p.ID < 1 {
		return field.Invalid("ID", fmt.Sprint(p.ID), "must be at least 1")
	}
	if strings.TrimSpace(p.FirstName) == "" {
		return field.Invalid("First Name", p.FirstName, "must not be empty")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return field.Invalid("Last Name", p.LastName, "must not be empty")
	}
	if err := p.Birth.Validate("Birth Date"); err != nil {
		return err
	}
	if p.Birth.IsLiving() {
		return field.Invalid("Birth Date", "", "must be given or marked unknown")
	}
	if err := p.Death.Validate("Death Date"); err != nil {
		return err
	}
	if p.Death.Before(p.Birth) {
		return field.Invalid("Death Date", p.Death.String(), "must not be before the birth date "+p.Birth.String())
	}
	if p.MotherID < 0 {
		return field.Invalid("Mother ID", fmt.Sprint(p.MotherID), "must not be negative")
	}
	if p.FatherID < 0 {
		return field.Invalid("Father ID", fmt.Sprint(p.FatherID), "must not be negative")
	}
	return nil
}

// TitleCase capitalizes the first letter of every word and lowercases the
// rest. Space, apostrophe, hyphen and slash start a new word.
func TitleCase(s string) string {
	var b strings.Builder
	capNext := true
	for _, r := range s {
		if capNext {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		capNext = strings.ContainsRune(" '-/", r)
	}
	return b.String()
}
