// Package calendar computes ages and birthdays from partial dates.
//
// A Date is a (day, month, year) triple where each component may be Known or
// Unknown. A Date whose components are all Absent is the "living" sentinel
// used for the death date of a person who has not died.
//
// A February 29 birthday is observed on February 28 in non-leap years. This
// applies to both the days-until-birthday count and the age tie-break, so a
// person turns a year older on the day their birthday is listed as today.
package calendar

import (
	"fmt"
	"time"

	"github.com/nibzard/familytree-go/internal/field"
)

// Component limits.
const (
	MinYear = 1
	MaxYear = 9999
)

// Date is a possibly partial calendar date.
type Date struct {
	Day   field.Value[int]
	Month field.Value[int]
	Year  field.Value[int]
}

// Living is the death-date sentinel for a person who is alive.
var Living = Date{}

// NewDate returns a fully known date.
func NewDate(day, month, year int) Date {
	return Date{Day: field.Known(day), Month: field.Known(month), Year: field.Known(year)}
}

// UnknownDate returns a date whose components were never recorded.
func UnknownDate() Date {
	return Date{Day: field.Unknown[int](), Month: field.Unknown[int](), Year: field.Unknown[int]()}
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Date {
	return NewDate(t.Day(), int(t.Month()), t.Year())
}

// IsLiving reports whether d is the living sentinel.
func (d Date) IsLiving() bool {
	return d.Day.IsAbsent() && d.Month.IsAbsent() && d.Year.IsAbsent()
}

// IsComplete reports whether every component is known.
func (d Date) IsComplete() bool {
	return d.Day.IsKnown() && d.Month.IsKnown() && d.Year.IsKnown()
}

// HasDayMonth reports whether the day and month are known.
func (d Date) HasDayMonth() bool {
	return d.Day.IsKnown() && d.Month.IsKnown()
}

// Equal reports whether two dates have identical components.
func (d Date) Equal(o Date) bool {
	return d.Day.Equal(o.Day) && d.Month.Equal(o.Month) && d.Year.Equal(o.Year)
}

// Before reports whether d is known to fall strictly before o. Components
// are compared from the year down; an unknown component on either side that
// is needed to decide makes the answer false.
func (d Date) Before(o Date) bool {
	for _, c := range [][2]field.Value[int]{{d.Year, o.Year}, {d.Month, o.Month}, {d.Day, o.Day}} {
		a, aok := c[0].Get()
		b, bok := c[1].Get()
		if !aok || !bok {
			return false
		}
		if a != b {
			return a < b
		}
	}
	return false
}

// Validate checks component ranges and that the day exists in the month.
// When the year is unknown, February 29 is accepted.
func (d Date) Validate(label string) error {
	if d.IsLiving() {
		return nil
	}
	for _, c := range []struct {
		name string
		v    field.Value[int]
	}{{"day", d.Day}, {"month", d.Month}, {"year", d.Year}} {
		if c.v.IsAbsent() {
			return field.Invalid(label, d.String(), c.name+" must be given or marked unknown")
		}
	}
	if y, ok := d.Year.Get(); ok && (y < MinYear || y > MaxYear) {
		return field.Invalid(label, d.String(), fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear))
	}
	if m, ok := d.Month.Get(); ok && (m < 1 || m > 12) {
		return field.Invalid(label, d.String(), "month must be between 1 and 12")
	}
	if day, ok := d.Day.Get(); ok {
		maxDay := MaxDay(d.Year, d.Month)
		if day < 1 || day > maxDay {
			return field.Invalid(label, d.String(), fmt.Sprintf("day must be between 1 and %d", maxDay))
		}
	}
	return nil
}

// String renders the date as day/month/year using "?" for unknown parts.
func (d Date) String() string {
	if d.IsLiving() {
		return "living"
	}
	return fmt.Sprintf("%s/%s/%s", d.Day, d.Month, d.Year)
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// MaxDay returns the largest valid day for the given month, taking the year
// into account when it is known.
func MaxDay(year, month field.Value[int]) int {
	m, ok := month.Get()
	if !ok {
		return 31
	}
	switch m {
	case 2:
		if y, ok := year.Get(); ok && !IsLeap(y) {
			return 28
		}
		return 29
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// observedDay maps a February 29 birthday to February 28 in non-leap years.
func observedDay(month, day, year int) int {
	if month == 2 && day == 29 && !IsLeap(year) {
		return 28
	}
	return day
}
