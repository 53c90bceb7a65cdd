package calendar

import (
	"time"

	"github.com/nibzard/familytree-go/internal/field"
)

// Age returns the whole years elapsed from birth to asOf. The result is
// Unknown when any birth component or any asOf component is not known, or
// when asOf precedes birth.
func Age(birth, asOf Date) field.Value[int] {
	if !birth.IsComplete() || !asOf.IsComplete() {
		return field.Unknown[int]()
	}
	by, _ := birth.Year.Get()
	bm, _ := birth.Month.Get()
	bd, _ := birth.Day.Get()
	ay, _ := asOf.Year.Get()
	am, _ := asOf.Month.Get()
	ad, _ := asOf.Day.Get()

	age := ay - by
	bd = observedDay(bm, bd, ay)
	if am < bm || (am == bm && ad < bd) {
		age--
	}
	if age < 0 {
		return field.Unknown[int]()
	}
	return field.Known(age)
}

// DaysUntilNextBirthday returns the number of days from today until the next
// occurrence of birth's month and day, in [0, 365]. It is Unknown when the
// birth day or month is unknown.
func DaysUntilNextBirthday(birth Date, today time.Time) field.Value[int] {
	if !birth.HasDayMonth() {
		return field.Unknown[int]()
	}
	m, _ := birth.Month.Get()
	d, _ := birth.Day.Get()

	start := civil(today.Year(), int(today.Month()), today.Day())
	year := today.Year()
	diff := daysBetween(start, civil(year, m, observedDay(m, d, year)))
	if diff < 0 {
		year++
		diff = daysBetween(start, civil(year, m, observedDay(m, d, year)))
	}
	return field.Known(diff)
}

func civil(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
