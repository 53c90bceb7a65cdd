package family

import (
	"cmp"
	"slices"
	"time"

	"github.com/nibzard/familytree-go/internal/calendar"
	"github.com/nibzard/familytree-go/internal/field"
)

// Birthday is one entry of the ranked birthday list.
type Birthday struct {
	ID            int
	DaysUntil     int
	Name          string
	Birthday      string           // e.g. "15th March"
	AgeOnBirthday field.Value[int] // Unknown when the birth year is unknown
}

// Birthdays ranks living people with a known birth day and month by days
// until their next birthday. Equal counts keep insertion order. People whose
// birth day or month is unknown are left out.
func (f *Family) Birthdays(today time.Time) []Birthday {
	var out []Birthday
	for i := range f.people {
		p := &f.people[i]
		if !p.IsAlive() {
			continue
		}
		days, ok := p.DaysUntilBirthday(today).Get()
		if !ok {
			continue
		}
		age := field.Unknown[int]()
		if a, ok := p.Age(today).Get(); ok {
			if days != 0 {
				a++
			}
			age = field.Known(a)
		}
		out = append(out, Birthday{
			ID:            p.ID,
			DaysUntil:     days,
			Name:          p.ShortName(),
			Birthday:      calendar.FormatBirthday(p.Birth),
			AgeOnBirthday: age,
		})
	}
	slices.SortStableFunc(out, func(a, b Birthday) int {
		return cmp.Compare(a.DaysUntil, b.DaysUntil)
	})
	return out
}
