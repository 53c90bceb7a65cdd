package calendar

import (
	"testing"
	"time"

	"github.com/nibzard/familytree-go/internal/field"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	tests := []struct {
		name  string
		birth Date
		asOf  Date
		want  field.Value[int]
	}{
		{"before birthday", NewDate(15, 3, 1990), NewDate(1, 3, 2024), field.Known(33)},
		{"on birthday", NewDate(1, 1, 2000), NewDate(1, 1, 2024), field.Known(24)},
		{"after birthday", NewDate(1, 1, 2000), NewDate(2, 1, 2024), field.Known(24)},
		{"eve of birthday", NewDate(2, 1, 2000), NewDate(1, 1, 2024), field.Known(23)},
		{"unknown day", Date{Day: field.Unknown[int](), Month: field.Known(3), Year: field.Known(1990)}, NewDate(1, 3, 2024), field.Unknown[int]()},
		{"unknown month", Date{Day: field.Known(3), Month: field.Unknown[int](), Year: field.Known(1990)}, NewDate(1, 3, 2024), field.Unknown[int]()},
		{"unknown year", Date{Day: field.Known(3), Month: field.Known(3), Year: field.Unknown[int]()}, NewDate(1, 3, 2024), field.Unknown[int]()},
		{"unknown as-of day", NewDate(3, 3, 1990), Date{Day: field.Unknown[int](), Month: field.Known(5), Year: field.Known(2020)}, field.Unknown[int]()},
		{"leap birthday non-leap year", NewDate(29, 2, 2000), NewDate(28, 2, 2023), field.Known(23)},
		{"leap birthday day before", NewDate(29, 2, 2000), NewDate(27, 2, 2023), field.Known(22)},
		{"leap birthday leap year", NewDate(29, 2, 2000), NewDate(28, 2, 2024), field.Known(23)},
		{"born that day", NewDate(5, 6, 2024), NewDate(5, 6, 2024), field.Known(0)},
		{"as-of earlier in birth year", NewDate(5, 6, 2024), NewDate(1, 3, 2024), field.Unknown[int]()},
		{"future birth", NewDate(1, 1, 2090), NewDate(1, 3, 2024), field.Unknown[int]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Age(tt.birth, tt.asOf)
			if !got.Equal(tt.want) {
				t.Errorf("Age: got %v (%v), want %v (%v)", got, got.State(), tt.want, tt.want.State())
			}
		})
	}
}

func TestDaysUntilNextBirthday(t *testing.T) {
	tests := []struct {
		name  string
		birth Date
		today time.Time
		want  field.Value[int]
	}{
		{"two weeks", NewDate(15, 3, 1990), day(2024, time.March, 1), field.Known(14)},
		{"today", NewDate(1, 1, 2000), day(2024, time.January, 1), field.Known(0)},
		{"yesterday leap", NewDate(1, 3, 1990), day(2023, time.March, 2), field.Known(365)},
		{"yesterday", NewDate(1, 3, 1990), day(2024, time.March, 2), field.Known(364)},
		{"wraps year end", NewDate(2, 1, 1990), day(2024, time.December, 31), field.Known(2)},
		{"unknown year still counts", Date{Day: field.Known(20), Month: field.Known(3), Year: field.Unknown[int]()}, day(2024, time.March, 1), field.Known(19)},
		{"leap birthday observed", NewDate(29, 2, 2000), day(2023, time.February, 28), field.Known(0)},
		{"leap birthday in leap year", NewDate(29, 2, 2000), day(2024, time.February, 28), field.Known(1)},
		{"unknown day", Date{Day: field.Unknown[int](), Month: field.Known(3), Year: field.Known(1990)}, day(2024, time.March, 1), field.Unknown[int]()},
		{"unknown month", Date{Day: field.Known(3), Month: field.Unknown[int](), Year: field.Known(1990)}, day(2024, time.March, 1), field.Unknown[int]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysUntilNextBirthday(tt.birth, tt.today)
			if !got.Equal(tt.want) {
				t.Errorf("DaysUntilNextBirthday: got %v (%v), want %v", got, got.State(), tt.want)
			}
		})
	}
}

func TestDaysUntilNextBirthdayRange(t *testing.T) {
	todays := []time.Time{
		day(2023, time.January, 1),
		day(2023, time.June, 30),
		day(2024, time.February, 29),
		day(2024, time.December, 31),
	}
	for _, today := range todays {
		for m := 1; m <= 12; m++ {
			for d := 1; d <= MaxDay(field.Unknown[int](), field.Known(m)); d++ {
				got, ok := DaysUntilNextBirthday(NewDate(d, m, 1980), today).Get()
				if !ok {
					t.Fatalf("%s %d/%d: unexpected unknown", today.Format("2006-01-02"), d, m)
				}
				if got < 0 || got > 365 {
					t.Errorf("%s %d/%d: got %d, want within [0, 365]", today.Format("2006-01-02"), d, m, got)
				}
				observed := observedDay(m, d, today.Year())
				isToday := m == int(today.Month()) && observed == today.Day()
				if (got == 0) != isToday {
					t.Errorf("%s %d/%d: got %d, today=%v", today.Format("2006-01-02"), d, m, got, isToday)
				}
			}
		}
	}
}
