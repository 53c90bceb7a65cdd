package calendar

import (
	"fmt"
	"strings"

	"github.com/nibzard/familytree-go/internal/field"
)

// Style selects how dates are rendered for display.
type Style string

const (
	StyleEuropean      Style = "european"      // 15/03/1990
	StyleInternational Style = "international" // 1990-03-15
	StyleLong          Style = "long"          // 15th March 1990
)

// ParseStyle parses a style name, defaulting to StyleEuropean.
func ParseStyle(s string) Style {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "international", "iso":
		return StyleInternational
	case "long":
		return StyleLong
	default:
		return StyleEuropean
	}
}

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the English name of month (1-12).
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("Month%d", month)
	}
	return monthNames[month-1]
}

// Ordinal returns n with its English suffix: 1st, 2nd, 3rd, 11th, 22nd.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// Format renders d in the given style. A date with no known component renders
// as "Unknown"; the living sentinel renders as "Living".
func Format(d Date, style Style) string {
	if d.IsLiving() {
		return "Living"
	}
	if !d.Day.IsKnown() && !d.Month.IsKnown() && !d.Year.IsKnown() {
		return "Unknown"
	}
	switch style {
	case StyleInternational:
		return pad(d.Year, 4) + "-" + pad(d.Month, 2) + "-" + pad(d.Day, 2)
	case StyleLong:
		return formatLong(d, true)
	default:
		return pad(d.Day, 2) + "/" + pad(d.Month, 2) + "/" + pad(d.Year, 4)
	}
}

// FormatBirthday renders the day and month only, e.g. "15th March".
func FormatBirthday(d Date) string {
	out := formatLong(d, false)
	if out == "" {
		return "Unknown"
	}
	return out
}

func formatLong(d Date, withYear bool) string {
	var parts []string
	if day, ok := d.Day.Get(); ok {
		parts = append(parts, Ordinal(day))
	}
	if m, ok := d.Month.Get(); ok {
		parts = append(parts, MonthName(m))
	}
	if y, ok := d.Year.Get(); ok && withYear {
		parts = append(parts, fmt.Sprint(y))
	}
	return strings.Join(parts, " ")
}

func pad(v field.Value[int], width int) string {
	n, ok := v.Get()
	if !ok {
		return strings.Repeat("?", width)
	}
	return fmt.Sprintf("%0*d", width, n)
}
