// Package display renders people and birthdays as terminal tables.
package display

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/familytree-go/internal/calendar"
	"github.com/nibzard/familytree-go/internal/family"
	"github.com/nibzard/familytree-go/internal/person"
)

// EmptyMessage is printed instead of a table with no rows.
const EmptyMessage = "No family members yet"

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table writes a bordered table. Nothing but EmptyMessage is written when
// rows is empty.
func Table(w io.Writer, header []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, EmptyMessage)
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

// PeopleHeader names the columns of PeopleRows.
var PeopleHeader = []string{"ID", "Name", "Sex", "Date of Birth", "Date of Death", "Age", "Mother", "Father"}

// PeopleRows formats every person of f.
func PeopleRows(f *family.Family, style calendar.Style, today time.Time) [][]string {
	people := f.All()
	rows := make([][]string, 0, len(people))
	for i := range people {
		p := &people[i]
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			p.FullName(),
			p.Sex(),
			calendar.Format(p.Birth, style),
			calendar.Format(p.Death, style),
			p.Age(today).OrElseString("Unknown"),
			parentLabel(f, p.MotherID),
			parentLabel(f, p.FatherID),
		})
	}
	return rows
}

func parentLabel(f *family.Family, id int) string {
	if id == person.UnknownParent {
		return "Unknown"
	}
	p, err := f.Get(id)
	if err != nil {
		return fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("%s (%d)", p.ShortName(), id)
}

// BirthdayHeader names the columns of BirthdayRows.
var BirthdayHeader = []string{"Days until birthday", "Name", "Birthday", "Age on birthday"}

// BirthdayRows formats a ranked birthday list.
func BirthdayRows(list []family.Birthday) [][]string {
	rows := make([][]string, 0, len(list))
	for _, b := range list {
		rows = append(rows, []string{
			strconv.Itoa(b.DaysUntil),
			b.Name,
			b.Birthday,
			b.AgeOnBirthday.OrElseString("Unknown"),
		})
	}
	return rows
}

// Person writes a two-column detail card for p and its relatives.
func Person(w io.Writer, f *family.Family, p person.Person, style calendar.Style, today time.Time) {
	middle := "None"
	if p.MiddleNames.IsUnknown() {
		middle = "Unknown"
	} else if m, ok := p.MiddleNames.Get(); ok && m != "" {
		middle = m
	}
	rows := [][]string{
		{"ID", strconv.Itoa(p.ID)},
		{"Name", p.FullName()},
		{"Middle names", middle},
		{"Sex", p.Sex()},
		{"Born", calendar.Format(p.Birth, style)},
		{"Died", calendar.Format(p.Death, style)},
		{"Age", p.Age(today).OrElseString("Unknown")},
		{"Mother", parentLabel(f, p.MotherID)},
		{"Father", parentLabel(f, p.FatherID)},
	}
	if r, err := f.Relatives(p.ID); err == nil {
		rows = append(rows,
			[]string{"Children", names(r.Children)},
			[]string{"Siblings", names(r.Siblings)},
			[]string{"Partners", names(r.Partners)},
		)
	}
	if days, ok := p.DaysUntilBirthday(today).Get(); ok && p.IsAlive() {
		rows = append(rows, []string{"Next birthday", fmt.Sprintf("%s (in %d days)", calendar.FormatBirthday(p.Birth), days)})
	}
	Table(w, []string{"Field", "Value"}, rows)
}

func names(people []person.Person) string {
	if len(people) == 0 {
		return "None"
	}
	out := ""
	for i, p := range people {
		if i > 0 {
			out += ", "
		}
		out += p.ShortName()
	}
	return out
}
