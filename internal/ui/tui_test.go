package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/familytree-go/internal/calendar"
	"github.com/nibzard/familytree-go/internal/family"
	"github.com/nibzard/familytree-go/internal/field"
	"github.com/nibzard/familytree-go/internal/person"
)

var today = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func testFamily(t *testing.T) *family.Family {
	t.Helper()
	f := family.New("smith")
	for _, p := range []person.Person{
		{FirstName: "Tom", LastName: "Smith", IsMale: true, MiddleNames: field.Absent[string](), Birth: calendar.NewDate(1, 2, 1940), Death: calendar.NewDate(3, 4, 2010)},
		{FirstName: "Ann", LastName: "Jones", MiddleNames: field.Absent[string](), Birth: calendar.NewDate(15, 3, 1942), Death: calendar.Living},
		{FirstName: "Bob", LastName: "Smith", IsMale: true, MiddleNames: field.Absent[string](), Birth: calendar.NewDate(2, 3, 1970), Death: calendar.Living, MotherID: 2, FatherID: 1},
	} {
		if _, err := f.Add(p); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return f
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(key(k))
	}
}

func TestModelListsPeople(t *testing.T) {
	m := NewModel(testFamily(t), calendar.StyleEuropean, today)
	if m.Tab() != TabPeople {
		t.Fatalf("Tab: got %v, want People", m.Tab())
	}
	if got := len(m.Visible()); got != 3 {
		t.Fatalf("Visible: got %d rows, want 3", got)
	}
	view := m.View()
	for _, want := range []string{"Family: smith (3)", "Tom Smith", "Ann Jones (2)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModelSwitchesToBirthdays(t *testing.T) {
	m := NewModel(testFamily(t), calendar.StyleEuropean, today)
	send(m, "tab")
	if m.Tab() != TabBirthdays {
		t.Fatalf("Tab: got %v, want Birthdays", m.Tab())
	}
	rows := m.Visible()
	// Tom is deceased, so only the living two are ranked.
	if len(rows) != 2 {
		t.Fatalf("Visible: got %d rows, want 2", len(rows))
	}
	if rows[0][1] != "Bob Smith" || rows[0][0] != "1" {
		t.Errorf("first birthday: got %v, want Bob Smith in 1 day", rows[0])
	}
	send(m, "1")
	if m.Tab() != TabPeople || len(m.Visible()) != 3 {
		t.Errorf("after 1: got tab %v with %d rows", m.Tab(), len(m.Visible()))
	}
}

func TestModelFilter(t *testing.T) {
	m := NewModel(testFamily(t), calendar.StyleEuropean, today)
	send(m, "/", "1", "9", "4", "2", "enter")
	rows := m.Visible()
	if len(rows) != 1 || rows[0][1] != "Ann Jones" {
		t.Fatalf("filtered rows: got %v, want only Ann Jones", rows)
	}
	if !strings.Contains(m.View(), "Showing 1 of 3") {
		t.Errorf("View should report the filtered count")
	}
	send(m, "esc")
	if len(m.Visible()) != 3 {
		t.Errorf("esc should clear the filter, got %d rows", len(m.Visible()))
	}
}

func TestModelDetail(t *testing.T) {
	m := NewModel(testFamily(t), calendar.StyleEuropean, today)
	send(m, "down", "down", "enter")
	detail := m.Detail()
	for _, want := range []string{"Bob Smith", "Ann Jones (2)", "Tom Smith (1)"} {
		if !strings.Contains(detail, want) {
			t.Errorf("Detail missing %q:\n%s", want, detail)
		}
	}
	send(m, "esc")
	if m.Detail() != "" {
		t.Errorf("esc should close the detail card")
	}
}

func TestModelEmptyFamily(t *testing.T) {
	m := NewModel(family.New("empty"), calendar.StyleEuropean, today)
	if !strings.Contains(m.View(), "No family members yet") {
		t.Errorf("empty view should say so")
	}
	send(m, "enter")
	if m.Detail() != "" {
		t.Errorf("enter on empty table opened a card")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(testFamily(t), calendar.StyleEuropean, today)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q should quit")
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer reported as TTY")
	}
}
