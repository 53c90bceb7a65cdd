// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/familytree-go/internal/calendar"
	"github.com/nibzard/familytree-go/internal/display"
	"github.com/nibzard/familytree-go/internal/family"
)

// Tab selects the list the viewer shows.
type Tab int

const (
	TabPeople Tab = iota
	TabBirthdays
)

func (t Tab) String() string {
	if t == TabBirthdays {
		return "Birthdays"
	}
	return "People"
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	activeTab   = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	filterStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	detailStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

// RunTUI starts the read-only viewer for f.
func RunTUI(ctx context.Context, f *family.Family, style calendar.Style) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := NewModel(f, style, time.Now())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Model is the bubbletea model of the viewer.
type Model struct {
	family *family.Family
	style  calendar.Style
	today  time.Time

	tab   Tab
	table table.Model

	filterInput   textinput.Model
	filterFocused bool

	// rows before filtering, per tab
	all     [][]string
	visible [][]string

	detail   string
	showHelp bool
	width    int
	height   int
}

// NewModel builds a viewer model showing the people tab.
func NewModel(f *family.Family, style calendar.Style, today time.Time) *Model {
	fi := textinput.New()
	fi.Placeholder = "Filter by name or id..."
	fi.CharLimit = 50
	fi.Width = 40

	m := &Model{
		family:      f,
		style:       style,
		today:       today,
		filterInput: fi,
		table: table.New(
			table.WithFocused(true),
			table.WithHeight(15),
		),
	}
	m.setTab(TabPeople)
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		if msg.Height > 12 {
			m.table.SetHeight(msg.Height - 10)
		}
		return m, nil
	case tea.KeyMsg:
		if m.filterFocused {
			switch msg.String() {
			case "esc", "enter":
				m.filterFocused = false
				m.filterInput.Blur()
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.applyFilter()
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			m.filterFocused = true
			m.filterInput.Focus()
			return m, textinput.Blink
		case "tab":
			m.setTab((m.tab + 1) % 2)
			return m, nil
		case "1":
			m.setTab(TabPeople)
			return m, nil
		case "2":
			m.setTab(TabBirthdays)
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "esc":
			if m.detail != "" {
				m.detail = ""
				return m, nil
			}
			m.filterInput.SetValue("")
			m.applyFilter()
			return m, nil
		case "enter":
			m.showDetail()
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Family: %s (%d)", m.family.Name(), m.family.Len())))
	b.WriteString("\n\n")

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	for _, t := range []Tab{TabPeople, TabBirthdays} {
		label := fmt.Sprintf("[%d] %s", int(t)+1, t)
		if t == m.tab {
			b.WriteString(activeTab.Render(label))
		} else {
			b.WriteString(mutedStyle.Render(label))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n")
	b.WriteString(filterStyle.Render(m.filterInput.View()))
	b.WriteString("\n\n")

	if len(m.all) == 0 {
		b.WriteString(display.EmptyMessage + "\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		if len(m.visible) != len(m.all) {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("Showing %d of %d", len(m.visible), len(m.all))))
			b.WriteString("\n")
		}
	}

	if m.detail != "" {
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(strings.TrimRight(m.detail, "\n")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press h for help | / filter | tab switch | enter details | q quit"))
	b.WriteString("\n")
	return b.String()
}

// Tab returns the active tab.
func (m *Model) Tab() Tab { return m.tab }

// Visible returns the rows left after filtering.
func (m *Model) Visible() [][]string { return m.visible }

// Detail returns the rendered detail card, empty when none is open.
func (m *Model) Detail() string { return m.detail }

func (m *Model) setTab(t Tab) {
	m.tab = t
	m.detail = ""

	var header []string
	switch t {
	case TabBirthdays:
		header = display.BirthdayHeader
		m.all = display.BirthdayRows(m.family.Birthdays(m.today))
	default:
		header = display.PeopleHeader
		m.all = display.PeopleRows(m.family, m.style, m.today)
	}

	cols := make([]table.Column, len(header))
	for i, h := range header {
		cols[i] = table.Column{Title: h, Width: columnWidth(h, m.all, i)}
	}
	// Columns must shrink before rows of a narrower layout are set.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.applyFilter()
	if len(m.visible) > 0 {
		m.table.SetCursor(0)
	}
}

func columnWidth(title string, rows [][]string, i int) int {
	w := lipgloss.Width(title)
	for _, r := range rows {
		if i < len(r) && lipgloss.Width(r[i]) > w {
			w = lipgloss.Width(r[i])
		}
	}
	return w + 1
}

// applyFilter keeps rows where any cell contains the filter text.
func (m *Model) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	m.visible = m.visible[:0:0]
	for _, r := range m.all {
		if needle == "" || rowContains(r, needle) {
			m.visible = append(m.visible, r)
		}
	}

	rows := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		rows[i] = table.Row(r)
	}
	m.table.SetRows(rows)
}

func rowContains(row []string, needle string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), needle) {
			return true
		}
	}
	return false
}

// showDetail renders the card of the selected person on the people tab.
func (m *Model) showDetail() {
	if m.tab != TabPeople {
		return
	}
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return
	}
	p, err := m.family.Get(id)
	if err != nil {
		m.detail = err.Error()
		return
	}
	var b strings.Builder
	display.Person(&b, m.family, p, m.style, m.today)
	m.detail = b.String()
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  tab          Switch between people and birthdays\n")
	b.WriteString("  1, 2         Show people / birthdays\n")
	b.WriteString("  /            Filter rows (enter or esc to stop typing)\n")
	b.WriteString("  esc          Close details, then clear filter\n")
	b.WriteString("  enter        Show details of the selected person\n")
	b.WriteString("  up/down      Move selection\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
