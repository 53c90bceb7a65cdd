// Package menu runs the interactive text menu over a loaded family.
//
// Every action that changes the family rewrites the whole store before the
// menu is shown again, so an interrupted session loses at most the action in
// progress.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nibzard/familytree-go/internal/calendar"
	"github.com/nibzard/familytree-go/internal/codec"
	"github.com/nibzard/familytree-go/internal/display"
	"github.com/nibzard/familytree-go/internal/family"
	"github.com/nibzard/familytree-go/internal/field"
	"github.com/nibzard/familytree-go/internal/logging"
	"github.com/nibzard/familytree-go/internal/person"
	"github.com/nibzard/familytree-go/internal/prompt"
	"github.com/nibzard/familytree-go/internal/store"
)

// Menu is one interactive session.
type Menu struct {
	prompter *prompt.Prompter
	store    store.Store
	family   *family.Family
	style    calendar.Style
	now      func() time.Time
	events   logging.Writer
	backend  string
}

// Option configures a Menu.
type Option func(*Menu)

// WithDateStyle sets how dates are displayed.
func WithDateStyle(style calendar.Style) Option {
	return func(m *Menu) { m.style = style }
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(m *Menu) { m.now = now }
}

// WithEvents sends save and error events to w. backend labels save events.
func WithEvents(w logging.Writer, backend string) Option {
	return func(m *Menu) {
		m.events = w
		m.backend = backend
	}
}

// New returns a Menu over f, persisting to s.
func New(p *prompt.Prompter, s store.Store, f *family.Family, opts ...Option) *Menu {
	m := &Menu{
		prompter: p,
		store:    s,
		family:   f,
		style:    calendar.StyleEuropean,
		now:      time.Now,
		events:   logging.NullWriter{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type action struct {
	label string
	run   func(context.Context) error
}

func (m *Menu) actions() []action {
	return []action{
		{"View family members", m.viewMembers},
		{"View birthdays", m.viewBirthdays},
		{"Add family members", m.addMembers},
		{"Link family members", m.linkMembers},
		{"Edit family members", m.editMembers},
		{"Remove a family member", m.removeMember},
		{"View relatives", m.viewRelatives},
		{"Exit", nil},
	}
}

// Run shows the menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	actions := m.actions()
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.label
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(m.out())
		choice, err := m.prompter.Choose("MENU:", labels)
		if err != nil {
			return endOfInput(err)
		}
		a := actions[choice]
		if a.run == nil {
			return nil
		}
		if err := a.run(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.reportError(err)
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) out() io.Writer { return m.prompter.Out() }

func (m *Menu) today() time.Time { return m.now() }

func (m *Menu) reportError(err error) {
	fmt.Fprintf(m.out(), "Error: %v\n", err)
	_ = m.events.Write(logging.Event{
		Type:      logging.EventError,
		Timestamp: time.Now().UTC(),
		Family:    m.family.Name(),
		Message:   err.Error(),
	})
}

// save rewrites the store with the current family.
func (m *Menu) save(ctx context.Context) error {
	if err := store.Save(ctx, m.store, m.family); err != nil {
		return err
	}
	return m.events.Write(logging.Event{
		Type:      logging.EventSave,
		Timestamp: time.Now().UTC(),
		Family:    m.family.Name(),
		Message:   m.backend,
		Count:     m.family.Len(),
	})
}

func (m *Menu) viewMembers(context.Context) error {
	m.showMembers()
	if p, n, ok := m.family.MostDescendants(); ok && n > 0 {
		fmt.Fprintf(m.out(), "Most descendants: %s (%d)\n", p.ShortName(), n)
	}
	return nil
}

// showMembers prints the people table and reports whether it was empty.
func (m *Menu) showMembers() bool {
	fmt.Fprintln(m.out())
	if m.family.Len() == 0 {
		fmt.Fprintln(m.out(), display.EmptyMessage)
		return false
	}
	display.Table(m.out(), display.PeopleHeader, display.PeopleRows(m.family, m.style, m.today()))
	return true
}

func (m *Menu) viewBirthdays(context.Context) error {
	fmt.Fprintln(m.out())
	list := m.family.Birthdays(m.today())
	if len(list) == 0 {
		fmt.Fprintln(m.out(), display.EmptyMessage)
		return nil
	}
	display.Table(m.out(), display.BirthdayHeader, display.BirthdayRows(list))
	return nil
}

func (m *Menu) addMembers(ctx context.Context) error {
	fmt.Fprintln(m.out(), "Enter ? for anything unknown.")
	for {
		draft, err := m.askPerson()
		if err != nil {
			return err
		}
		id, err := m.family.Add(draft)
		if err != nil {
			m.reportError(err)
		} else {
			fmt.Fprintf(m.out(), "Added %s with id %d\n", draft.ShortName(), id)
			if err := m.save(ctx); err != nil {
				return err
			}
		}
		m.showMembers()
		more, err := m.prompter.Confirm("Add another family member?")
		if err != nil || !more {
			return err
		}
	}
}

func (m *Menu) linkMembers(ctx context.Context) error {
	for {
		if !m.showMembers() {
			return nil
		}
		child, err := m.askExisting("Child ID (person to add the parents to)")
		if err != nil {
			return err
		}
		mother, err := m.askParent(codec.ColMotherID, "Mother ID (0 if unsure)")
		if err != nil {
			return err
		}
		father, err := m.askParent(codec.ColFatherID, "Father ID (0 if unsure)")
		if err != nil {
			return err
		}
		if err := m.family.SetParents(child, mother, father); err != nil {
			m.reportError(err)
		} else if err := m.save(ctx); err != nil {
			return err
		}
		more, err := m.prompter.Confirm("Link another family member?")
		if err != nil || !more {
			return err
		}
	}
}

var editAttributes = []string{
	"First name",
	"Middle names",
	"Last name",
	"Sex",
	"Date of birth",
	"Date of death",
	"Cancel",
}

func (m *Menu) editMembers(ctx context.Context) error {
	for {
		if !m.showMembers() {
			return nil
		}
		id, err := m.askExisting("ID of member to edit")
		if err != nil {
			return err
		}
		choice, err := m.prompter.Choose("Which attribute would you like to edit?", editAttributes)
		if err != nil {
			return err
		}
		if editAttributes[choice] == "Cancel" {
			return nil
		}
		edit, err := m.askEdit(choice)
		if err != nil {
			return err
		}
		if err := m.family.Edit(id, edit); err != nil {
			m.reportError(err)
		} else if err := m.save(ctx); err != nil {
			return err
		}
		more, err := m.prompter.Confirm("Edit another family member?")
		if err != nil || !more {
			return err
		}
	}
}

// askEdit prompts for the new value of one attribute and returns the
// mutation to apply.
func (m *Menu) askEdit(choice int) (func(*person.Person) error, error) {
	switch editAttributes[choice] {
	case "First name", "Middle names", "Last name":
		col := []int{codec.ColFirstName, codec.ColMiddleNames, codec.ColLastName}[choice]
		raw, err := m.askField(col, nameLabel(col))
		if err != nil {
			return nil, err
		}
		return func(p *person.Person) error {
			return codec.ApplyField(p, codec.Fields[col].Header, raw)
		}, nil
	case "Sex":
		male, err := m.askSex()
		if err != nil {
			return nil, err
		}
		return func(p *person.Person) error {
			p.IsMale = male
			return nil
		}, nil
	case "Date of birth":
		d, err := m.askDate("Birth")
		if err != nil {
			return nil, err
		}
		return func(p *person.Person) error {
			p.Birth = d
			return nil
		}, nil
	default:
		d, err := m.askDeath()
		if err != nil {
			return nil, err
		}
		return func(p *person.Person) error {
			p.Death = d
			return nil
		}, nil
	}
}

func (m *Menu) removeMember(ctx context.Context) error {
	if !m.showMembers() {
		return nil
	}
	id, err := m.askExisting("ID of member to remove")
	if err != nil {
		return err
	}
	p, err := m.family.Get(id)
	if err != nil {
		return err
	}
	ok, err := m.prompter.Confirm(fmt.Sprintf("Remove %s? Their children will lose this parent link.", p.FullName()))
	if err != nil || !ok {
		return err
	}
	if err := m.family.Remove(id); err != nil {
		return err
	}
	fmt.Fprintf(m.out(), "Removed %s\n", p.FullName())
	return m.save(ctx)
}

func (m *Menu) viewRelatives(context.Context) error {
	if !m.showMembers() {
		return nil
	}
	id, err := m.askExisting("ID of member")
	if err != nil {
		return err
	}
	p, err := m.family.Get(id)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out())
	display.Person(m.out(), m.family, p, m.style, m.today())
	if n, err := m.family.Descendants(id); err == nil {
		fmt.Fprintf(m.out(), "Descendants: %d\n", n)
	}
	return nil
}

// Prompts.

var (
	idSpec  = field.IntSpec{Name: "ID", Min: field.Bound(1)}
	sexSpec = field.StrSpec{Name: "Sex", Allowed: []string{"m", "male", "f", "female"}, Fold: field.FoldLower}
)

func nameLabel(col int) string {
	switch col {
	case codec.ColMiddleNames:
		return "Middle name(s) (blank for none)"
	case codec.ColLastName:
		return "Last name (Maiden name)"
	default:
		return "First name"
	}
}

func (m *Menu) askField(col int, label string) (string, error) {
	return m.prompter.Ask(codec.Fields[col].Spec, label)
}

func (m *Menu) askPerson() (person.Person, error) {
	draft := person.Person{Death: calendar.Living}
	for _, col := range []int{codec.ColFirstName, codec.ColMiddleNames, codec.ColLastName} {
		raw, err := m.askField(col, nameLabel(col))
		if err != nil {
			return draft, err
		}
		if err := codec.ApplyField(&draft, codec.Fields[col].Header, raw); err != nil {
			return draft, err
		}
	}
	male, err := m.askSex()
	if err != nil {
		return draft, err
	}
	draft.IsMale = male

	if draft.Birth, err = m.askDate("Birth"); err != nil {
		return draft, err
	}
	if draft.Death, err = m.askDeath(); err != nil {
		return draft, err
	}
	return draft, nil
}

func (m *Menu) askSex() (bool, error) {
	v, err := m.prompter.Ask(sexSpec, "Sex (M/F)")
	if err != nil {
		return false, err
	}
	return v == "m" || v == "male", nil
}

// askDeath asks whether the person is alive and, if not, for the death date.
func (m *Menu) askDeath() (calendar.Date, error) {
	alive, err := m.prompter.Confirm("Are they alive?")
	if err != nil || alive {
		return calendar.Living, err
	}
	return m.askDate("Death")
}

// askDate asks for year, month then day so the day limit can follow the
// month length. Every component accepts ? for unknown.
func (m *Menu) askDate(prefix string) (calendar.Date, error) {
	cols := map[string][3]int{
		"Birth": {codec.ColBirthYear, codec.ColBirthMonth, codec.ColBirthDay},
		"Death": {codec.ColDeathYear, codec.ColDeathMonth, codec.ColDeathDay},
	}[prefix]

	var d calendar.Date
	var err error
	if d.Year, err = m.prompter.AskInt(unknownOnly(cols[0]), prefix+" year"); err != nil {
		return d, err
	}
	if d.Month, err = m.prompter.AskInt(unknownOnly(cols[1]), prefix+" month"); err != nil {
		return d, err
	}
	day := unknownOnly(cols[2])
	day.Max = field.Bound(calendar.MaxDay(d.Year, d.Month))
	if d.Day, err = m.prompter.AskInt(day, prefix+" day"); err != nil {
		return d, err
	}
	return d, nil
}

// unknownOnly returns the column's spec accepting ? but not blank, so a
// prompted date is never partly absent.
func unknownOnly(col int) field.IntSpec {
	spec := codec.Fields[col].Spec.(field.IntSpec)
	spec.Sentinels = []string{field.UnknownLiteral}
	return spec
}

// askExisting re-prompts until the id names a member of the family.
func (m *Menu) askExisting(label string) (int, error) {
	for {
		v, err := m.prompter.AskInt(idSpec, label)
		if err != nil {
			return 0, err
		}
		id := v.OrElse(0)
		if m.family.Has(id) {
			return id, nil
		}
		fmt.Fprintln(m.out(), "Member does not exist, please try again")
	}
}

func (m *Menu) askParent(col int, label string) (int, error) {
	raw, err := m.askField(col, label)
	if err != nil {
		return 0, err
	}
	if raw == field.UnknownLiteral {
		return person.UnknownParent, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return n, nil
}
