package menu

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nibzard/familytree-go/internal/calendar"
	"github.com/nibzard/familytree-go/internal/codec"
	"github.com/nibzard/familytree-go/internal/family"
	"github.com/nibzard/familytree-go/internal/field"
	"github.com/nibzard/familytree-go/internal/logging"
	"github.com/nibzard/familytree-go/internal/person"
	"github.com/nibzard/familytree-go/internal/prompt"
	"github.com/nibzard/familytree-go/internal/store"
)

type memStore struct {
	t      store.Table
	writes int
	err    error
}

func (m *memStore) Read(context.Context) (store.Table, error) { return m.t, nil }
func (m *memStore) Write(_ context.Context, t store.Table) error {
	if m.err != nil {
		return m.err
	}
	m.t = t
	m.writes++
	return nil
}
func (m *memStore) Close() error { return nil }

type recorder struct {
	events []logging.Event
}

func (r *recorder) Write(e logging.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

var today = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func living(first, last string, male bool, birth calendar.Date) person.Person {
	return person.Person{
		FirstName:   first,
		LastName:    last,
		MiddleNames: field.Absent[string](),
		IsMale:      male,
		Birth:       birth,
		Death:       calendar.Living,
	}
}

func threePeople(t *testing.T) *family.Family {
	t.Helper()
	f := family.New("smith")
	for _, p := range []person.Person{
		living("Tom", "Smith", true, calendar.NewDate(1, 2, 1940)),
		living("Ann", "Smith", false, calendar.NewDate(15, 3, 1942)),
		living("Bob", "Smith", true, calendar.NewDate(2, 3, 1970)),
	} {
		if _, err := f.Add(p); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return f
}

type session struct {
	menu   *Menu
	store  *memStore
	events *recorder
	out    *bytes.Buffer
}

func newSession(f *family.Family, lines ...string) *session {
	s := &session{store: &memStore{}, events: &recorder{}, out: &bytes.Buffer{}}
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	s.menu = New(prompt.New(in, s.out), s.store, f,
		WithClock(func() time.Time { return today }),
		WithEvents(s.events, "memory"),
	)
	return s
}

func (s *session) run(t *testing.T) {
	t.Helper()
	if err := s.menu.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v\noutput:\n%s", err, s.out)
	}
}

func TestAddMember(t *testing.T) {
	f := family.New("smith")
	s := newSession(f,
		"3",                // add
		"j0hn", "john",     // first name, re-prompted
		"",                 // no middle names
		"o'neil",           // last name
		"x", "m",           // sex, re-prompted
		"1990", "3", "15",  // birth year, month, day
		"y",                // alive
		"n",                // no more
		"8",                // exit
	)
	s.run(t)

	if f.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", f.Len())
	}
	got, _ := f.Get(1)
	want := living("John", "O'Neil", true, calendar.NewDate(15, 3, 1990))
	want.ID = 1
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("person (-want +got):\n%s", diff)
	}
	if s.store.writes != 1 {
		t.Errorf("writes: got %d, want 1", s.store.writes)
	}
	if diff := cmp.Diff(codec.Header(), s.store.t.Header); diff != "" {
		t.Errorf("header (-want +got):\n%s", diff)
	}
	out := s.out.String()
	for _, want := range []string{"Invalid input", "Added John O'Neil with id 1", "MENU:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if diff := cmp.Diff([]string{logging.EventSave}, s.events.types()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestAddDeceasedWithUnknowns(t *testing.T) {
	f := family.New("smith")
	s := newSession(f,
		"3",
		"mary", "?", "smith", "f",
		"?", "?", "?",         // birth unknown
		"n",                   // not alive
		"1901", "2", "29", "28", // 1901 is not a leap year
		"n",
		"8",
	)
	s.run(t)

	got, err := f.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.MiddleNames.IsUnknown() {
		t.Errorf("MiddleNames: got %v, want unknown", got.MiddleNames)
	}
	if got.IsAlive() {
		t.Errorf("person should be deceased")
	}
	if !got.Death.Equal(calendar.NewDate(28, 2, 1901)) {
		t.Errorf("Death: got %v, want 28/2/1901", got.Death)
	}
	if !strings.Contains(s.out.String(), "must be at most 28") {
		t.Errorf("expected the February day limit to be reported")
	}
}

func TestLinkMembers(t *testing.T) {
	f := threePeople(t)
	s := newSession(f,
		"4",
		"3", "2", "1", // child 3, mother 2, father 1
		"y",
		"9", "3",       // missing child re-prompted
		"3", "0",       // self as mother
		"n",
		"8",
	)
	s.run(t)

	bob, _ := f.Get(3)
	if bob.MotherID != 2 || bob.FatherID != 1 {
		t.Errorf("parents: got %d/%d, want 2/1", bob.MotherID, bob.FatherID)
	}
	out := s.out.String()
	if !strings.Contains(out, "Member does not exist") {
		t.Errorf("missing id should be re-prompted")
	}
	if !strings.Contains(out, "Error: ") {
		t.Errorf("self-parent link should be reported")
	}
	if s.store.writes != 1 {
		t.Errorf("writes: got %d, want 1 (failed link is not saved)", s.store.writes)
	}
	if diff := cmp.Diff([]string{logging.EventSave, logging.EventError}, s.events.types()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestEditMembers(t *testing.T) {
	f := threePeople(t)
	s := newSession(f,
		"5",
		"1", "1", "jim",        // first name
		"y",
		"2", "5", "1943", "?", "?", // date of birth with unknown day and month
		"y",
		"3", "4", "f",          // sex
		"n",
		"8",
	)
	s.run(t)

	tom, _ := f.Get(1)
	if tom.FirstName != "Jim" {
		t.Errorf("FirstName: got %q, want Jim", tom.FirstName)
	}
	ann, _ := f.Get(2)
	if ann.Birth.Day.IsKnown() || ann.Birth.Year.OrElse(0) != 1943 {
		t.Errorf("Birth: got %v, want ?/?/1943", ann.Birth)
	}
	bob, _ := f.Get(3)
	if bob.IsMale {
		t.Errorf("IsMale: got true after edit to f")
	}
	if s.store.writes != 3 {
		t.Errorf("writes: got %d, want 3", s.store.writes)
	}
}

func TestEditCancel(t *testing.T) {
	f := threePeople(t)
	s := newSession(f, "5", "1", "7", "8")
	s.run(t)
	if s.store.writes != 0 {
		t.Errorf("cancel should not save, got %d writes", s.store.writes)
	}
}

func TestRemoveMember(t *testing.T) {
	f := threePeople(t)
	if err := f.SetParents(3, 2, 1); err != nil {
		t.Fatal(err)
	}
	s := newSession(f, "6", "2", "y", "8")
	s.run(t)

	if f.Has(2) {
		t.Fatalf("person 2 still present")
	}
	bob, _ := f.Get(3)
	if bob.MotherID != person.UnknownParent {
		t.Errorf("MotherID: got %d, want reset to 0", bob.MotherID)
	}
	if s.store.writes != 1 || len(s.store.t.Rows) != 2 {
		t.Errorf("store: got %d writes and %d rows", s.store.writes, len(s.store.t.Rows))
	}
}

func TestViews(t *testing.T) {
	f := threePeople(t)
	if err := f.SetParents(3, 2, 1); err != nil {
		t.Fatal(err)
	}
	s := newSession(f, "1", "2", "7", "1", "8")
	s.run(t)

	out := s.out.String()
	for _, want := range []string{
		"Bob Smith",
		"Most descendants: Tom Smith (1)",
		"Days until birthday",
		"Descendants: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if s.store.writes != 0 {
		t.Errorf("views should not write, got %d", s.store.writes)
	}
}

func TestEmptyFamilyViews(t *testing.T) {
	s := newSession(family.New("empty"), "1", "2", "4", "5", "8")
	s.run(t)
	if got := strings.Count(s.out.String(), "No family members yet"); got != 4 {
		t.Errorf("empty message count: got %d, want 4", got)
	}
}

func TestEndOfInputExits(t *testing.T) {
	s := newSession(threePeople(t), "3", "ann")
	s.run(t)
}

func TestSaveFailureIsReported(t *testing.T) {
	f := threePeople(t)
	s := newSession(f, "4", "3", "2", "1", "8")
	s.store.err = errors.New("disk full")
	s.run(t)
	if !strings.Contains(s.out.String(), "Error: write store: disk full") {
		t.Errorf("save failure not reported:\n%s", s.out)
	}
}

func TestCancelledContext(t *testing.T) {
	s := newSession(threePeople(t), "1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.menu.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run: got %v, want context.Canceled", err)
	}
}
