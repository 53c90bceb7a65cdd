// Package family holds one family's people in memory and enforces the
// invariants that span records: unique ids, a forward-only id counter and
// resolvable parent references.
package family

import (
	"fmt"
	"strconv"

	"github.com/nibzard/familytree-go/internal/codec"
	"github.com/nibzard/familytree-go/internal/field"
	"github.com/nibzard/familytree-go/internal/person"
)

// Op names a kind of change.
type Op string

const (
	OpAdd    Op = "add"
	OpEdit   Op = "edit"
	OpLink   Op = "link"
	OpRemove Op = "remove"
)

// Change describes one committed mutation.
type Change struct {
	Op     Op
	ID     int
	Record []string // encoded record after the change; nil for removals
}

// Family is an ordered collection of people plus the id counter.
// It is not safe for concurrent use.
type Family struct {
	name     string
	people   []person.Person
	index    map[int]int // id -> position in people
	nextID   int
	watchers []func(Change)
}

// New returns an empty family.
func New(name string) *Family {
	return &Family{name: name, index: make(map[int]int), nextID: 1}
}

// Load decodes rows into a family. Ids must be unique and every parent
// reference must resolve once all rows are read; references may point
// forward in the input.
func Load(name string, rows [][]string) (*Family, error) {
	people, err := codec.DecodeAll(rows)
	if err != nil {
		return nil, fmt.Errorf("load family %q: %w", name, err)
	}
	f := New(name)
	for i, p := range people {
		if _, dup := f.index[p.ID]; dup {
			return nil, fmt.Errorf("load family %q: record %d: %w", name, i+1,
				field.Invalid("ID", strconv.Itoa(p.ID), "duplicate id"))
		}
		f.index[p.ID] = len(f.people)
		f.people = append(f.people, p)
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	for i := range f.people {
		if err := f.checkParents(&f.people[i]); err != nil {
			return nil, fmt.Errorf("load family %q: record %d: %w", name, i+1, err)
		}
	}
	return f, nil
}

// Name returns the family name.
func (f *Family) Name() string { return f.name }

// Len returns the number of people.
func (f *Family) Len() int { return len(f.people) }

// NextID returns the id the next Add will assign.
func (f *Family) NextID() int { return f.nextID }

// Observe registers fn to be called after every committed change.
func (f *Family) Observe(fn func(Change)) {
	f.watchers = append(f.watchers, fn)
}

func (f *Family) notify(op Op, id int, p *person.Person) {
	c := Change{Op: op, ID: id}
	if p != nil {
		c.Record = codec.Encode(p)
	}
	for _, fn := range f.watchers {
		fn(c)
	}
}

// Get returns a copy of the person with id.
func (f *Family) Get(id int) (person.Person, error) {
	i, ok := f.index[id]
	if !ok {
		return person.Person{}, &NotFoundError{ID: id}
	}
	return f.people[i], nil
}

// Has reports whether id exists.
func (f *Family) Has(id int) bool {
	_, ok := f.index[id]
	return ok
}

// All returns copies of every person in insertion order.
func (f *Family) All() []person.Person {
	out := make([]person.Person, len(f.people))
	copy(out, f.people)
	return out
}

// Add assigns the next id to draft, validates it and appends it.
// The draft's ID is ignored. Names are stored title-cased.
func (f *Family) Add(draft person.Person) (int, error) {
	draft.ID = f.nextID
	draft, err := canonical(draft)
	if err != nil {
		return 0, err
	}
	if err := f.checkParents(&draft); err != nil {
		return 0, err
	}
	if err := f.checkParentSex(&draft, nil); err != nil {
		return 0, err
	}
	f.nextID++
	f.index[draft.ID] = len(f.people)
	f.people = append(f.people, draft)
	f.notify(OpAdd, draft.ID, &draft)
	return draft.ID, nil
}

// SetMother links child to mother. A zero mother clears the link.
func (f *Family) SetMother(child, mother int) error {
	return f.link(child, func(p *person.Person) { p.MotherID = mother })
}

// SetFather links child to father. A zero father clears the link.
func (f *Family) SetFather(child, father int) error {
	return f.link(child, func(p *person.Person) { p.FatherID = father })
}

// SetParents sets both parent links at once. Either both are stored or,
// on error, neither.
func (f *Family) SetParents(child, mother, father int) error {
	return f.link(child, func(p *person.Person) {
		p.MotherID = mother
		p.FatherID = father
	})
}

func (f *Family) link(child int, set func(*person.Person)) error {
	return f.commit(OpLink, child, func(p *person.Person) error {
		set(p)
		return nil
	})
}

// Edit applies fn to a copy of the person and commits it only when fn
// succeeds and the result is valid. The id cannot be changed.
func (f *Family) Edit(id int, fn func(*person.Person) error) error {
	return f.commit(OpEdit, id, fn)
}

func (f *Family) commit(op Op, id int, fn func(*person.Person) error) error {
	i, ok := f.index[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	p := f.people[i]
	if err := fn(&p); err != nil {
		return err
	}
	if p.ID != id {
		return field.Invalid("ID", strconv.Itoa(p.ID), "cannot be changed")
	}
	p, err := canonical(p)
	if err != nil {
		return err
	}
	if err := f.checkParents(&p); err != nil {
		return err
	}
	old := &f.people[i]
	if err := f.checkParentSex(&p, old); err != nil {
		return err
	}
	if p.IsMale != old.IsMale {
		if err := f.checkChildrenSex(&p); err != nil {
			return err
		}
	}
	f.people[i] = p
	f.notify(op, id, &p)
	return nil
}

// Remove deletes the person with id. Children that referenced them have
// that parent reset to unknown. Ids are never reused.
func (f *Family) Remove(id int) error {
	i, ok := f.index[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	f.people = append(f.people[:i], f.people[i+1:]...)
	delete(f.index, id)
	var orphaned []int
	for j := range f.people {
		p := &f.people[j]
		f.index[p.ID] = j
		if p.MotherID != id && p.FatherID != id {
			continue
		}
		if p.MotherID == id {
			p.MotherID = person.UnknownParent
		}
		if p.FatherID == id {
			p.FatherID = person.UnknownParent
		}
		orphaned = append(orphaned, j)
	}
	f.notify(OpRemove, id, nil)
	for _, j := range orphaned {
		f.notify(OpLink, f.people[j].ID, &f.people[j])
	}
	return nil
}

// canonical passes p through the record codec so that it holds exactly what
// a reload from storage would produce. Names outside the stored charset are
// rejected and accepted names come back title-cased.
func canonical(p person.Person) (person.Person, error) {
	return codec.Decode(codec.Encode(&p))
}

func (f *Family) checkParents(p *person.Person) error {
	for _, ref := range []struct {
		field string
		id    int
	}{{"Mother ID", p.MotherID}, {"Father ID", p.FatherID}} {
		if ref.id == person.UnknownParent {
			continue
		}
		if ref.id == p.ID {
			return &UnresolvedReferenceError{Field: ref.field, ID: p.ID, Ref: ref.id}
		}
		if _, ok := f.index[ref.id]; !ok {
			return &UnresolvedReferenceError{Field: ref.field, ID: p.ID, Ref: ref.id}
		}
	}
	return nil
}

// checkParentSex rejects a male mother or a female father. Only links that
// differ from old are checked; old is nil for a new person.
func (f *Family) checkParentSex(p, old *person.Person) error {
	if p.MotherID != person.UnknownParent && (old == nil || old.MotherID != p.MotherID) &&
		f.people[f.index[p.MotherID]].IsMale {
		return &ParentSexError{Field: "Mother ID", ID: p.ID, Ref: p.MotherID}
	}
	if p.FatherID != person.UnknownParent && (old == nil || old.FatherID != p.FatherID) &&
		!f.people[f.index[p.FatherID]].IsMale {
		return &ParentSexError{Field: "Father ID", ID: p.ID, Ref: p.FatherID}
	}
	return nil
}

// checkChildrenSex rejects a change of sex for someone already linked as a
// mother or father.
func (f *Family) checkChildrenSex(parent *person.Person) error {
	for i := range f.people {
		c := &f.people[i]
		if parent.IsMale && c.MotherID == parent.ID {
			return &ParentSexError{Field: "Mother ID", ID: c.ID, Ref: parent.ID}
		}
		if !parent.IsMale && c.FatherID == parent.ID {
			return &ParentSexError{Field: "Father ID", ID: c.ID, Ref: parent.ID}
		}
	}
	return nil
}

// Rows returns every record encoded, in insertion order, for a full rewrite
// of the backing store.
func (f *Family) Rows() [][]string {
	rows := make([][]string, len(f.people))
	for i := range f.people {
		rows[i] = codec.Encode(&f.people[i])
	}
	return rows
}
