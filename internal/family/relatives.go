package family

import "github.com/nibzard/familytree-go/internal/person"

// Relatives groups the people directly related to one person.
type Relatives struct {
	Mother   *person.Person
	Father   *person.Person
	Children []person.Person
	Siblings []person.Person // share at least one known parent
	Partners []person.Person // share at least one child
}

// Relatives returns the relatives of id.
func (f *Family) Relatives(id int) (Relatives, error) {
	p, err := f.Get(id)
	if err != nil {
		return Relatives{}, err
	}
	r := Relatives{
		Mother: f.lookup(p.MotherID),
		Father: f.lookup(p.FatherID),
	}
	r.Children, _ = f.Children(id)
	r.Siblings, _ = f.Siblings(id)
	r.Partners, _ = f.Partners(id)
	return r, nil
}

func (f *Family) lookup(id int) *person.Person {
	if id == person.UnknownParent {
		return nil
	}
	i, ok := f.index[id]
	if !ok {
		return nil
	}
	p := f.people[i]
	return &p
}

// Children returns everyone whose mother or father is id, in insertion order.
func (f *Family) Children(id int) ([]person.Person, error) {
	if !f.Has(id) {
		return nil, &NotFoundError{ID: id}
	}
	return f.childrenOf(id), nil
}

func (f *Family) childrenOf(id int) []person.Person {
	var out []person.Person
	for _, p := range f.people {
		if p.MotherID == id || p.FatherID == id {
			out = append(out, p)
		}
	}
	return out
}

// Siblings returns everyone other than id sharing a known parent with id.
func (f *Family) Siblings(id int) ([]person.Person, error) {
	p, err := f.Get(id)
	if err != nil {
		return nil, err
	}
	shares := func(o person.Person) bool {
		return (p.MotherID != person.UnknownParent && o.MotherID == p.MotherID) ||
			(p.FatherID != person.UnknownParent && o.FatherID == p.FatherID)
	}
	var out []person.Person
	for _, o := range f.people {
		if o.ID != id && shares(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Partners returns everyone who is the other parent of one of id's children.
func (f *Family) Partners(id int) ([]person.Person, error) {
	if !f.Has(id) {
		return nil, &NotFoundError{ID: id}
	}
	seen := make(map[int]bool)
	var out []person.Person
	for _, c := range f.childrenOf(id) {
		for _, other := range []int{c.MotherID, c.FatherID} {
			if other == id || other == person.UnknownParent || seen[other] {
				continue
			}
			seen[other] = true
			if p := f.lookup(other); p != nil {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

// Descendants counts the distinct descendants of id.
func (f *Family) Descendants(id int) (int, error) {
	if !f.Has(id) {
		return 0, &NotFoundError{ID: id}
	}
	return f.countDescendants(id), nil
}

func (f *Family) countDescendants(id int) int {
	// Parent links are not checked for cycles, so track visited ids.
	seen := map[int]bool{id: true}
	queue := []int{id}
	count := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range f.childrenOf(cur) {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			count++
			queue = append(queue, c.ID)
		}
	}
	return count
}

// MostDescendants returns the person with the most descendants. Earlier
// records win ties. ok is false for an empty family.
func (f *Family) MostDescendants() (p person.Person, count int, ok bool) {
	count = -1
	for _, cand := range f.people {
		if n := f.countDescendants(cand.ID); n > count {
			p, count, ok = cand, n, true
		}
	}
	if !ok {
		count = 0
	}
	return p, count, ok
}
