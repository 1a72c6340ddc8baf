package typeahead

import "slices"

// SelectionSet is an ordered set of chosen record IDs. Insertion order is
// preserved and an ID appears at most once. The zero value is ready to use.
//
// A SelectionSet belongs to a single session and is not safe for
// concurrent use.
type SelectionSet struct {
	ids []string
}

// Add appends id to the set.
// Returns false if id is empty or already selected.
func (s *SelectionSet) Add(id string) bool {
	if id == "" || s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove deletes id from the set, keeping the order of the others.
// Returns false if id was not selected.
func (s *SelectionSet) Remove(id string) bool {
	i := slices.Index(s.ids, id)
	if i < 0 {
		return false
	}
	s.ids = slices.Delete(s.ids, i, i+1)
	return true
}

// Contains reports whether id is selected.
func (s *SelectionSet) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// IDs returns a copy of the selected IDs in insertion order.
func (s *SelectionSet) IDs() []string {
	return slices.Clone(s.ids)
}

// Len returns the number of selected IDs.
func (s *SelectionSet) Len() int {
	return len(s.ids)
}
