package model

import (
	"iter"
	"slices"

	"github.com/samber/lo"
)

// SelectionSet maps course codes to courses, keeping codes in insertion order.
// While browsing an entry may hold several candidate sections; the sets produced
// by a Combinator hold exactly one section per entry.
type SelectionSet struct {
	codes   []string
	courses map[string]Course
}

func NewSelectionSet() SelectionSet {
	return SelectionSet{
		codes:   make([]string, 0),
		courses: make(map[string]Course),
	}
}

// Add inserts the course under code, or merges its sections into the existing
// entry. The first inserted title and prerequisites are retained.
func (selection *SelectionSet) Add(code string, course Course) {
	if selection.courses == nil {
		selection.courses = make(map[string]Course)
	}
	if existing, ok := selection.courses[code]; ok {
		selection.courses[code] = existing.Merge(course)
		return
	}
	selection.codes = append(selection.codes, code)
	selection.courses[code] = course
}

// Remove deletes the entry for code; removing an absent code is a no-op
func (selection *SelectionSet) Remove(code string) {
	if _, ok := selection.courses[code]; !ok {
		return
	}
	delete(selection.courses, code)
	selection.codes = slices.DeleteFunc(selection.codes, func(c string) bool { return c == code })
}

func (selection *SelectionSet) Clear() {
	selection.codes = make([]string, 0)
	selection.courses = make(map[string]Course)
}

func (selection SelectionSet) Get(code string) (Course, bool) {
	course, ok := selection.courses[code]
	return course, ok
}

func (selection SelectionSet) Has(code string) bool {
	_, ok := selection.courses[code]
	return ok
}

func (selection SelectionSet) Len() int {
	return len(selection.codes)
}

// Codes returns the course codes in insertion order
func (selection SelectionSet) Codes() []string {
	return slices.Clone(selection.codes)
}

// All iterates over the entries in insertion order
func (selection SelectionSet) All() iter.Seq2[string, Course] {
	return func(yield func(string, Course) bool) {
		for _, code := range selection.codes {
			if !yield(code, selection.courses[code]) {
				return
			}
		}
	}
}

// Clone returns an independent copy; courses are immutable so they are shared
func (selection SelectionSet) Clone() SelectionSet {
	clone := SelectionSet{
		codes:   slices.Clone(selection.codes),
		courses: make(map[string]Course, len(selection.courses)),
	}
	if clone.codes == nil {
		clone.codes = make([]string, 0)
	}
	for code, course := range selection.courses {
		clone.courses[code] = course
	}
	return clone
}

// Mask returns the union of every retained section of every course
func (selection SelectionSet) Mask() Mask {
	mask := Mask(0)
	for _, course := range selection.All() {
		mask = mask.Union(course.Mask())
	}
	return mask
}

// ConflictsWith reports whether any course of the selection conflicts with the mask
func (selection SelectionSet) ConflictsWith(mask Mask) bool {
	return lo.SomeBy(selection.codes, func(code string) bool {
		return selection.courses[code].ConflictsWith(mask)
	})
}

// Single returns the only course of the selection. It fails unless the
// selection holds exactly one entry.
func (selection SelectionSet) Single() (Course, error) {
	if len(selection.codes) != 1 {
		return Course{}, InvalidSelection.New("expected exactly one course, found %d: %v", len(selection.codes), selection.codes)
	}
	return selection.courses[selection.codes[0]], nil
}

// Assignment returns, for every code, the IDs of its retained sections
func (selection SelectionSet) Assignment() map[string][]string {
	assignment := make(map[string][]string, len(selection.codes))
	for code, course := range selection.All() {
		assignment[code] = course.SectionIDs()
	}
	return assignment
}
