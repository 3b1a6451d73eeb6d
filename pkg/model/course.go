package model

import (
	"slices"

	"github.com/samber/lo"
)

// Section is one schedulable offering of a course
type Section struct {
	ID   string
	Mask Mask
}

// Course is a course identity with its sections in insertion order. A Course is
// immutable: every method returning a Course returns a new value.
type Course struct {
	code          string
	title         string
	sections      []Section
	index         map[string]int
	prerequisites []string
}

// NewCourse builds a course. Sections sharing an ID keep the first occurrence
// and empty prerequisite codes are dropped.
func NewCourse(code, title string, sections []Section, prerequisites []string) Course {
	course := Course{
		code:          code,
		title:         title,
		sections:      make([]Section, 0, len(sections)),
		index:         make(map[string]int, len(sections)),
		prerequisites: lo.Compact(slices.Clone(prerequisites)),
	}
	for _, section := range sections {
		course = course.withSection(section)
	}
	return course
}

// withSection appends in place; only used while the course is being built
func (course Course) withSection(section Section) Course {
	if _, ok := course.index[section.ID]; ok {
		return course
	}
	course.index[section.ID] = len(course.sections)
	course.sections = append(course.sections, section)
	return course
}

func (course Course) Code() string {
	return course.code
}

func (course Course) Title() string {
	return course.title
}

// Prerequisites returns the prerequisite course codes in their original order
func (course Course) Prerequisites() []string {
	return slices.Clone(course.prerequisites)
}

// Sections returns the sections in insertion order
func (course Course) Sections() []Section {
	return slices.Clone(course.sections)
}

// Section returns the mask of the section with the given ID
func (course Course) Section(id string) (Mask, bool) {
	i, ok := course.index[id]
	if !ok {
		return 0, false
	}
	return course.sections[i].Mask, true
}

// SectionIDs returns the IDs of the sections in insertion order
func (course Course) SectionIDs() []string {
	return lo.Map(course.sections, func(section Section, _ int) string { return section.ID })
}

func (course Course) Len() int {
	return len(course.sections)
}

// Mask returns the union of every section's mask
func (course Course) Mask() Mask {
	return lo.Reduce(course.sections, func(mask Mask, section Section, _ int) Mask {
		return mask.Union(section.Mask)
	}, Mask(0))
}

// ConflictsWith reports whether any section of the course overlaps the mask
func (course Course) ConflictsWith(mask Mask) bool {
	return lo.SomeBy(course.sections, func(section Section) bool {
		return section.Mask.Conflicts(mask)
	})
}

// Restrict returns the course keeping only the sections whose IDs satisfy keep
func (course Course) Restrict(keep func(id string) bool) Course {
	return NewCourse(course.code, course.title, lo.Filter(course.sections, func(section Section, _ int) bool {
		return keep(section.ID)
	}), course.prerequisites)
}

// Merge returns the course with other's sections appended. The receiver's
// metadata is retained and sections already present are not duplicated.
func (course Course) Merge(other Course) Course {
	return NewCourse(course.code, course.title, append(slices.Clone(course.sections), other.sections...), course.prerequisites)
}

// PrerequisitesMet reports whether every prerequisite is among the completed codes
func (course Course) PrerequisitesMet(completed map[string]bool) bool {
	return lo.EveryBy(course.prerequisites, func(code string) bool {
		return completed[code]
	})
}
