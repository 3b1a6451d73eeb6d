package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCourseKeepsFirstDuplicateSection(t *testing.T) {
	// Arrange & Act
	course := NewCourse("COMP1117", "Computer programming", []Section{
		{ID: "1A", Mask: 0b001},
		{ID: "1B", Mask: 0b010},
		{ID: "1A", Mask: 0b100},
	}, []string{"", "MATH1013"})

	// Assert
	assert.Equal(t, "COMP1117", course.Code())
	assert.Equal(t, "Computer programming", course.Title())
	assert.Equal(t, []string{"1A", "1B"}, course.SectionIDs())
	assert.Equal(t, []string{"MATH1013"}, course.Prerequisites())
	mask, ok := course.Section("1A")
	assert.True(t, ok)
	assert.Equal(t, Mask(0b001), mask)
	_, ok = course.Section("2A")
	assert.False(t, ok)
	assert.Equal(t, Mask(0b011), course.Mask())
}

func TestCourseIsImmutable(t *testing.T) {
	course := NewCourse("A", "", []Section{{ID: "A1", Mask: 1}}, []string{"P"})

	sections := course.Sections()
	sections[0].Mask = 0b1000
	prerequisites := course.Prerequisites()
	prerequisites[0] = "Q"

	assert.Equal(t, Mask(1), course.Sections()[0].Mask)
	assert.Equal(t, []string{"P"}, course.Prerequisites())
}

// A course is blocked as soon as one of its sections overlaps
func TestCourseConflictsWithAnySection(t *testing.T) {
	course := NewCourse("A", "", []Section{{ID: "A1", Mask: 0b0001}, {ID: "A2", Mask: 0b0010}}, nil)

	assert.True(t, course.ConflictsWith(0b0001))
	assert.True(t, course.ConflictsWith(0b0010))
	assert.False(t, course.ConflictsWith(0b0100))
	assert.False(t, NewCourse("B", "", nil, nil).ConflictsWith(^Mask(0)))
}

func TestMergeRetainsMetadataAndUnionsSections(t *testing.T) {
	first := NewCourse("A", "First", []Section{{ID: "A1", Mask: 1}}, []string{"P"})
	second := NewCourse("A", "Second", []Section{{ID: "A1", Mask: 1}, {ID: "A2", Mask: 2}}, []string{"Q"})

	merged := first.Merge(second)

	assert.Equal(t, "First", merged.Title())
	assert.Equal(t, []string{"P"}, merged.Prerequisites())
	assert.Equal(t, []string{"A1", "A2"}, merged.SectionIDs())
	assert.Equal(t, []string{"A1"}, first.SectionIDs())
}

func TestRestrict(t *testing.T) {
	course := NewCourse("A", "", []Section{{ID: "1A", Mask: 1}, {ID: "1B", Mask: 2}, {ID: "2A", Mask: 4}}, nil)

	firstSemester := course.Restrict(func(id string) bool { return strings.HasPrefix(id, "1") })

	assert.Equal(t, []string{"1A", "1B"}, firstSemester.SectionIDs())
	assert.Equal(t, 3, course.Len())
}

func TestPrerequisitesMet(t *testing.T) {
	course := NewCourse("COMP2119", "", nil, []string{"COMP1117", "MATH1013"})

	assert.True(t, course.PrerequisitesMet(map[string]bool{"COMP1117": true, "MATH1013": true, "X": true}))
	assert.False(t, course.PrerequisitesMet(map[string]bool{"COMP1117": true}))
	assert.True(t, NewCourse("A", "", nil, []string{""}).PrerequisitesMet(nil))
}
