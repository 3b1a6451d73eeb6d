package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesSections(t *testing.T) {
	// Arrange
	selection := NewSelectionSet()

	// Act
	selection.Add("A", NewCourse("A", "Algebra", []Section{{ID: "A1", Mask: 1}}, nil))
	selection.Add("B", NewCourse("B", "Biology", []Section{{ID: "B1", Mask: 2}}, nil))
	selection.Add("A", NewCourse("A", "Renamed", []Section{{ID: "A2", Mask: 4}}, nil))

	// Assert
	assert.Equal(t, []string{"A", "B"}, selection.Codes())
	course, ok := selection.Get("A")
	require.True(t, ok)
	assert.Equal(t, "Algebra", course.Title())
	assert.Equal(t, []string{"A1", "A2"}, course.SectionIDs())
	assert.Equal(t, Mask(0b111), selection.Mask())
}

func TestAddIsIdempotent(t *testing.T) {
	course := NewCourse("A", "", []Section{{ID: "A1", Mask: 1}, {ID: "A2", Mask: 2}}, nil)

	once := NewSelectionSet()
	once.Add("A", course)
	twice := NewSelectionSet()
	twice.Add("A", course)
	twice.Add("A", course)

	assert.Equal(t, once.Assignment(), twice.Assignment())
	assert.Equal(t, 1, twice.Len())
}

func TestZeroValueSelectionAcceptsAdd(t *testing.T) {
	var selection SelectionSet

	selection.Add("A", NewCourse("A", "", nil, nil))

	assert.True(t, selection.Has("A"))
}

func TestRemoveAndClear(t *testing.T) {
	selection := NewSelectionSet()
	selection.Add("A", NewCourse("A", "", nil, nil))
	selection.Add("B", NewCourse("B", "", nil, nil))
	selection.Add("C", NewCourse("C", "", nil, nil))

	selection.Remove("B")
	selection.Remove("missing")
	assert.Equal(t, []string{"A", "C"}, selection.Codes())
	assert.False(t, selection.Has("B"))

	selection.Clear()
	assert.Equal(t, 0, selection.Len())
	assert.Empty(t, selection.Codes())
}

func TestCloneIsIndependent(t *testing.T) {
	selection := NewSelectionSet()
	selection.Add("A", NewCourse("A", "", nil, nil))

	clone := selection.Clone()
	clone.Add("B", NewCourse("B", "", nil, nil))
	clone.Remove("A")

	assert.Equal(t, []string{"A"}, selection.Codes())
	assert.Equal(t, []string{"B"}, clone.Codes())
}

func TestSelectionConflictsWith(t *testing.T) {
	selection := NewSelectionSet()
	selection.Add("A", NewCourse("A", "", []Section{{ID: "A1", Mask: 0b0001}, {ID: "A2", Mask: 0b0010}}, nil))
	selection.Add("B", NewCourse("B", "", []Section{{ID: "B1", Mask: 0b1000}}, nil))

	assert.True(t, selection.ConflictsWith(0b0010))
	assert.True(t, selection.ConflictsWith(0b1000))
	assert.False(t, selection.ConflictsWith(0b0100))
	assert.False(t, NewSelectionSet().ConflictsWith(^Mask(0)))
}

func TestSingle(t *testing.T) {
	selection := NewSelectionSet()

	_, err := selection.Single()
	assert.True(t, InvalidSelection.Has(err))

	selection.Add("A", NewCourse("A", "Algebra", nil, nil))
	course, err := selection.Single()
	require.NoError(t, err)
	assert.Equal(t, "Algebra", course.Title())

	selection.Add("B", NewCourse("B", "", nil, nil))
	_, err = selection.Single()
	assert.True(t, InvalidSelection.Has(err))
}

func TestAllStopsEarly(t *testing.T) {
	selection := NewSelectionSet()
	selection.Add("A", NewCourse("A", "", nil, nil))
	selection.Add("B", NewCourse("B", "", nil, nil))

	visited := []string{}
	for code := range selection.All() {
		visited = append(visited, code)
		break
	}

	assert.Equal(t, []string{"A"}, visited)
}
