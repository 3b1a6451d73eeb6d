package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/limaJavier/coursemix/pkg/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseListJSON(t *testing.T) {
	// Arrange
	table := loadTestTable(t)
	selection, err := table.Courses("COMP3230", "COMP1117")
	require.NoError(t, err)

	// Act
	var buffer bytes.Buffer
	err = NewCourseList(selection).WriteJSON(&buffer)

	// Assert
	require.NoError(t, err)
	assert.JSONEq(t, `{"courses": [
		{"code": "COMP3230", "title": "Operating systems", "sections": [{"section": "1A", "session": 16}], "prereq": "COMP2119&MATH1013"},
		{"code": "COMP1117", "title": "Computer programming", "sections": [{"section": "1A", "session": 1}, {"section": "1B", "session": 2}], "prereq": ""}
	]}`, buffer.String())
}

func TestWriteCSVRoundTrip(t *testing.T) {
	// Arrange
	table := loadTestTable(t)
	rows := table.Query().CodePrefix("COMP").Materialize()

	// Act
	var buffer bytes.Buffer
	err := WriteCSV(&buffer, rows, ';')
	require.NoError(t, err)
	reloaded, err := Read(strings.NewReader(buffer.String()), ';')

	// Assert
	require.NoError(t, err)
	assert.Equal(t, rows, reloaded.Rows())
	assert.True(t, strings.HasPrefix(buffer.String(), "COURSE CODE;COURSE TITLE;CLASS SECTION;SESSIONS;PREREQ\n"))
}

func TestWriteJSONLists(t *testing.T) {
	// Arrange
	table := loadTestTable(t)
	first, err := table.Section("COMP1117", "1A")
	require.NoError(t, err)
	second, err := table.Section("COMP1117", "1B")
	require.NoError(t, err)
	schedules := []model.SelectionSet{model.NewSelectionSet(), model.NewSelectionSet()}
	schedules[0].Add("COMP1117", first)
	schedules[1].Add("COMP1117", second)

	// Act
	var buffer bytes.Buffer
	err = WriteJSON(&buffer, NewCourseLists(schedules))

	// Assert
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"courses": [{"code": "COMP1117", "title": "Computer programming", "sections": [{"section": "1A", "session": 1}], "prereq": ""}]},
		{"courses": [{"code": "COMP1117", "title": "Computer programming", "sections": [{"section": "1B", "session": 2}], "prereq": ""}]}
	]`, buffer.String())
}

func TestSelectionRowsReload(t *testing.T) {
	// Arrange
	table := loadTestTable(t)
	selection, err := table.Courses("COMP3230", "COMP2119")
	require.NoError(t, err)

	// Act
	rows := SelectionRows(selection)
	var buffer bytes.Buffer
	require.NoError(t, WriteCSV(&buffer, rows, ','))
	reloaded, err := Read(&buffer, ',')

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"COMP3230/1A", "COMP2119/1A", "COMP2119/2A"}, lo.Map(rows, func(row Row, _ int) string { return row.Code + "/" + row.Section }))
	assert.Equal(t, selection.Assignment(), reloaded.Catalog().Assignment())
	course, err := reloaded.Course("COMP3230")
	require.NoError(t, err)
	assert.Equal(t, []string{"COMP2119", "MATH1013"}, course.Prerequisites())
	assert.Equal(t, model.Mask(16), course.Mask())
}
