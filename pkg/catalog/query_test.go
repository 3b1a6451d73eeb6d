package catalog

import (
	"regexp"
	"sync"
	"testing"

	"github.com/limaJavier/coursemix/pkg/model"
	"github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func sections(rows []Row) []string {
	return lo.Map(rows, func(row Row, _ int) string { return row.Code + "/" + row.Section })
}

func TestQueryFilters(t *testing.T) {
	table := loadTestTable(t)
	completed := model.NewSelectionSet()
	completed.Add("COMP1117", model.NewCourse("COMP1117", "", []model.Section{{ID: "1A", Mask: 1}}, nil))

	scenarios := map[string]struct {
		query    Query
		expected []string
	}{
		"everything":     {table.Query(), []string{"COMP1117/1A", "COMP1117/1B", "COMP2119/1A", "COMP2119/2A", "MATH1013/1A", "COMP3230/1A"}},
		"code prefix":    {table.Query().CodePrefix("COMP2"), []string{"COMP2119/1A", "COMP2119/2A"}},
		"code contains":  {table.Query().CodeContains("1013", "3230"), []string{"MATH1013/1A", "COMP3230/1A"}},
		"semester":       {table.Query().Semester("2"), []string{"COMP2119/2A"}},
		"regexp":         {table.Query().Matching(regexp.MustCompile(`(?i)^data`)), []string{"COMP2119/1A", "COMP2119/2A"}},
		"no conflict":    {table.Query().NoConflictWith(completed), []string{"COMP1117/1B", "COMP2119/2A", "MATH1013/1A", "COMP3230/1A"}},
		"prerequisites":  {table.Query().PrerequisitesMet("COMP1117"), []string{"COMP1117/1A", "COMP1117/1B", "COMP2119/1A", "COMP2119/2A", "MATH1013/1A"}},
		"excluding":      {table.Query().CodePrefix("COMP1").Excluding(completed), []string{}},
		"chained":        {table.Query().CodePrefix("COMP").NoConflictWith(completed).Semester("1"), []string{"COMP1117/1B", "COMP3230/1A"}},
		"limit":          {table.Query().CodePrefix("COMP").Limit(1), []string{"COMP1117/1A"}},
		"empty contains": {table.Query().CodeContains().Limit(2), []string{"COMP1117/1A", "COMP1117/1B"}},
	}

	for name, scenario := range scenarios {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, scenario.expected, sections(scenario.query.Materialize()))
		})
	}
}

// Two sections of one course are browsed together; a row is blocked as soon as
// it overlaps either of them
func TestNoConflictWithUsesAnySection(t *testing.T) {
	table := loadTestTable(t)
	browsing, err := table.Courses("COMP1117")
	assert.NoError(t, err)

	rows := table.Query().NoConflictWith(browsing).Materialize()

	assert.Equal(t, []string{"COMP2119/2A", "MATH1013/1A", "COMP3230/1A"}, sections(rows))
}

func TestQueryPlansAreImmutable(t *testing.T) {
	table := loadTestTable(t)
	base := table.Query().CodePrefix("COMP")

	narrow := base.Semester("2")
	wide := base.Semester("1")

	assert.Equal(t, []string{"COMP2119/2A"}, sections(narrow.Materialize()))
	assert.Len(t, wide.Materialize(), 4)
	assert.Len(t, base.Materialize(), 5)
}

func TestMaterializeConcurrently(t *testing.T) {
	g := gomega.NewWithT(t)
	table := loadTestTable(t)
	query := table.Query().CodePrefix("COMP").Semester("1")
	expected := sections(query.Materialize())

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = sections(query.Materialize())
		}(i)
	}
	wg.Wait()

	g.Expect(results).To(gomega.HaveEach(gomega.Equal(expected)))
}

func TestCollect(t *testing.T) {
	table := loadTestTable(t)

	selection := table.Query().CodePrefix("COMP1").Collect()

	course, err := selection.Single()
	assert.NoError(t, err)
	assert.Equal(t, []string{"1A", "1B"}, course.SectionIDs())
}
