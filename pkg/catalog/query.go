package catalog

import (
	"regexp"
	"slices"
	"strings"

	"github.com/limaJavier/coursemix/pkg/model"
	"github.com/samber/lo"
)

// Query is an immutable filter plan over a Table. Building a plan does not
// touch the rows; only Materialize and Collect do, so a plan may be reused and
// materialized concurrently.
type Query struct {
	table      *Table
	predicates []func(row Row) bool
	limit      int
}

func (query Query) where(predicate func(row Row) bool) Query {
	query.predicates = append(slices.Clone(query.predicates), predicate)
	return query
}

// CodePrefix keeps rows whose course code starts with prefix
func (query Query) CodePrefix(prefix string) Query {
	return query.where(func(row Row) bool {
		return strings.HasPrefix(row.Code, prefix)
	})
}

// CodeContains keeps rows whose course code contains any of the tokens. No
// tokens keeps every row.
func (query Query) CodeContains(tokens ...string) Query {
	if len(tokens) == 0 {
		return query
	}
	tokens = slices.Clone(tokens)
	return query.where(func(row Row) bool {
		return lo.SomeBy(tokens, func(token string) bool {
			return strings.Contains(row.Code, token)
		})
	})
}

// Semester keeps rows whose section identifier starts with prefix
func (query Query) Semester(prefix string) Query {
	return query.where(func(row Row) bool {
		return strings.HasPrefix(row.Section, prefix)
	})
}

// Matching keeps rows whose code or title matches the pattern
func (query Query) Matching(pattern *regexp.Regexp) Query {
	return query.where(func(row Row) bool {
		return pattern.MatchString(row.Code) || pattern.MatchString(row.Title)
	})
}

// NoConflictWith keeps rows that can be attended together with every section
// retained by the selection
func (query Query) NoConflictWith(selection model.SelectionSet) Query {
	selection = selection.Clone()
	return query.where(func(row Row) bool {
		return !selection.ConflictsWith(row.Mask)
	})
}

// PrerequisitesMet keeps rows whose prerequisites are all among completed
func (query Query) PrerequisitesMet(completed ...string) Query {
	done := lo.Associate(completed, func(code string) (string, bool) { return code, true })
	return query.where(func(row Row) bool {
		return lo.EveryBy(row.Prerequisites, func(code string) bool { return done[code] })
	})
}

// Excluding drops rows of courses already present in the selection
func (query Query) Excluding(selection model.SelectionSet) Query {
	selection = selection.Clone()
	return query.where(func(row Row) bool {
		return !selection.Has(row.Code)
	})
}

// Limit caps the number of materialized rows; zero means no cap
func (query Query) Limit(n int) Query {
	query.limit = n
	return query
}

// Materialize runs the plan and returns the matching rows in source order
func (query Query) Materialize() []Row {
	rows := lo.Filter(query.table.rows, func(row Row, _ int) bool {
		return lo.EveryBy(query.predicates, func(predicate func(row Row) bool) bool {
			return predicate(row)
		})
	})
	if query.limit > 0 && len(rows) > query.limit {
		rows = rows[:query.limit]
	}
	return rows
}

// Collect runs the plan and groups the matching rows into courses
func (query Query) Collect() model.SelectionSet {
	return group(query.Materialize())
}
