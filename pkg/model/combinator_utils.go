package model

import (
	"iter"
	"slices"

	"github.com/limaJavier/coursemix/pkg/trace"
	"github.com/samber/lo"
)

// choice is a node of a persistent list of picks shared between partials
type choice struct {
	candidate *Candidate
	section   Section
	parent    *choice
}

// partial is a conflict-free assignment of the courses processed so far
type partial struct {
	mask Mask
	last *choice
}

type stepFunc func(frontier []partial, candidate *Candidate) []partial

func combine(candidates iter.Seq[Candidate], seed SelectionSet, step stepFunc, tracer *trace.Tracer) []SelectionSet {
	assigned := make(map[string]bool)
	for code := range seed.All() {
		assigned[code] = true
	}

	frontier := []partial{{mask: seed.Mask()}}
	steps := 0
	for candidate := range candidates {
		// A course is placed once, either by the seed or by its first candidate
		if assigned[candidate.Code] {
			tracer.Tracef("skipping %v: already assigned", candidate.Code)
			continue
		}
		assigned[candidate.Code] = true

		frontier = step(frontier, &candidate)
		steps++
		tracer.Debugf("step %d (%v, %d sections): %d partial schedules", steps, candidate.Code, len(candidate.Sections), len(frontier))

		// No extension can repair an empty frontier
		if len(frontier) == 0 {
			tracer.Debugf("infeasible at %v", candidate.Code)
			return []SelectionSet{}
		}
	}

	if steps == 0 {
		return []SelectionSet{}
	}
	return lo.Map(frontier, func(p partial, _ int) SelectionSet {
		return materialize(p, seed)
	})
}

func expand(frontier []partial, candidate *Candidate) []partial {
	expanded := make([]partial, 0, len(frontier))
	for _, p := range frontier {
		for _, section := range candidate.Sections {
			if p.mask.Conflicts(section.Mask) {
				continue
			}
			expanded = append(expanded, partial{
				mask: p.mask.Union(section.Mask),
				last: &choice{candidate: candidate, section: section, parent: p.last},
			})
		}
	}
	return expanded
}

func materialize(p partial, seed SelectionSet) SelectionSet {
	picks := make([]*choice, 0)
	for node := p.last; node != nil; node = node.parent {
		picks = append(picks, node)
	}
	slices.Reverse(picks)

	selection := seed.Clone()
	for _, pick := range picks {
		candidate := pick.candidate
		selection.Add(candidate.Code, NewCourse(candidate.Code, candidate.Title, []Section{pick.section}, candidate.Prerequisites))
	}
	return selection
}

// CandidateOf turns a course into a candidate offering all of its sections
func CandidateOf(course Course) Candidate {
	return Candidate{
		Code:          course.Code(),
		Title:         course.Title(),
		Prerequisites: course.Prerequisites(),
		Sections:      course.Sections(),
	}
}

// CandidatesFrom returns one candidate per entry of the selection, in selection order
func CandidatesFrom(selection SelectionSet) []Candidate {
	candidates := make([]Candidate, 0, selection.Len())
	for code, course := range selection.All() {
		candidate := CandidateOf(course)
		candidate.Code = code
		candidates = append(candidates, candidate)
	}
	return candidates
}

// OrderByFewestSections returns the candidates sorted by ascending number of
// sections, keeping the given order among ties. Narrow courses first shrink the
// frontier sooner; the set of results does not change.
func OrderByFewestSections(candidates []Candidate) []Candidate {
	ordered := slices.Clone(candidates)
	slices.SortStableFunc(ordered, func(a, b Candidate) int {
		return len(a.Sections) - len(b.Sections)
	})
	return ordered
}

// Verify checks that every schedule holds the seed plus exactly one offered
// section per candidate, and that no two occupied sections overlap
func Verify(schedules []SelectionSet, candidates []Candidate, seed SelectionSet) bool {
	offered := make(map[string][]Section)
	for _, candidate := range candidates {
		if seed.Has(candidate.Code) {
			continue
		}
		if _, ok := offered[candidate.Code]; !ok {
			offered[candidate.Code] = candidate.Sections
		}
	}

	for _, schedule := range schedules {
		if schedule.Len() != seed.Len()+len(offered) {
			return false
		}

		occupied := seed.Mask()
		for code, sections := range offered {
			course, ok := schedule.Get(code)
			if !ok || course.Len() != 1 {
				return false
			}
			picked := course.Sections()[0]
			if !slices.Contains(sections, picked) || occupied.Conflicts(picked.Mask) {
				return false
			}
			occupied = occupied.Union(picked.Mask)
		}
	}
	return true
}
