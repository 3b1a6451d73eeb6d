package model

import "iter"

// Candidate is a course to include in every produced schedule together with the
// sections it may be scheduled in, in the order they should be tried
type Candidate struct {
	Code          string
	Title         string
	Prerequisites []string
	Sections      []Section
}

// Combinator enumerates every way of picking exactly one section per candidate
// such that no two picks, nor a pick and the seed, overlap.
//
// An empty result means the input is infeasible, which is a regular answer and
// not an error. Results are produced in a deterministic order: candidates in the
// given order and, within a candidate, sections in the given order.
type Combinator interface {
	Combine(candidates []Candidate, seed SelectionSet) []SelectionSet

	// CombineSeq pulls candidates lazily and stops pulling as soon as no partial
	// schedule survives
	CombineSeq(candidates iter.Seq[Candidate], seed SelectionSet) []SelectionSet
}
