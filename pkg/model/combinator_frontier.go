package model

import (
	"iter"
	"slices"

	"github.com/limaJavier/coursemix/pkg/trace"
)

type frontierCombinator struct {
	tracer *trace.Tracer
}

// NewFrontierCombinator expands the frontier of partial schedules one course at
// a time on the calling goroutine
func NewFrontierCombinator(tracer *trace.Tracer) Combinator {
	if tracer == nil {
		tracer = trace.Discard()
	}
	return &frontierCombinator{
		tracer: tracer,
	}
}

func (combinator *frontierCombinator) Combine(candidates []Candidate, seed SelectionSet) []SelectionSet {
	return combinator.CombineSeq(slices.Values(candidates), seed)
}

func (combinator *frontierCombinator) CombineSeq(candidates iter.Seq[Candidate], seed SelectionSet) []SelectionSet {
	return combine(candidates, seed, expand, combinator.tracer)
}
