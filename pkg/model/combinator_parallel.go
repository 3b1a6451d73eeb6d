package model

import (
	"iter"
	"runtime"
	"slices"

	"github.com/limaJavier/coursemix/pkg/trace"
	"github.com/samber/lo"
)

// Frontiers are split into chunks of at least this many partials, smaller ones
// are not worth a goroutine
const minChunkSize = 32

type parallelCombinator struct {
	workers int
	tracer  *trace.Tracer
}

// NewParallelCombinator expands each course step over chunks of the frontier on
// separate goroutines. Chunks are merged back in order, so the output is the
// same as NewFrontierCombinator's. A non-positive workers uses GOMAXPROCS.
func NewParallelCombinator(workers int, tracer *trace.Tracer) Combinator {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if tracer == nil {
		tracer = trace.Discard()
	}
	return &parallelCombinator{
		workers: workers,
		tracer:  tracer,
	}
}

func (combinator *parallelCombinator) Combine(candidates []Candidate, seed SelectionSet) []SelectionSet {
	return combinator.CombineSeq(slices.Values(candidates), seed)
}

func (combinator *parallelCombinator) CombineSeq(candidates iter.Seq[Candidate], seed SelectionSet) []SelectionSet {
	return combine(candidates, seed, combinator.step, combinator.tracer)
}

func (combinator *parallelCombinator) step(frontier []partial, candidate *Candidate) []partial {
	chunkSize := max((len(frontier)+combinator.workers-1)/combinator.workers, minChunkSize)
	if combinator.workers == 1 || len(frontier) <= chunkSize {
		return expand(frontier, candidate)
	}

	type chunkResult struct {
		index    int
		partials []partial
	}

	chunks := lo.Chunk(frontier, chunkSize)
	resultsChannel := make(chan chunkResult) // Channel to collect expanded chunks

	// Expand chunks on different goroutines, they only read the shared frontier
	for i, chunk := range chunks {
		go func(index int, chunk []partial) {
			resultsChannel <- chunkResult{index: index, partials: expand(chunk, candidate)}
		}(i, chunk)
	}

	// Collect every chunk before the next course is processed
	expanded := make([][]partial, len(chunks))
	for range chunks {
		result := <-resultsChannel
		expanded[result.index] = result.partials
	}
	close(resultsChannel)

	return slices.Concat(expanded...)
}
