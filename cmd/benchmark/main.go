package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/coursemix/pkg/model"
	"github.com/samber/lo"
	"github.com/zeebo/pcg"
)

type CombinatorType int

const (
	frontier CombinatorType = iota
	parallel
)

var combinatorTypes = map[CombinatorType]string{
	frontier: "frontier",
	parallel: "parallel",
}

// Scenario describes a family of synthetic instances
type Scenario struct {
	Courses     int
	MaxSections int
	Slots       uint
	// Every slot bit of a section is set with probability 1/2^Sparsity
	Sparsity int
}

type CombinatorMetadata struct {
	Type        CombinatorType
	Workers     int
	FewestFirst bool
}

type BenchmarkResult struct {
	Scenario    string `csv:"Scenario"`
	Instance    int    `csv:"Instance"`
	Combinator  string `csv:"Combinator"`
	Workers     int    `csv:"Workers"`
	FewestFirst bool   `csv:"FewestFirst"`
	Sections    int    `csv:"Sections"`
	Schedules   int    `csv:"Schedules"`
	Duration    int64  `csv:"Duration(us)"`
}

var rng pcg.T

func main() {
	scenariosPtr := flag.String("scenarios", "6x4x40x2,8x5x48x3,10x6x64x4", "Comma separated scenarios as courses x max-sections x slots x sparsity")
	instancesPtr := flag.Int("instances", 5, "Instances generated per scenario")
	outFilePathPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV report")
	flag.Parse()

	scenarios, err := parseScenarios(*scenariosPtr)
	if err != nil {
		log.Fatal(err)
	}

	combinators := getCombinators()
	results := make([]*BenchmarkResult, 0, len(scenarios)**instancesPtr*len(combinators))
	for _, scenario := range scenarios {
		for instance := range *instancesPtr {
			candidates := generate(scenario)
			sections := lo.SumBy(candidates, func(candidate model.Candidate) int { return len(candidate.Sections) })

			var expected []string
			for _, metadata := range combinators {
				fmt.Printf("Benchmarking scenario \"%v\" instance %d with combinator \"%v\", workers %d and fewest-first %v\n", formatScenario(scenario), instance, combinatorTypes[metadata.Type], metadata.Workers, metadata.FewestFirst)

				duration, schedules := measure(metadata, candidates)

				// Every strategy must agree on the set of schedules
				fingerprint := fingerprints(schedules)
				if expected == nil {
					expected = fingerprint
				} else if !slices.Equal(expected, fingerprint) {
					log.Fatalf("combinator \"%v\" disagrees on scenario \"%v\" instance %d", combinatorTypes[metadata.Type], formatScenario(scenario), instance)
				}

				results = append(results, &BenchmarkResult{
					Scenario:    formatScenario(scenario),
					Instance:    instance,
					Combinator:  combinatorTypes[metadata.Type],
					Workers:     metadata.Workers,
					FewestFirst: metadata.FewestFirst,
					Sections:    sections,
					Schedules:   len(schedules),
					Duration:    duration.Microseconds(),
				})
			}
		}
	}

	toCsv(results, *outFilePathPtr)
}

func getCombinators() []CombinatorMetadata {
	return []CombinatorMetadata{
		{Type: frontier},
		{Type: frontier, FewestFirst: true},
		{Type: parallel, Workers: 2},
		{Type: parallel, Workers: 4},
		{Type: parallel, Workers: 4, FewestFirst: true},
		{Type: parallel, Workers: 0},
	}
}

func measure(metadata CombinatorMetadata, candidates []model.Candidate) (time.Duration, []model.SelectionSet) {
	var combinator model.Combinator
	switch metadata.Type {
	case frontier:
		combinator = model.NewFrontierCombinator(nil)
	case parallel:
		combinator = model.NewParallelCombinator(metadata.Workers, nil)
	}
	if metadata.FewestFirst {
		candidates = model.OrderByFewestSections(candidates)
	}

	start := time.Now()
	schedules := combinator.Combine(candidates, model.NewSelectionSet())
	duration := time.Since(start)

	if !model.Verify(schedules, candidates, model.NewSelectionSet()) {
		log.Fatalf("verification failed for combinator \"%v\"", combinatorTypes[metadata.Type])
	}
	return duration, schedules
}

func generate(scenario Scenario) []model.Candidate {
	slotMask := model.Mask(1)<<scenario.Slots - 1
	candidates := make([]model.Candidate, 0, scenario.Courses)
	for course := range scenario.Courses {
		code := fmt.Sprintf("SYN%04d", course)
		sections := make([]model.Section, int(rng.Uint32n(uint32(scenario.MaxSections)))+1)
		for i := range sections {
			bits := rng.Uint64()
			for range scenario.Sparsity - 1 {
				bits &= rng.Uint64()
			}
			sections[i] = model.Section{ID: fmt.Sprintf("%d%c", i/26+1, 'A'+i%26), Mask: model.Mask(bits) & slotMask}
		}
		candidates = append(candidates, model.Candidate{Code: code, Sections: sections})
	}
	return candidates
}

// fingerprints renders schedules in an order-independent form
func fingerprints(schedules []model.SelectionSet) []string {
	result := lo.Map(schedules, func(schedule model.SelectionSet, _ int) string {
		assignment := schedule.Assignment()
		codes := lo.Keys(assignment)
		slices.Sort(codes)
		return strings.Join(lo.Map(codes, func(code string, _ int) string {
			return code + ":" + strings.Join(assignment[code], "|")
		}), ",")
	})
	slices.Sort(result)
	return result
}

func parseScenarios(scenariosStr string) ([]Scenario, error) {
	scenarios := make([]Scenario, 0)
	for _, scenarioStr := range strings.Split(scenariosStr, ",") {
		scenario, err := parseScenario(strings.TrimSpace(scenarioStr))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

func parseScenario(scenarioStr string) (Scenario, error) {
	parts := strings.Split(scenarioStr, "x")
	if len(parts) != 4 {
		return Scenario{}, fmt.Errorf("invalid scenario %q: expected courses x max-sections x slots x sparsity", scenarioStr)
	}

	values := make([]int, len(parts))
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil || value <= 0 {
			return Scenario{}, fmt.Errorf("invalid scenario %q: %q is not a positive integer", scenarioStr, part)
		}
		values[i] = value
	}
	if values[2] > model.MaxSlots {
		return Scenario{}, fmt.Errorf("invalid scenario %q: at most %d slots fit in a mask", scenarioStr, model.MaxSlots)
	}

	return Scenario{
		Courses:     values[0],
		MaxSections: values[1],
		Slots:       uint(values[2]),
		Sparsity:    values[3],
	}, nil
}

func formatScenario(scenario Scenario) string {
	return fmt.Sprintf("%dx%dx%dx%d", scenario.Courses, scenario.MaxSections, scenario.Slots, scenario.Sparsity)
}

func toCsv(results []*BenchmarkResult, path string) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Panicf("cannot write CSV report: %v", err)
	}
}
