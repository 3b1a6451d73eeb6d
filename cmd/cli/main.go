package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/limaJavier/coursemix/internal/config"
	"github.com/limaJavier/coursemix/internal/repl"
	"github.com/limaJavier/coursemix/pkg/catalog"
	"github.com/limaJavier/coursemix/pkg/model"
	"github.com/limaJavier/coursemix/pkg/trace"
	"github.com/samber/lo"
)

func main() {
	// Define arguments
	configPathPtr := flag.String("config", "config.json", "Path to the JSON configuration file; it's optional and flags take precedence over it")
	filePathPtr := flag.String("file", "", "Path to the course catalog (COURSE CODE, COURSE TITLE, CLASS SECTION, SESSIONS, PREREQ)")
	delimiterPtr := flag.String("delimiter", "", "Single-character column delimiter of the catalog, where \",\" is the default")
	workersPtr := flag.Int("workers", -1, "Goroutines used to expand partial schedules; 0 uses every CPU and 1 disables parallelism")
	orderPtr := flag.String("order", "", `Order in which courses are combined. Allowed values are "given" (selection order) and "fewest" (courses with fewer sections first)`)
	verbosePtr := flag.Bool("verbose", false, "Log the size of the search frontier after every course")
	coursesPtr := flag.String("courses", "", "Comma separated course codes; if set, their conflict-free schedules are written as JSON instead of starting the interactive shell")
	outFilePathPtr := flag.String("out", "", "Path to the file where the JSON output will be written; if empty, it'll be written into the Standard Output")
	flag.Parse()

	cfg, err := config.LoadOptional(*configPathPtr)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	// Flags override the configuration file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.DataFile = *filePathPtr
		case "delimiter":
			cfg.Delimiter = *delimiterPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "order":
			cfg.Order = strings.ToLower(*orderPtr)
		case "verbose":
			cfg.Verbose = *verbosePtr
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	level := trace.LogLevelNormal
	if cfg.Verbose {
		level = trace.LogLevelVerbose
	}
	tracer := trace.NewTracer("coursemix", level)

	// Load catalog
	table, err := catalog.Load(cfg.DataFile, cfg.DelimiterRune())
	if err != nil {
		log.Fatalf("cannot load catalog: %v", err)
	}
	tracer.Debugf("loaded %d sections of %d courses from %v", table.Len(), table.Catalog().Len(), cfg.DataFile)

	// Initialize engines
	indexer, err := cfg.Indexer()
	if err != nil {
		log.Fatalf("invalid week: %v", err)
	}
	combinator := model.NewParallelCombinator(cfg.Workers, tracer.WithPrefix("combinator"))

	if *coursesPtr != "" {
		codes := lo.Uniq(lo.Compact(lo.Map(strings.Split(*coursesPtr, ","), func(code string, _ int) string {
			return strings.ToUpper(strings.TrimSpace(code))
		})))
		if err := writeSchedules(table, combinator, codes, cfg.Order == config.OrderFewest, *outFilePathPtr); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = trace.WithContext(ctx, tracer)

	shell := repl.NewShell(table, combinator, indexer, cfg.Order == config.OrderFewest, cfg.DelimiterRune(), os.Stdout)
	if _, err := shell.Run(ctx, os.Stdin, repl.NewSession()); err != nil && ctx.Err() == nil {
		log.Fatalf("an error occurred while reading commands: %v", err)
	}
}

// writeSchedules combines the given courses and writes every conflict-free
// schedule as a JSON list of course lists
func writeSchedules(table *catalog.Table, combinator model.Combinator, codes []string, fewestFirst bool, outFile string) error {
	selection, err := table.Courses(codes...)
	if err != nil {
		return err
	}

	candidates := model.CandidatesFrom(selection)
	if fewestFirst {
		candidates = model.OrderByFewestSections(candidates)
	}
	schedules := combinator.Combine(candidates, model.NewSelectionSet())
	if !model.Verify(schedules, candidates, model.NewSelectionSet()) {
		return fmt.Errorf("verification failed")
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		return catalog.WriteJSON(os.Stdout, catalog.NewCourseLists(schedules))
	}
	file, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("an error occurred while creating the output file: %v", err)
	}
	defer file.Close()
	if err := catalog.WriteJSON(file, catalog.NewCourseLists(schedules)); err != nil {
		return fmt.Errorf("an error occurred while writing to the output file: %v", err)
	}
	return nil
}
