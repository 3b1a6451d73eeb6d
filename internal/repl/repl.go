package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/limaJavier/coursemix/pkg/catalog"
	"github.com/limaJavier/coursemix/pkg/model"
	"github.com/limaJavier/coursemix/pkg/trace"
	"github.com/samber/lo"
)

const help = `Commands:
  ADD <course code> [section]
  REMOVE <course code>
  CLEAR
  FIND [course code...]
  SCHEDULE
  SAVE <path>
  EXIT
`

// Session is the state carried from one command to the next
type Session struct {
	Selection model.SelectionSet
}

func NewSession() Session {
	return Session{Selection: model.NewSelectionSet()}
}

type handler func(shell *Shell, session Session, args []string) Session

var handlers = map[string]handler{
	"ADD":      add,
	"+":        add,
	"REMOVE":   remove,
	"-":        remove,
	"CLEAR":    clearSelection,
	"--":       clearSelection,
	"FIND":     find,
	"LS":       find,
	"SCHEDULE": schedule,
	"S":        schedule,
	"SAVE":     save,
	"W":        save,
	"HELP":     printHelp,
	"?":        printHelp,
}

var exitCommands = []string{"EXIT", "QUIT"}

// Arguments of these commands are paths and keep their case
var pathCommands = []string{"SAVE", "W"}

// Shell executes text commands against a catalog
type Shell struct {
	table       *catalog.Table
	combinator  model.Combinator
	indexer     model.SlotIndexer
	fewestFirst bool
	delimiter   rune
	out         io.Writer
}

// NewShell builds a shell. With fewestFirst, SCHEDULE hands courses to the
// combinator ordered by ascending number of sections. SAVE writes catalogs
// with the given delimiter.
func NewShell(table *catalog.Table, combinator model.Combinator, indexer model.SlotIndexer, fewestFirst bool, delimiter rune, out io.Writer) *Shell {
	return &Shell{
		table:       table,
		combinator:  combinator,
		indexer:     indexer,
		fewestFirst: fewestFirst,
		delimiter:   delimiter,
		out:         out,
	}
}

// Run reads commands line by line until EXIT, end of input or cancellation and
// returns the final session. Cancellation is honoured while waiting for input.
func (shell *Shell) Run(ctx context.Context, in io.Reader, session Session) (Session, error) {
	tracer := trace.FromContext(ctx)
	scanCtx, stopScan := context.WithCancel(ctx)
	defer stopScan()
	lines, scanErr := scanLines(scanCtx, in)
	for {
		fmt.Fprintf(shell.out, "Current courses: %v\n> ", session.Selection.Codes())
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(shell.out)
			return session, err
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(shell.out)
			return session, ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(shell.out)
			if err := ctx.Err(); err != nil {
				return session, err
			}
			return session, <-scanErr
		}

		var exit bool
		session, exit = shell.Execute(session, line)
		tracer.Debugf("selection after %q: %v", line, session.Selection.Codes())
		if exit {
			return session, nil
		}
	}
}

// scanLines feeds the lines of in over a channel, which is closed at end of
// input or on cancellation. The scan error is delivered only at end of input.
func scanLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()
	return lines, scanErr
}

// Execute runs a single command line. The given session is never modified; the
// resulting one is returned together with whether the shell should stop.
func (shell *Shell) Execute(session Session, line string) (Session, bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		fmt.Fprintln(shell.out, "Please enter a command")
		fmt.Fprint(shell.out, help)
		return session, false
	}

	command, args := strings.ToUpper(tokens[0]), tokens[1:]
	if !lo.Contains(pathCommands, command) {
		args = lo.Map(args, func(arg string, _ int) string { return strings.ToUpper(arg) })
	}
	if lo.Contains(exitCommands, command) {
		return session, true
	}
	handle, ok := handlers[command]
	if !ok {
		fmt.Fprintln(shell.out, "Invalid command")
		fmt.Fprint(shell.out, help)
		return session, false
	}
	return handle(shell, session, args), false
}

func add(shell *Shell, session Session, args []string) Session {
	var course model.Course
	var err error
	switch len(args) {
	case 1:
		course, err = shell.table.Course(args[0])
	case 2:
		course, err = shell.table.Section(args[0], args[1])
	default:
		fmt.Fprintln(shell.out, "Invalid command: ADD <course code> [section]")
		return session
	}
	if catalog.NotFound.Has(err) {
		fmt.Fprintf(shell.out, "Course not found: %v\n", strings.Join(args, " "))
		return session
	} else if err != nil {
		fmt.Fprintln(shell.out, err)
		return session
	}

	next := Session{Selection: session.Selection.Clone()}
	next.Selection.Add(args[0], course)
	return next
}

func remove(shell *Shell, session Session, args []string) Session {
	if len(args) != 1 {
		fmt.Fprintln(shell.out, "Invalid command: REMOVE <course code>")
		return session
	}
	next := Session{Selection: session.Selection.Clone()}
	next.Selection.Remove(args[0])
	return next
}

func clearSelection(shell *Shell, session Session, _ []string) Session {
	return NewSession()
}

func find(shell *Shell, session Session, args []string) Session {
	rows := shell.table.Query().
		NoConflictWith(session.Selection).
		CodeContains(args...).
		Materialize()

	writer := tabwriter.NewWriter(shell.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "CODE\tTITLE\tSECTION\tSESSIONS\tPREREQ")
	for _, row := range rows {
		fmt.Fprintf(writer, "%v\t%v\t%v\t%v\t%v\n", row.Code, row.Title, row.Section, shell.indexer.Describe(row.Mask), strings.Join(row.Prerequisites, " & "))
	}
	writer.Flush()
	fmt.Fprintf(shell.out, "%d sections\n", len(rows))
	return session
}

func schedule(shell *Shell, session Session, _ []string) Session {
	candidates := model.CandidatesFrom(session.Selection)
	if shell.fewestFirst {
		candidates = model.OrderByFewestSections(candidates)
	}

	schedules := shell.combinator.Combine(candidates, model.NewSelectionSet())
	if len(schedules) == 0 {
		fmt.Fprintln(shell.out, "No conflict-free schedule")
		return session
	}

	for i, schedule := range schedules {
		fmt.Fprintf(shell.out, "Schedule %d:\n", i+1)
		writer := tabwriter.NewWriter(shell.out, 0, 4, 2, ' ', 0)
		// Print in selection order whatever order the combinator used
		for _, code := range session.Selection.Codes() {
			course, _ := schedule.Get(code)
			for _, section := range course.Sections() {
				fmt.Fprintf(writer, "  %v\t%v\t%v\t%v\n", code, section.ID, course.Title(), shell.indexer.Describe(section.Mask))
			}
		}
		writer.Flush()
	}
	fmt.Fprintf(shell.out, "%d conflict-free schedules\n", len(schedules))
	return session
}

// save writes the current selection as a catalog that Load accepts
func save(shell *Shell, session Session, args []string) Session {
	if len(args) != 1 {
		fmt.Fprintln(shell.out, "Invalid command: SAVE <path>")
		return session
	}

	file, err := os.Create(args[0])
	if err != nil {
		fmt.Fprintf(shell.out, "Cannot create %v: %v\n", args[0], err)
		return session
	}
	defer file.Close()

	rows := catalog.SelectionRows(session.Selection)
	if err := catalog.WriteCSV(file, rows, shell.delimiter); err != nil {
		fmt.Fprintf(shell.out, "Cannot write %v: %v\n", args[0], err)
		return session
	}
	fmt.Fprintf(shell.out, "%d sections saved to %v\n", len(rows), args[0])
	return session
}

func printHelp(shell *Shell, session Session, _ []string) Session {
	fmt.Fprint(shell.out, help)
	return session
}
