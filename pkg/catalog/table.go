package catalog

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/coursemix/pkg/model"
	"github.com/samber/lo"
)

var byteOrderMark = []byte("\xef\xbb\xbf")

// Table is the immutable catalog loaded from a delimited file. It is safe for
// concurrent use.
type Table struct {
	rows    []Row
	courses model.SelectionSet
}

// Load reads the catalog at path
func Load(path string, delimiter rune) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, LoadFailure.Wrap(err)
	}
	defer file.Close()

	return Read(file, delimiter)
}

// Read parses a catalog. Every required column must be present in the header,
// every SESSIONS cell must be an unsigned 64-bit integer and a section may be
// defined only once per course.
func Read(in io.Reader, delimiter rune) (*Table, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, LoadFailure.Wrap(err)
	}
	content = bytes.TrimPrefix(content, byteOrderMark)

	header, err := newCSVReader(content, delimiter).Read()
	if err == io.EOF {
		return nil, LoadFailure.New("no header row")
	} else if err != nil {
		return nil, LoadFailure.Wrap(err)
	}
	header = lo.Map(header, func(column string, _ int) string { return strings.TrimSpace(column) })
	if missing := lo.Without(requiredColumns, header...); len(missing) > 0 {
		return nil, LoadFailure.New("missing columns %v", missing)
	}

	records := []*Record{}
	if err := gocsv.UnmarshalCSV(newCSVReader(content, delimiter), &records); err != nil {
		return nil, LoadFailure.Wrap(err)
	}

	rows := make([]Row, 0, len(records))
	lines := make(map[[2]string]int) // (code, section) -> line of definition
	for i, record := range records {
		line := i + 2 // Line 1 is the header
		row, err := record.toRow(line)
		if err != nil {
			return nil, err
		}
		key := [2]string{row.Code, row.Section}
		if first, ok := lines[key]; ok {
			return nil, LoadFailure.New("line %d: section %s of %s already defined at line %d", line, row.Section, row.Code, first)
		}
		lines[key] = line
		rows = append(rows, row)
	}
	return NewTable(rows), nil
}

// NewTable builds a table from already validated rows
func NewTable(rows []Row) *Table {
	return &Table{
		rows:    slices.Clone(rows),
		courses: group(rows),
	}
}

func newCSVReader(content []byte, delimiter rune) *csv.Reader {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	return reader
}

// group folds rows into courses in order of first appearance
func group(rows []Row) model.SelectionSet {
	courses := model.NewSelectionSet()
	for _, row := range rows {
		courses.Add(row.Code, row.course())
	}
	return courses
}

func (table *Table) Len() int {
	return len(table.rows)
}

// Rows returns every row in source order
func (table *Table) Rows() []Row {
	return slices.Clone(table.rows)
}

// Course returns the course with every one of its sections
func (table *Table) Course(code string) (model.Course, error) {
	course, ok := table.courses.Get(code)
	if !ok {
		return model.Course{}, NotFound.New("course %s", code)
	}
	return course, nil
}

// Section returns the course restricted to the sections whose identifier
// starts with sectionPrefix
func (table *Table) Section(code, sectionPrefix string) (model.Course, error) {
	course, err := table.Course(code)
	if err != nil {
		return model.Course{}, err
	}
	restricted := course.Restrict(func(id string) bool { return strings.HasPrefix(id, sectionPrefix) })
	if restricted.Len() == 0 {
		return model.Course{}, NotFound.New("section %s of course %s", sectionPrefix, code)
	}
	return restricted, nil
}

// Courses returns the union of the given courses. Every code must exist.
func (table *Table) Courses(codes ...string) (model.SelectionSet, error) {
	if missing := lo.Reject(codes, func(code string, _ int) bool { return table.courses.Has(code) }); len(missing) > 0 {
		return model.SelectionSet{}, NotFound.New("courses %v", missing)
	}

	selection := model.NewSelectionSet()
	for _, code := range codes {
		course, _ := table.courses.Get(code)
		selection.Add(code, course)
	}
	return selection, nil
}

// Catalog returns every course in order of first appearance
func (table *Table) Catalog() model.SelectionSet {
	return table.courses.Clone()
}

// Query starts a filter plan over the table
func (table *Table) Query() Query {
	return Query{table: table}
}
