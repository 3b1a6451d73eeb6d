package catalog

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/limaJavier/coursemix/pkg/model"
	"github.com/samber/lo"
)

const (
	CodeColumn          = "COURSE CODE"
	TitleColumn         = "COURSE TITLE"
	SectionColumn       = "CLASS SECTION"
	SessionsColumn      = "SESSIONS"
	PrerequisitesColumn = "PREREQ"

	// prerequisiteSeparator joins prerequisite codes inside the PREREQ column
	prerequisiteSeparator = "&"
)

var requiredColumns = []string{CodeColumn, TitleColumn, SectionColumn, SessionsColumn, PrerequisitesColumn}

// Record is a source row as it appears in the delimited file
type Record struct {
	Code          string `csv:"COURSE CODE"`
	Title         string `csv:"COURSE TITLE"`
	Section       string `csv:"CLASS SECTION"`
	Sessions      string `csv:"SESSIONS"`
	Prerequisites string `csv:"PREREQ"`
}

// Row is a validated record: one section of one course
type Row struct {
	Code          string
	Title         string
	Section       string
	Mask          model.Mask
	Prerequisites []string
}

// Semester returns the leading character of the section identifier, which
// conventionally encodes the semester
func (row Row) Semester() string {
	r, size := utf8.DecodeRuneInString(row.Section)
	if r == utf8.RuneError {
		return ""
	}
	return row.Section[:size]
}

// toRow validates a record found at the given line of the source
func (record Record) toRow(line int) (Row, error) {
	code := strings.TrimSpace(record.Code)
	if code == "" {
		return Row{}, LoadFailure.New("line %d: empty %s", line, CodeColumn)
	}
	section := strings.TrimSpace(record.Section)
	if section == "" {
		return Row{}, LoadFailure.New("line %d: empty %s for %s", line, SectionColumn, code)
	}
	sessions := strings.TrimSpace(record.Sessions)
	mask, err := strconv.ParseUint(sessions, 10, 64)
	if err != nil {
		return Row{}, LoadFailure.New("line %d: %s %q of %s is not an unsigned 64-bit integer", line, SessionsColumn, sessions, code)
	}

	return Row{
		Code:          code,
		Title:         strings.TrimSpace(record.Title),
		Section:       section,
		Mask:          model.Mask(mask),
		Prerequisites: splitPrerequisites(record.Prerequisites),
	}, nil
}

func (row Row) toRecord() *Record {
	return &Record{
		Code:          row.Code,
		Title:         row.Title,
		Section:       row.Section,
		Sessions:      strconv.FormatUint(uint64(row.Mask), 10),
		Prerequisites: strings.Join(row.Prerequisites, prerequisiteSeparator),
	}
}

func (row Row) course() model.Course {
	return model.NewCourse(row.Code, row.Title, []model.Section{{ID: row.Section, Mask: row.Mask}}, row.Prerequisites)
}

func splitPrerequisites(raw string) []string {
	return lo.Compact(lo.Map(strings.Split(raw, prerequisiteSeparator), func(code string, _ int) string {
		return strings.TrimSpace(code)
	}))
}
