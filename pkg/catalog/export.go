package catalog

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/coursemix/pkg/model"
	"github.com/samber/lo"
)

type SectionInfo struct {
	Section string `json:"section"`
	Session uint64 `json:"session"`
}

// CourseInfo is the presentation shape of a course
type CourseInfo struct {
	Code     string        `json:"code"`
	Title    string        `json:"title"`
	Sections []SectionInfo `json:"sections"`
	Prereq   string        `json:"prereq"`
}

type CourseList struct {
	Courses []CourseInfo `json:"courses"`
}

func NewCourseInfo(code string, course model.Course) CourseInfo {
	return CourseInfo{
		Code:  code,
		Title: course.Title(),
		Sections: lo.Map(course.Sections(), func(section model.Section, _ int) SectionInfo {
			return SectionInfo{Section: section.ID, Session: uint64(section.Mask)}
		}),
		Prereq: strings.Join(course.Prerequisites(), prerequisiteSeparator),
	}
}

// NewCourseList lists the courses of the selection in selection order
func NewCourseList(selection model.SelectionSet) CourseList {
	list := CourseList{Courses: make([]CourseInfo, 0, selection.Len())}
	for code, course := range selection.All() {
		list.Courses = append(list.Courses, NewCourseInfo(code, course))
	}
	return list
}

// NewCourseLists lists every schedule, keeping the order of the schedules
func NewCourseLists(schedules []model.SelectionSet) []CourseList {
	return lo.Map(schedules, func(schedule model.SelectionSet, _ int) CourseList {
		return NewCourseList(schedule)
	})
}

func (list CourseList) WriteJSON(out io.Writer) error {
	return writeJSON(out, list)
}

// WriteJSON writes the lists as an indented JSON array
func WriteJSON(out io.Writer, lists []CourseList) error {
	return writeJSON(out, lists)
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// SelectionRows flattens a selection into one row per section, in selection order
func SelectionRows(selection model.SelectionSet) []Row {
	rows := make([]Row, 0)
	for code, course := range selection.All() {
		for _, section := range course.Sections() {
			rows = append(rows, Row{
				Code:          code,
				Title:         course.Title(),
				Section:       section.ID,
				Mask:          section.Mask,
				Prerequisites: course.Prerequisites(),
			})
		}
	}
	return rows
}

// WriteCSV writes rows back in the source format
func WriteCSV(out io.Writer, rows []Row, delimiter rune) error {
	records := lo.Map(rows, func(row Row, _ int) *Record { return row.toRecord() })

	writer := csv.NewWriter(out)
	writer.Comma = delimiter
	safe := gocsv.NewSafeCSVWriter(writer)
	if err := gocsv.MarshalCSV(&records, safe); err != nil {
		return err
	}
	safe.Flush()
	return safe.Error()
}
