package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/labscheduling/pkg/model"
	"github.com/samber/lo"
)

// CourseCSVRow is one line of a course roster file
type CourseCSVRow struct {
	Id              string  `csv:"id"`
	CourseCode      string  `csv:"course_code"`
	CourseName      string  `csv:"course_name"`
	LabName         string  `csv:"lab_name"`
	LabHoursPerWeek float64 `csv:"lab_hours_per_week"`
	StudentCount    int     `csv:"student_count"`
	Instructor      string  `csv:"instructor"`
	Department      string  `csv:"department"`
	PreferredDay    string  `csv:"preferred_day"`
	PreferredTime   string  `csv:"preferred_time"`
}

// LoadCourses reads and parses the given roster file
func LoadCourses(path string, delim rune) ([]model.RawCourse, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open course file: %w", err)
	}
	defer file.Close()
	return ReadCourses(file, delim)
}

func ReadCourses(reader io.Reader, delim rune) ([]model.RawCourse, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delim
	csvReader.TrimLeadingSpace = true

	rows := []*CourseCSVRow{}
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("cannot parse course roster: %w", err)
	}

	return lo.Map(rows, func(row *CourseCSVRow, _ int) model.RawCourse {
		return model.RawCourse{
			Id:              row.Id,
			CourseCode:      row.CourseCode,
			CourseName:      row.CourseName,
			LabName:         row.LabName,
			LabHoursPerWeek: row.LabHoursPerWeek,
			StudentCount:    row.StudentCount,
			Instructor:      row.Instructor,
			Department:      row.Department,
			PreferredDay:    row.PreferredDay,
			PreferredTime:   row.PreferredTime,
		}
	}), nil
}
