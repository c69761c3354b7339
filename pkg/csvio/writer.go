package csvio

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/labscheduling/pkg/model"
)

type ScheduleCSVRow struct {
	Day          string `csv:"day"`
	DayFull      string `csv:"day_full"`
	Date         int    `csv:"date"`
	Time         string `csv:"time"`
	EndTime      string `csv:"end_time"`
	Lab          string `csv:"lab"`
	CourseCode   string `csv:"course_code"`
	CourseName   string `csv:"course_name"`
	Instructor   string `csv:"instructor"`
	Department   string `csv:"department"`
	StudentCount int    `csv:"student_count"`
}

// ExportSchedule flattens the schedule into ScheduleCSVRow structs and
// writes them to the CSV file at the given path, replacing any previous content.
func ExportSchedule(schedule model.Schedule, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create schedule file: %w", err)
	}
	defer out.Close()

	return WriteSchedule(schedule, out)
}

func WriteSchedule(schedule model.Schedule, out io.Writer) error {
	rows := flattenSchedule(schedule)
	if err := gocsv.Marshal(&rows, out); err != nil {
		return fmt.Errorf("cannot write schedule: %w", err)
	}
	return nil
}

// ExportScheduleString renders the schedule as CSV text
func ExportScheduleString(schedule model.Schedule) (string, error) {
	rows := flattenSchedule(schedule)
	str, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("cannot render schedule: %w", err)
	}
	return str, nil
}

// One row per placed slot, by day then start time
func flattenSchedule(schedule model.Schedule) []*ScheduleCSVRow {
	rows := make([]*ScheduleCSVRow, 0, schedule.SlotCount())
	for _, day := range schedule {
		for _, slot := range day.Slots {
			rows = append(rows, &ScheduleCSVRow{
				Day:          day.Day,
				DayFull:      day.DayFull,
				Date:         day.Date,
				Time:         slot.Time,
				EndTime:      slot.EndTime,
				Lab:          slot.Lab,
				CourseCode:   slot.Class,
				CourseName:   slot.CourseName,
				Instructor:   slot.Instructor,
				Department:   slot.Department,
				StudentCount: slot.StudentCount,
			})
		}
	}
	return rows
}
