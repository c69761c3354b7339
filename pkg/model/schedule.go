package model

// PlacedSlot is the display-ready projection of a course's placement
type PlacedSlot struct {
	Time         string `json:"time"`
	EndTime      string `json:"endTime"`
	Lab          string `json:"lab"`
	Class        string `json:"class"` // Course code
	CourseName   string `json:"courseName"`
	Instructor   string `json:"instructor"`
	Department   string `json:"department"`
	StudentCount int    `json:"studentCount"`
}

type Day struct {
	Day     string       `json:"day"`     // Abbreviated name (e.g. "Mon")
	DayFull string       `json:"dayFull"` // Full name (e.g. "Monday")
	Date    int          `json:"date"`
	Slots   []PlacedSlot `json:"slots"`
}

// Schedule holds one entry per day of the week shape, in natural day order
type Schedule []Day

func newEmptySchedule(shape WeekShape, weekStartDate int) Schedule {
	schedule := make(Schedule, len(shape.Days))
	for i, day := range shape.Days {
		schedule[i] = Day{
			Day:     day.Abbrev,
			DayFull: day.Full,
			Date:    weekStartDate + i,
			Slots:   []PlacedSlot{},
		}
	}
	return schedule
}

func newPlacedSlot(course Course, time string, durationHours float64) PlacedSlot {
	return PlacedSlot{
		Time:         time,
		EndTime:      addHours(time, durationHours),
		Lab:          course.LabName,
		Class:        course.CourseCode,
		CourseName:   course.CourseName,
		Instructor:   course.Instructor,
		Department:   course.Department,
		StudentCount: course.StudentCount,
	}
}

// SlotCount returns the number of placed slots across the whole week
func (schedule Schedule) SlotCount() int {
	count := 0
	for _, day := range schedule {
		count += len(day.Slots)
	}
	return count
}
