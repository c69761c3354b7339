package model

import (
	"strings"

	"github.com/samber/lo"
)

type CourseSummary struct {
	TotalCourses  int     `json:"totalCourses"`
	TotalStudents int     `json:"totalStudents"`
	TotalLabHours float64 `json:"totalLabHours"`
}

// FilterCoursesByDepartment keeps the courses of the department. An empty department or "all" keeps every course
func FilterCoursesByDepartment(courses []Course, department string) []Course {
	if department == "" || department == AllDepartments {
		return courses
	}
	return lo.Filter(courses, func(course Course, _ int) bool {
		return course.Department == department
	})
}

// SummarizeCourses computes the roster totals shown on top of a department's schedule
func SummarizeCourses(courses []Course, department string) CourseSummary {
	filtered := FilterCoursesByDepartment(courses, department)
	return CourseSummary{
		TotalCourses:  len(filtered),
		TotalStudents: lo.SumBy(filtered, func(course Course) int { return course.StudentCount }),
		TotalLabHours: lo.SumBy(filtered, func(course Course) float64 { return course.LabHoursPerWeek }),
	}
}

// NormalizeDepartment resolves a department alias (matched case-insensitively) to its canonical name.
// Unknown names are returned unchanged
func NormalizeDepartment(department string, aliases map[string]string) string {
	if department == "" {
		return ""
	}
	if canonical, ok := aliases[strings.ToLower(department)]; ok {
		return canonical
	}
	return department
}
