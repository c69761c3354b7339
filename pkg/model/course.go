package model

import (
	"math"
)

// Course is a roster entry needing one recurring lab session per week
type Course struct {
	Id              string  `json:"id"`
	CourseCode      string  `json:"courseCode"`
	CourseName      string  `json:"courseName"`
	LabName         string  `json:"labName"`
	LabHoursPerWeek float64 `json:"labHoursPerWeek"`
	StudentCount    int     `json:"studentCount"`
	Instructor      string  `json:"instructor"`
	Department      string  `json:"department"`
	PreferredDay    *string `json:"preferredDay,omitempty"`  // Full weekday name (e.g. "Monday"); nil when absent
	PreferredTime   *string `json:"preferredTime,omitempty"` // Anchor in "HH:MM" format; nil when absent
}

// HasPreferredDay reports whether the course carries a non-empty day preference
func (course Course) HasPreferredDay() bool {
	return course.PreferredDay != nil && *course.PreferredDay != ""
}

// HasPreferredTime reports whether the course carries a non-empty time preference
func (course Course) HasPreferredTime() bool {
	return course.PreferredTime != nil && *course.PreferredTime != ""
}

// HasPreference reports whether the course carries any placement preference
func (course Course) HasPreference() bool {
	return course.HasPreferredDay() || course.HasPreferredTime()
}

// SessionHours returns the length of the single weekly block the course occupies, capped at maxSessionHours
func (course Course) SessionHours(maxSessionHours float64) float64 {
	return math.Min(course.LabHoursPerWeek, maxSessionHours)
}
