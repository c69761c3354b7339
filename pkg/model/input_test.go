package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawCourse() RawCourse {
	return RawCourse{
		Id:              "1",
		CourseCode:      "CHEM 101",
		CourseName:      "General Chemistry",
		LabName:         "Chemistry Lab A",
		LabHoursPerWeek: 2,
		StudentCount:    30,
		Instructor:      "Dr. Smith",
		Department:      "Chemistry",
	}
}

func TestNormalizeCourse(t *testing.T) {
	scenarios := []struct {
		day, time         string
		expectedDay       *string
		expectedTime      *string
		expectsPreference bool
	}{
		{"", "", nil, nil, false},
		{AnyDay, AnyTime, nil, nil, false},
		{"Monday", AnyTime, strPtr("Monday"), nil, true},
		{" ", "09:00", nil, strPtr("09:00"), true},
		{"Funday", "", strPtr("Funday"), nil, true},
	}

	for _, scenario := range scenarios {
		//** Arrange
		raw := validRawCourse()
		raw.PreferredDay, raw.PreferredTime = scenario.day, scenario.time

		//** Act
		course := NormalizeCourse(raw)

		//** Assert
		assert.Equal(t, scenario.expectedDay, course.PreferredDay)
		assert.Equal(t, scenario.expectedTime, course.PreferredTime)
		assert.Equal(t, scenario.expectsPreference, course.HasPreference())
	}
}

func strPtr(value string) *string {
	return &value
}

func TestValidateCourse(t *testing.T) {
	shape := DefaultWeekShape()

	t.Run("Accepts a course filled like the form", func(t *testing.T) {
		raw := validRawCourse()
		raw.PreferredDay, raw.PreferredTime = "Tuesday", "13:00"
		assert.NoError(t, ValidateCourse(raw, shape))

		raw.PreferredDay, raw.PreferredTime = AnyDay, AnyTime
		assert.NoError(t, ValidateCourse(raw, shape))
	})

	t.Run("Reports field errors", func(t *testing.T) {
		mutations := map[string]func(raw *RawCourse){
			"CourseCode":      func(raw *RawCourse) { raw.CourseCode = "C" },
			"CourseName":      func(raw *RawCourse) { raw.CourseName = "" },
			"LabName":         func(raw *RawCourse) { raw.LabName = "L" },
			"LabHoursPerWeek": func(raw *RawCourse) { raw.LabHoursPerWeek = 7 },
			"StudentCount":    func(raw *RawCourse) { raw.StudentCount = 0 },
			"Instructor":      func(raw *RawCourse) { raw.Instructor = strings.Repeat("x", 101) },
		}
		for field, mutate := range mutations {
			raw := validRawCourse()
			mutate(&raw)

			err := ValidateCourse(raw, shape)

			var validationErrors validator.ValidationErrors
			require.True(t, errors.As(err, &validationErrors), field)
			assert.Equal(t, field, validationErrors[0].Field())
		}
	})

	t.Run("Rejects preferences outside the week shape", func(t *testing.T) {
		raw := validRawCourse()
		raw.PreferredDay = "Saturday"
		assert.ErrorContains(t, ValidateCourse(raw, shape), "preferred day")

		raw = validRawCourse()
		raw.PreferredTime = "12:00"
		assert.ErrorContains(t, ValidateCourse(raw, shape), "preferred time")
	})
}

func TestCoursesFromReader(t *testing.T) {
	t.Run("Array document", func(t *testing.T) {
		courses, err := CoursesFromReader(strings.NewReader(`[
			{"id": "a", "courseCode": "BIO 201", "courseName": "Cell Biology", "labName": "Biology Lab B",
			 "labHoursPerWeek": 3, "studentCount": 25, "instructor": "Dr. Johnson", "department": "Biology",
			 "preferredDay": "Monday", "preferredTime": "any-time"}
		]`))

		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, "BIO 201", courses[0].CourseCode)
		assert.Equal(t, 3.0, courses[0].LabHoursPerWeek)
		assert.Equal(t, 25, courses[0].StudentCount)
		assert.Equal(t, "Monday", *courses[0].PreferredDay)
		assert.Nil(t, courses[0].PreferredTime)
	})

	t.Run("Object document with string numbers", func(t *testing.T) {
		courses, err := CoursesFromReader(strings.NewReader(`{"courses": [
			{"courseCode": "PHY 102", "labName": "Physics Lab", "labHoursPerWeek": "2", "studentCount": "40"}
		]}`))

		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, 2.0, courses[0].LabHoursPerWeek)
		assert.Equal(t, 40, courses[0].StudentCount)
		assert.False(t, courses[0].HasPreference())
	})

	t.Run("Malformed documents", func(t *testing.T) {
		_, err := CoursesFromReader(strings.NewReader(`{"items": []}`))
		assert.Error(t, err)

		_, err = CoursesFromReader(strings.NewReader(`[{`))
		assert.Error(t, err)

		_, err = CoursesFromReader(strings.NewReader(`[{"studentCount": "many"}]`))
		assert.Error(t, err)
	})
}

func TestCoursesFromJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "courses.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"courseCode": "GEN 301", "labName": "Genetics Lab", "labHoursPerWeek": 4}]`), 0644))

	courses, err := CoursesFromJson(file)

	require.NoError(t, err)
	assert.Equal(t, "GEN 301", courses[0].CourseCode)

	_, err = CoursesFromJson(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
