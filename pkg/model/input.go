package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// Values the course form sends when the user explicitly picks no preference
const (
	AnyDay  = "any-day"
	AnyTime = "any-time"
)

// RawCourse is a course as it arrives from the outside world: preferences are plain strings and may hold "no preference" sentinels
type RawCourse struct {
	Id              string  `mapstructure:"id" json:"id"`
	CourseCode      string  `mapstructure:"courseCode" json:"courseCode" validate:"required,min=2,max=20"`
	CourseName      string  `mapstructure:"courseName" json:"courseName" validate:"required,min=2,max=100"`
	LabName         string  `mapstructure:"labName" json:"labName" validate:"required,min=2"`
	LabHoursPerWeek float64 `mapstructure:"labHoursPerWeek" json:"labHoursPerWeek" validate:"min=1,max=6"`
	StudentCount    int     `mapstructure:"studentCount" json:"studentCount" validate:"min=1,max=200"`
	Instructor      string  `mapstructure:"instructor" json:"instructor" validate:"required,min=2,max=100"`
	Department      string  `mapstructure:"department" json:"department"`
	PreferredDay    string  `mapstructure:"preferredDay" json:"preferredDay"`
	PreferredTime   string  `mapstructure:"preferredTime" json:"preferredTime"`
}

var validate = validator.New()

// NormalizeCourse converts a raw course into a Course, mapping empty and sentinel preferences to absent ones
func NormalizeCourse(raw RawCourse) Course {
	return Course{
		Id:              raw.Id,
		CourseCode:      strings.TrimSpace(raw.CourseCode),
		CourseName:      strings.TrimSpace(raw.CourseName),
		LabName:         strings.TrimSpace(raw.LabName),
		LabHoursPerWeek: raw.LabHoursPerWeek,
		StudentCount:    raw.StudentCount,
		Instructor:      strings.TrimSpace(raw.Instructor),
		Department:      strings.TrimSpace(raw.Department),
		PreferredDay:    optionalPreference(raw.PreferredDay, AnyDay),
		PreferredTime:   optionalPreference(raw.PreferredTime, AnyTime),
	}
}

func optionalPreference(value, sentinel string) *string {
	value = strings.TrimSpace(value)
	if value == "" || value == sentinel {
		return nil
	}
	return &value
}

// ValidateCourse applies the course form rules to a raw course. Preferences, when present, must name a day and an anchor of the shape
func ValidateCourse(raw RawCourse, shape WeekShape) error {
	if err := validate.Struct(raw); err != nil {
		return fmt.Errorf("invalid course %q: %w", raw.CourseCode, err)
	}

	course := NormalizeCourse(raw)
	day := -1
	if course.HasPreferredDay() {
		if day = shape.DayIndex(*course.PreferredDay); day == -1 {
			return fmt.Errorf("invalid course %q: preferred day %q is not one of %v", raw.CourseCode, *course.PreferredDay, shape.DayNames())
		}
	}
	if course.HasPreferredTime() {
		// Without a preferred day the time must be an anchor of at least one day
		legal := lo.ContainsBy(lo.Range(len(shape.Days)), func(candidate int) bool {
			return (day == -1 || candidate == day) && shape.IsAnchor(candidate, *course.PreferredTime)
		})
		if !legal {
			return fmt.Errorf("invalid course %q: preferred time %q is not a legal start time", raw.CourseCode, *course.PreferredTime)
		}
	}
	return nil
}

// CoursesFromJson reads a JSON roster: either an array of courses or an object holding it under "courses"
func CoursesFromJson(file string) ([]Course, error) {
	reader, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("cannot open course file: %w", err)
	}
	defer reader.Close()
	return CoursesFromReader(reader)
}

func CoursesFromReader(reader io.Reader) ([]Course, error) {
	raws, err := RawCoursesFromReader(reader)
	if err != nil {
		return nil, err
	}
	return lo.Map(raws, func(raw RawCourse, _ int) Course { return NormalizeCourse(raw) }), nil
}

func RawCoursesFromReader(reader io.Reader) ([]RawCourse, error) {
	var inputJson any
	if err := json.NewDecoder(reader).Decode(&inputJson); err != nil {
		return nil, fmt.Errorf("cannot parse course roster: %w", err)
	}

	if document, ok := inputJson.(map[string]any); ok {
		courses, ok := document["courses"]
		if !ok {
			return nil, errors.New("course roster object must hold a \"courses\" array")
		}
		inputJson = courses
	}

	return DecodeRawCourses(inputJson)
}

// DecodeRawCourses decodes generic JSON values (as produced by encoding/json) into raw courses.
// Numbers given as strings are accepted, as the course form sends them that way
func DecodeRawCourses(input any) ([]RawCourse, error) {
	var raws []RawCourse
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raws,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("cannot decode courses: %w", err)
	}
	return raws, nil
}
