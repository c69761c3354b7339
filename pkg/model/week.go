package model

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxSessionHours float64 = 3
	MaxSessionHoursLimit   float64 = 24 // Keeps every end time within the two-digit "HH:MM" range
	DefaultBaseWeekDate    int     = 9 // Day-of-month of the dashboard's reference week
	DefaultBaseWeekMonth           = "December"
	DefaultBaseWeekYear            = 2024
	AllDepartments                 = "all"
)

// DayShape describes one schedulable day: its names and the anchors a session may start at
type DayShape struct {
	Abbrev  string   `yaml:"abbrev"`
	Full    string   `yaml:"full"`
	Anchors []string `yaml:"anchors,omitempty"` // Falls back to WeekShape.Anchors when empty
}

// WeekShape is the fixed frame the scheduler places sessions into.
// Swapping the shape (other anchors, other days, another session cap) requires no change to the placement logic.
type WeekShape struct {
	MaxSessionHours float64           `yaml:"max_session_hours"`
	Anchors         []string          `yaml:"anchors"`
	Days            []DayShape        `yaml:"days"`
	Departments     map[string]string `yaml:"departments,omitempty"` // Alias (matched case-insensitively) -> canonical department name
}

func defaultAnchors() []string {
	return []string{"08:00", "09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}
}

func defaultDays() []DayShape {
	return []DayShape{
		{Abbrev: "Mon", Full: "Monday"},
		{Abbrev: "Tue", Full: "Tuesday"},
		{Abbrev: "Wed", Full: "Wednesday"},
		{Abbrev: "Thu", Full: "Thursday"},
		{Abbrev: "Fri", Full: "Friday"},
	}
}

// DefaultWeekShape returns the Monday-to-Friday week with eight hourly anchors and a three hour session cap
func DefaultWeekShape() WeekShape {
	return WeekShape{
		MaxSessionHours: DefaultMaxSessionHours,
		Anchors:         defaultAnchors(),
		Days:            defaultDays(),
	}.resolved()
}

// LoadWeekShape reads a YAML week shape. Fields missing from the file keep their default values
func LoadWeekShape(path string) (WeekShape, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return WeekShape{}, fmt.Errorf("cannot read week shape file: %w", err)
	}
	return ParseWeekShape(bytes)
}

func ParseWeekShape(data []byte) (WeekShape, error) {
	shape := WeekShape{
		MaxSessionHours: DefaultMaxSessionHours,
		Anchors:         defaultAnchors(),
		Days:            defaultDays(),
	}
	if err := yaml.Unmarshal(data, &shape); err != nil {
		return WeekShape{}, fmt.Errorf("cannot parse week shape: %w", err)
	}

	shape = shape.resolved()
	if err := shape.Validate(); err != nil {
		return WeekShape{}, err
	}
	return shape, nil
}

// resolved returns a copy where every day owns its anchor list and department aliases are lower-cased
func (shape WeekShape) resolved() WeekShape {
	days := make([]DayShape, len(shape.Days))
	for i, day := range shape.Days {
		anchors := day.Anchors
		if len(anchors) == 0 {
			anchors = shape.Anchors
		}
		days[i] = DayShape{Abbrev: day.Abbrev, Full: day.Full, Anchors: slices.Clone(anchors)}
	}
	shape.Days = days
	shape.Anchors = slices.Clone(shape.Anchors)

	if shape.Departments != nil {
		aliases := make(map[string]string, len(shape.Departments))
		for alias, canonical := range shape.Departments {
			aliases[strings.ToLower(alias)] = canonical
		}
		shape.Departments = aliases
	}
	return shape
}

func (shape WeekShape) Validate() error {
	if len(shape.Days) == 0 {
		return errors.New("week shape must contain at least one day")
	}
	if shape.MaxSessionHours <= 0 || shape.MaxSessionHours > MaxSessionHoursLimit {
		return fmt.Errorf("max session hours must be positive and at most %v: %v", MaxSessionHoursLimit, shape.MaxSessionHours)
	}

	names := make(map[string]bool)
	for _, day := range shape.Days {
		if day.Abbrev == "" || day.Full == "" {
			return fmt.Errorf("day %q must have both an abbreviated and a full name", day.Abbrev+day.Full)
		}
		if names[day.Abbrev] || names[day.Full] {
			return fmt.Errorf("duplicate day name in week shape: %v", day.Full)
		}
		names[day.Abbrev], names[day.Full] = true, true

		if len(day.Anchors) == 0 {
			return fmt.Errorf("day %v has no anchors", day.Full)
		}
		previous := -1
		for _, anchor := range day.Anchors {
			minutes, ok := parseTime(anchor)
			if !ok || minutes >= 24*60 {
				return fmt.Errorf("invalid anchor %q on %v: expected zero-padded HH:MM", anchor, day.Full)
			}
			if minutes <= previous {
				return fmt.Errorf("anchors of %v must be strictly ascending: %q", day.Full, anchor)
			}
			previous = minutes
		}
	}
	return nil
}

// DayIndex returns the position of the day whose full name is dayFull, or -1
func (shape WeekShape) DayIndex(dayFull string) int {
	return slices.IndexFunc(shape.Days, func(day DayShape) bool { return day.Full == dayFull })
}

func (shape WeekShape) IsAnchor(day int, time string) bool {
	if day < 0 || day >= len(shape.Days) {
		return false
	}
	return slices.Contains(shape.Days[day].Anchors, time)
}

// DayNames returns the full names of the days, in order
func (shape WeekShape) DayNames() []string {
	names := make([]string, len(shape.Days))
	for i, day := range shape.Days {
		names[i] = day.Full
	}
	return names
}

// WeekStartDate returns the date of the first day of the week located offset weeks away from baseDate
func WeekStartDate(baseDate, offset int) int {
	return baseDate + offset*7
}

// WeekRangeLabel renders the week heading, e.g. "December 9 - 13, 2024"
func WeekRangeLabel(month string, year, startDate, days int) string {
	return fmt.Sprintf("%s %d - %d, %d", month, startDate, startDate+days-1, year)
}
