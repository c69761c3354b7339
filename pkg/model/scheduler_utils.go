package model

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Returns a copy of the courses ordered by: courses with a preference first, longer sessions first, then course code
func sortByPriority(courses []Course) []Course {
	sorted := slices.Clone(courses)
	slices.SortStableFunc(sorted, func(a, b Course) int {
		if a.HasPreference() != b.HasPreference() {
			if a.HasPreference() {
				return -1
			}
			return 1
		}
		if hours := cmp.Compare(b.LabHoursPerWeek, a.LabHoursPerWeek); hours != 0 {
			return hours
		}
		return strings.Compare(a.CourseCode, b.CourseCode)
	})
	return sorted
}

// Returns the day indexes ordered by ascending load: fewer placed slots first, then fewer placed minutes, then natural order
func daysByLoad(schedule Schedule) []int {
	days := lo.Range(len(schedule))
	slices.SortStableFunc(days, func(a, b int) int {
		if slots := cmp.Compare(len(schedule[a].Slots), len(schedule[b].Slots)); slots != 0 {
			return slots
		}
		return cmp.Compare(dayLoad(schedule[a]), dayLoad(schedule[b]))
	})
	return days
}

// Total placed minutes of the day
func dayLoad(day Day) int {
	return lo.SumBy(day.Slots, func(slot PlacedSlot) int {
		start, _ := parseTime(slot.Time)
		end, _ := parseTime(slot.EndTime)
		return end - start
	})
}

func verify(schedule Schedule, courses []Course, shape WeekShape) bool {
	if len(schedule) != len(shape.Days) {
		return false
	}

	coursesByCode := lo.GroupBy(courses, func(course Course) string { return course.CourseCode })
	placements := make(map[string]int)
	occupied := make(map[occupancyKey][]interval)

	for day, scheduledDay := range schedule {
		if scheduledDay.Day != shape.Days[day].Abbrev || scheduledDay.DayFull != shape.Days[day].Full {
			return false
		}

		for _, slot := range scheduledDay.Slots {
			start, startOk := parseTime(slot.Time)
			end, endOk := parseTime(slot.EndTime)
			if !startOk || !endOk {
				return false
			}
			placed := interval{start: start, end: end}

			// Check that:
			// - Slot starts at a legal anchor of its day
			// - Slot belongs to a known course in the same lab whose capped duration matches
			// - Course is not placed more often than it appears in the roster
			// - Lab is not already occupied during the slot
			if !shape.IsAnchor(day, slot.Time) ||
				!lo.SomeBy(coursesByCode[slot.Class], func(course Course) bool {
					return course.LabName == slot.Lab && hoursToMinutes(course.SessionHours(shape.MaxSessionHours)) == end-start
				}) ||
				placements[slot.Class] >= len(coursesByCode[slot.Class]) ||
				lo.SomeBy(occupied[occupancyKey{day, slot.Lab}], placed.overlaps) {
				return false
			}

			placements[slot.Class]++
			key := occupancyKey{day, slot.Lab}
			occupied[key] = append(occupied[key], placed)
		}
	}
	return true
}

// Parses a zero-padded "HH:MM" time into minutes from midnight
func parseTime(time string) (int, bool) {
	if len(time) != 5 || time[2] != ':' {
		return 0, false
	}
	for _, position := range []int{0, 1, 3, 4} {
		if time[position] < '0' || time[position] > '9' {
			return 0, false
		}
	}
	hours, _ := strconv.Atoi(time[:2])
	minutes, _ := strconv.Atoi(time[3:])
	if minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

func formatTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func hoursToMinutes(hours float64) int {
	return int(hours*60 + 0.5)
}

// Adds the given hours to a "HH:MM" time. Results past midnight keep counting hours (e.g. "25:30")
func addHours(time string, hours float64) string {
	start, _ := parseTime(time)
	return formatTime(start + hoursToMinutes(hours))
}

// "HH:MM" times are zero-padded, hence lexicographic order is chronological order
func compareTimes(a, b string) int {
	return strings.Compare(a, b)
}
