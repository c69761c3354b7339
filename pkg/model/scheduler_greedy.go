package model

import (
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type greedyScheduler struct {
	shape  WeekShape
	logger *zap.Logger
}

func NewGreedyScheduler(shape WeekShape, logger *zap.Logger) Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &greedyScheduler{
		shape:  shape,
		logger: logger,
	}
}

func (scheduler *greedyScheduler) Build(courses []Course, weekStartDate int) (Schedule, []Course) {
	//** Initialize run-scoped state
	state := &placementState{
		shape:    scheduler.shape,
		schedule: newEmptySchedule(scheduler.shape, weekStartDate),
		tracker:  newOccupancyTracker(scheduler.shape),
		logger:   scheduler.logger,
	}

	// Placement strategies, from the most to the least constrained
	strategies := []func(state *placementState, course Course, duration float64) bool{
		placeAtExactPreference,
		placeOnPreferredDay,
		placeAtPreferredTime,
		placeAnywhere,
	}

	//** Place courses in priority order
	unplaced := make([]Course, 0)
	for _, course := range sortByPriority(courses) {
		duration := course.SessionHours(scheduler.shape.MaxSessionHours)

		placed := lo.SomeBy(strategies, func(strategy func(state *placementState, course Course, duration float64) bool) bool {
			return strategy(state, course, duration)
		})
		if !placed {
			scheduler.logger.Warn("course could not be placed",
				zap.String("course", course.CourseCode),
				zap.String("lab", course.LabName),
				zap.Float64("hours", duration),
			)
			unplaced = append(unplaced, course)
		}
	}

	//** Order each day by start time
	for i := range state.schedule {
		slices.SortStableFunc(state.schedule[i].Slots, func(a, b PlacedSlot) int {
			return compareTimes(a.Time, b.Time)
		})
	}

	scheduler.logger.Debug("schedule built",
		zap.Int("courses", len(courses)),
		zap.Int("placed", state.schedule.SlotCount()),
		zap.Int("unplaced", len(unplaced)),
	)

	return state.schedule, unplaced
}

func (scheduler *greedyScheduler) Verify(schedule Schedule, courses []Course) bool {
	return verify(schedule, courses, scheduler.shape)
}

type placementState struct {
	shape    WeekShape
	schedule Schedule
	tracker  occupancyTracker
	logger   *zap.Logger
}

// Commits the course at (day, time) in both the tracker and the schedule
func (state *placementState) place(day int, time string, course Course, duration float64) {
	state.tracker.MarkOccupied(day, course.LabName, time, duration)
	state.schedule[day].Slots = append(state.schedule[day].Slots, newPlacedSlot(course, time, duration))
	state.logger.Debug("course placed",
		zap.String("course", course.CourseCode),
		zap.String("day", state.shape.Days[day].Full),
		zap.String("time", time),
		zap.String("lab", course.LabName),
	)
}

// Tries every anchor of the day in order and places the course at the first free one
func (state *placementState) placeWithinDay(day int, course Course, duration float64) bool {
	for _, time := range state.shape.Days[day].Anchors {
		if state.tracker.IsAvailable(day, course.LabName, time, duration) {
			state.place(day, time, course, duration)
			return true
		}
	}
	return false
}

func placeAtExactPreference(state *placementState, course Course, duration float64) bool {
	if !course.HasPreferredDay() || !course.HasPreferredTime() {
		return false
	}

	day := state.shape.DayIndex(*course.PreferredDay)
	if day == -1 || !state.tracker.IsAvailable(day, course.LabName, *course.PreferredTime, duration) {
		return false
	}
	state.place(day, *course.PreferredTime, course, duration)
	return true
}

func placeOnPreferredDay(state *placementState, course Course, duration float64) bool {
	if !course.HasPreferredDay() {
		return false
	}

	candidates := daysByLoad(state.schedule)
	// An unknown day name leaves the load order untouched
	if preferred := state.shape.DayIndex(*course.PreferredDay); preferred != -1 {
		candidates = append([]int{preferred}, lo.Without(candidates, preferred)...)
	}

	return lo.SomeBy(candidates, func(day int) bool {
		return state.placeWithinDay(day, course, duration)
	})
}

func placeAtPreferredTime(state *placementState, course Course, duration float64) bool {
	if !course.HasPreferredTime() {
		return false
	}

	for _, day := range daysByLoad(state.schedule) {
		if state.tracker.IsAvailable(day, course.LabName, *course.PreferredTime, duration) {
			state.place(day, *course.PreferredTime, course, duration)
			return true
		}
	}
	return false
}

func placeAnywhere(state *placementState, course Course, duration float64) bool {
	return lo.SomeBy(daysByLoad(state.schedule), func(day int) bool {
		return state.placeWithinDay(day, course, duration)
	})
}
