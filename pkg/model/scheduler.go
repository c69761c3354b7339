package model

type Scheduler interface {
	// Build assigns every course a (day, anchor) slot in the week starting at weekStartDate.
	// Courses that cannot be placed anywhere are left out of the schedule and returned as unplaced
	Build(
		courses []Course,
		weekStartDate int,
	) (schedule Schedule, unplaced []Course)

	// Verify checks that the schedule is a legal placement of (a subset of) the courses
	Verify(
		schedule Schedule,
		courses []Course,
	) bool
}

// GenerateSchedule places the courses into the default week and silently drops the ones that do not fit
func GenerateSchedule(courses []Course, weekStartDate int) Schedule {
	schedule, _ := NewGreedyScheduler(DefaultWeekShape(), nil).Build(courses, weekStartDate)
	return schedule
}
