package model

// occupancyTracker keeps the exclusive-use bookkeeping of a single generation run: for each (day, lab) pair, the time ranges already committed
type occupancyTracker interface {
	// Checks whether startTime is a legal anchor of day and [startTime, startTime+durationHours) does not overlap any range committed for (day, lab)
	IsAvailable(day int, lab, startTime string, durationHours float64) bool
	// Commits [startTime, startTime+durationHours) for (day, lab) without re-checking availability
	MarkOccupied(day int, lab, startTime string, durationHours float64)
}

func newOccupancyTracker(shape WeekShape) occupancyTracker {
	return &occupancyTrackerImplementation{
		shape:    shape,
		occupied: make(map[occupancyKey][]interval),
	}
}
