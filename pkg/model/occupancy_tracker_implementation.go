package model

type occupancyKey struct {
	day int
	lab string
}

// interval is a half-open range [start, end) in minutes from midnight
type interval struct {
	start, end int
}

func (i interval) overlaps(other interval) bool {
	return i.start < other.end && other.start < i.end
}

type occupancyTrackerImplementation struct {
	shape    WeekShape
	occupied map[occupancyKey][]interval
}

func (tracker *occupancyTrackerImplementation) IsAvailable(day int, lab, startTime string, durationHours float64) bool {
	if !tracker.shape.IsAnchor(day, startTime) {
		return false
	}

	requested, ok := newInterval(startTime, durationHours)
	if !ok {
		return false
	}

	for _, committed := range tracker.occupied[occupancyKey{day, lab}] {
		if requested.overlaps(committed) {
			return false
		}
	}
	return true
}

func (tracker *occupancyTrackerImplementation) MarkOccupied(day int, lab, startTime string, durationHours float64) {
	committed, ok := newInterval(startTime, durationHours)
	if !ok {
		return
	}
	key := occupancyKey{day, lab}
	tracker.occupied[key] = append(tracker.occupied[key], committed)
}

func newInterval(startTime string, durationHours float64) (interval, bool) {
	start, ok := parseTime(startTime)
	if !ok {
		return interval{}, false
	}
	return interval{start: start, end: start + hoursToMinutes(durationHours)}, true
}
