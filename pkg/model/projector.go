package model

import "github.com/samber/lo"

// FilterScheduleByDepartment keeps, for every day, only the slots of the given department.
// An empty department or "all" returns the schedule unchanged
func FilterScheduleByDepartment(schedule Schedule, department string) Schedule {
	if department == "" || department == AllDepartments {
		return schedule
	}

	return lo.Map(schedule, func(day Day, _ int) Day {
		return Day{
			Day:     day.Day,
			DayFull: day.DayFull,
			Date:    day.Date,
			Slots: lo.Filter(day.Slots, func(slot PlacedSlot, _ int) bool {
				return slot.Department == department
			}),
		}
	})
}
