package domain

import "time"

// WeekWindow returns the [start, end) bounds of the Sunday-to-Saturday
// calendar week containing the given date, at day granularity in the date's
// location.
func WeekWindow(date time.Time) (time.Time, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return start, start.AddDate(0, 0, 7)
}

// FridayOf returns the Friday of the calendar week containing the given
// date. Deliveries go out on Fridays.
func FridayOf(date time.Time) time.Time {
	start, _ := WeekWindow(date)
	return start.AddDate(0, 0, int(time.Friday))
}

// DayOf truncates a timestamp to day granularity, the bucketing key for
// per-day statistics.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
