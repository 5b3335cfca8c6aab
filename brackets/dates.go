package brackets

import (
	"time"

	"github.com/Dosada05/chess-league/models"
)

// FirstOccurrenceOfWeekday returns the first day on or after start that falls on weekday.
func FirstOccurrenceOfWeekday(start time.Time, weekday time.Weekday) time.Time {
	day := models.DateOnly(start)
	offset := (int(weekday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// RoundDate schedules round r one week after round r-1, starting with the first
// matching weekday of the tournament.
func RoundDate(start time.Time, weekday time.Weekday, round int) time.Time {
	return FirstOccurrenceOfWeekday(start, weekday).AddDate(0, 0, 7*(round-1))
}
