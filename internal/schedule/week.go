// Package schedule indexes programme occurrences by day and drives the
// Monday-first week navigation of the planning page.
package schedule

import (
	"time"

	"semaphore/my-espace/internal/normalize"
)

type WeekDay struct {
	Name      string    `json:"name"`
	ShortName string    `json:"shortName"`
	Date      time.Time `json:"date"`
}

// Week is seven consecutive days starting on a Monday.
type Week [7]WeekDay

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NewWeek returns the week containing today. Sunday belongs to the week that
// started six days earlier.
func NewWeek(today time.Time) Week {
	day := startOfDay(today)
	monday := day.AddDate(0, 0, -mondayIndex(day.Weekday()))
	var week Week
	for i := range week {
		week[i] = WeekDay{
			Name:      normalize.Days[i],
			ShortName: normalize.ShortDays[i],
			Date:      monday.AddDate(0, 0, i),
		}
	}
	return week
}

// Shift moves every date by the given number of days; names keep their slot.
func (w Week) Shift(days int) Week {
	for i := range w {
		w[i].Date = w[i].Date.AddDate(0, 0, days)
	}
	return w
}

func (w Week) Index(name string) int {
	label := normalize.DayLabel(name)
	for i, day := range w {
		if day.Name == label {
			return i
		}
	}
	return -1
}

func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func (w Week) Monday() time.Time {
	return w[0].Date
}
