package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"semaphore/my-espace/internal/dto"
	"semaphore/my-espace/internal/normalize"
)

type Entry struct {
	normalize.Course
	Duration string `json:"duration"`
}

// ForDay returns the occurrences scheduled on day, earliest start first.
// Start times compare as "HH:MM" strings; ties keep backend order.
func ForDay(programmes []dto.Programme, day string) []Entry {
	label := normalize.DayLabel(day)
	entries := make([]Entry, 0)
	for _, p := range programmes {
		if normalize.DayLabel(p.Jour) != label {
			continue
		}
		course := normalize.CourseOf(p)
		entries = append(entries, Entry{Course: course, Duration: FormatDuration(course.Start, course.End)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return startKey(entries[i].Start) < startKey(entries[j].Start)
	})
	return entries
}

func startKey(start string) string {
	if start == "" {
		return "00:00"
	}
	return start
}

func parseClock(raw string) (time.Duration, bool) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm[:min(2, len(mm))])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, true
}

// Duration is end minus start for "HH:MM" clock values.
func Duration(start, end string) (time.Duration, bool) {
	from, ok := parseClock(start)
	if !ok {
		return 0, false
	}
	to, ok := parseClock(end)
	if !ok || to < from {
		return 0, false
	}
	return to - from, true
}

// FormatDuration renders "1h30", "2h" or "45min"; empty when the times
// cannot be read.
func FormatDuration(start, end string) string {
	d, ok := Duration(start, end)
	if !ok {
		return ""
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%02d", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dmin", minutes)
	}
}
