package schedule

import "time"

// Navigator tracks the displayed week and the selected day. Moving past
// either end of the week wraps to the adjacent week.
type Navigator struct {
	now      func() time.Time
	week     Week
	selected int
}

func NewNavigator(now func() time.Time) *Navigator {
	if now == nil {
		now = time.Now
	}
	n := &Navigator{now: now}
	n.Today()
	return n
}

func (n *Navigator) Week() Week {
	return n.week
}

func (n *Navigator) Selected() WeekDay {
	return n.week[n.selected]
}

func (n *Navigator) Next() WeekDay {
	if n.selected < len(n.week)-1 {
		n.selected++
	} else {
		n.week = n.week.Shift(7)
		n.selected = 0
	}
	return n.Selected()
}

func (n *Navigator) Previous() WeekDay {
	if n.selected > 0 {
		n.selected--
	} else {
		n.week = n.week.Shift(-7)
		n.selected = len(n.week) - 1
	}
	return n.Selected()
}

// Select picks a day of the displayed week; unknown names leave the
// selection unchanged.
func (n *Navigator) Select(name string) bool {
	idx := n.week.Index(name)
	if idx < 0 {
		return false
	}
	n.selected = idx
	return true
}

func (n *Navigator) ShiftWeeks(weeks int) {
	n.week = n.week.Shift(7 * weeks)
}

// Today rebuilds the current week and selects today.
func (n *Navigator) Today() WeekDay {
	now := n.now()
	n.week = NewWeek(now)
	n.selected = mondayIndex(now.Weekday())
	return n.Selected()
}
