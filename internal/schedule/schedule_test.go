package schedule

import (
	"testing"
	"time"

	"semaphore/my-espace/internal/dto"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewWeekStartsOnMonday(t *testing.T) {
	// 2024-03-17 is a Sunday.
	sunday := time.Date(2024, time.March, 17, 18, 0, 0, 0, time.UTC)
	week := NewWeek(sunday)
	if week[0].Name != "Lundi" || week[0].Date.Day() != 11 {
		t.Fatalf("expected monday 11, got %+v", week[0])
	}
	if week[6].Name != "Dimanche" || week[6].Date.Day() != 17 {
		t.Fatalf("expected sunday 17, got %+v", week[6])
	}
	shifted := week.Shift(7)
	if shifted.Monday().Day() != 18 || week.Monday().Day() != 11 {
		t.Fatalf("shift must return a moved copy")
	}
}

func TestNavigatorWrapsWeeks(t *testing.T) {
	// Friday 2024-03-15.
	nav := NewNavigator(fixedClock(time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)))
	if nav.Selected().Name != "Vendredi" {
		t.Fatalf("expected today selected, got %s", nav.Selected().Name)
	}
	nav.Next()
	nav.Next()
	day := nav.Next()
	if day.Name != "Lundi" || day.Date.Day() != 18 {
		t.Fatalf("expected next monday, got %+v", day)
	}
	day = nav.Previous()
	if day.Name != "Dimanche" || day.Date.Day() != 17 {
		t.Fatalf("expected previous sunday, got %+v", day)
	}
	if !nav.Select("MERCREDI") || nav.Selected().Date.Day() != 13 {
		t.Fatalf("expected wednesday 13, got %+v", nav.Selected())
	}
	if nav.Select("someday") {
		t.Fatalf("unknown day must not select")
	}
	nav.ShiftWeeks(-1)
	if nav.Selected().Date.Day() != 6 {
		t.Fatalf("expected wednesday 6, got %+v", nav.Selected())
	}
	if day := nav.Today(); day.Date.Day() != 15 {
		t.Fatalf("expected today, got %+v", day)
	}
}

func TestForDaySortsByStart(t *testing.T) {
	programmes := []dto.Programme{
		{LocalID: "a", Jour: "LUNDI", HeureDebut: "09:00", HeureFin: "10:30", MatiereName: "Maths"},
		{LocalID: "b", Jour: "Mardi", HeureDebut: "08:00", HeureFin: "09:00"},
		{LocalID: "c", Jour: "Lundi", HeureDebut: "07:30", HeureFin: "08:15"},
		{LocalID: "d", Jour: "lundi", HeureDebut: "09:00", HeureFin: "11:00"},
	}
	entries := ForDay(programmes, "Lundi")
	order := []string{"c", "a", "d"}
	if len(entries) != len(order) {
		t.Fatalf("expected %d entries got %d", len(order), len(entries))
	}
	for i, id := range order {
		if entries[i].ID != id {
			t.Fatalf("position %d: expected %s got %s", i, id, entries[i].ID)
		}
	}
	if entries[0].Duration != "45min" || entries[1].Duration != "1h30" || entries[2].Duration != "2h" {
		t.Fatalf("unexpected durations %+v", entries)
	}
	if entries[1].Teacher != "Professeur" {
		t.Fatalf("expected teacher fallback, got %q", entries[1].Teacher)
	}
	if got := ForDay(programmes, "Dimanche"); len(got) != 0 {
		t.Fatalf("expected empty sunday, got %+v", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[[2]string]string{
		{"08:00", "09:30"}: "1h30",
		{"08:00", "10:00"}: "2h",
		{"08:00", "08:45"}: "45min",
		{"10:00", "09:00"}: "",
		{"", "09:00"}:      "",
		{"8h", "9h"}:       "",
	}
	for in, expected := range cases {
		if got := FormatDuration(in[0], in[1]); got != expected {
			t.Fatalf("%v: expected %q got %q", in, expected, got)
		}
	}
}
