package normalize

import (
	"sort"
	"strings"
	"time"

	"semaphore/my-espace/internal/dto"
)

type NoteView struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Date       string    `json:"date"`
	DateAt     time.Time `json:"dateAt"`
	Score      float64   `json:"score"`
	Letter     string    `json:"letter"`
	TextClass  string    `json:"textClass"`
	BadgeClass string    `json:"badgeClass"`
	Validated  bool      `json:"validated"`
}

// Note titles read "<kind> <subject>", e.g. "Contrôle Chimie".
func (l *Locale) Note(n dto.Note) NoteView {
	kind := KindLabel(n.Type)
	tier := GradeTier(n.Note)
	view := NoteView{
		ID:         n.LocalID,
		Subject:    n.MatiereName,
		Kind:       kind,
		Title:      strings.TrimSpace(kind + " " + n.MatiereName),
		Date:       l.FormatAbsoluteDate(n.Date),
		Score:      n.Note,
		Letter:     GradeLetter(n.Note),
		TextClass:  tier.TextClass(),
		BadgeClass: tier.BadgeClass(),
		Validated:  n.Valider,
	}
	if at, ok := ParseDate(n.Date); ok {
		view.DateAt = at
	}
	return view
}

type Dashboard struct {
	TodayCount   int        `json:"todayCount"`
	Average      float64    `json:"average"`
	AverageClass string     `json:"averageClass"`
	Today        []Course   `json:"today"`
	RecentNotes  []NoteView `json:"recentNotes"`
	Alerts       []Alert    `json:"alerts"`
}

const dashboardAlerts = 3

// Dashboard shapes the home page: today's courses by start time, recent
// notes newest first and the latest alerts for the carousel.
func (l *Locale) Dashboard(d dto.Dashboard, recent []dto.Note, alerts []dto.Alerte, now time.Time) Dashboard {
	view := Dashboard{
		TodayCount:   d.NombreCoursAujourdHui,
		Average:      d.MoyenneGenerale,
		AverageClass: GradeTier(d.MoyenneGenerale).TextClass(),
		Today:        make([]Course, 0, len(d.CoursAujourdHui)),
		RecentNotes:  make([]NoteView, 0, len(recent)),
	}
	for _, p := range d.CoursAujourdHui {
		view.Today = append(view.Today, CourseOf(p))
	}
	sort.SliceStable(view.Today, func(i, j int) bool {
		return view.Today[i].Start < view.Today[j].Start
	})
	if view.TodayCount == 0 {
		view.TodayCount = len(view.Today)
	}
	for _, n := range recent {
		view.RecentNotes = append(view.RecentNotes, l.Note(n))
	}
	sort.SliceStable(view.RecentNotes, func(i, j int) bool {
		return newerFirst(view.RecentNotes[i].DateAt, view.RecentNotes[j].DateAt)
	})
	view.Alerts = l.Alerts(alerts, now)
	if len(view.Alerts) > dashboardAlerts {
		view.Alerts = view.Alerts[:dashboardAlerts]
	}
	return view
}
