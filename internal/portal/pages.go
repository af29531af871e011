package portal

import (
	"context"
	"fmt"

	"semaphore/my-espace/internal/normalize"
	"semaphore/my-espace/internal/notes"
	"semaphore/my-espace/internal/schedule"
	"semaphore/my-espace/internal/session"
)

type HomePage struct {
	Student   string              `json:"student"`
	Initials  string              `json:"initials"`
	Dashboard normalize.Dashboard `json:"dashboard"`
	Degraded  bool                `json:"degraded"`
}

func (s *Service) Home(ctx context.Context, sess session.Session) HomePage {
	page := HomePage{
		Student:  sess.DisplayName(),
		Initials: normalize.Initials(sess.Prenom, sess.Nom),
	}
	dashboard, err := s.backend.Dashboard(ctx, sess.Token, sess.LocalID)
	page.Degraded = s.degraded(ctx, "dashboard", err) || page.Degraded
	recent, err := s.backend.RecentNotes(ctx, sess.Token, sess.LocalID)
	page.Degraded = s.degraded(ctx, "notes_recent", err) || page.Degraded
	alerts, err := s.backend.Alertes(ctx, sess.Token, sess.LocalID)
	page.Degraded = s.degraded(ctx, "alertes", err) || page.Degraded
	page.Dashboard = s.locale.Dashboard(dashboard, recent, alerts, s.now())
	return page
}

type SchedulePage struct {
	Week     schedule.Week    `json:"week"`
	Selected schedule.WeekDay `json:"selected"`
	Courses  []schedule.Entry `json:"courses"`
	Degraded bool             `json:"degraded"`
}

// Schedule shows the courses of one day. weekOffset moves the displayed
// week; an empty or unknown day selects today's slot.
func (s *Service) Schedule(ctx context.Context, sess session.Session, day string, weekOffset int) SchedulePage {
	nav := schedule.NewNavigator(s.now)
	if weekOffset != 0 {
		nav.ShiftWeeks(weekOffset)
	}
	if day != "" {
		nav.Select(day)
	}
	page := SchedulePage{Week: nav.Week(), Selected: nav.Selected(), Courses: []schedule.Entry{}}
	programmes, err := s.backend.Programmes(ctx, sess.Token, sess.LocalID)
	if s.degraded(ctx, "programmes", err) {
		page.Degraded = true
		return page
	}
	page.Courses = schedule.ForDay(programmes, page.Selected.Name)
	return page
}

type NotesPage struct {
	Filter        string               `json:"filter"`
	Average       float64              `json:"average"`
	AverageLetter string               `json:"averageLetter"`
	Subjects      []notes.SubjectGroup `json:"subjects"`
	Degraded      bool                 `json:"degraded"`
}

func (s *Service) Notes(ctx context.Context, sess session.Session, filter string) NotesPage {
	if filter == "" {
		filter = notes.FilterAll
	}
	page := NotesPage{Filter: filter, Subjects: []notes.SubjectGroup{}, AverageLetter: normalize.GradeLetter(0)}
	groups, err := s.backend.NoteGroups(ctx, sess.Token, sess.LocalID)
	if s.degraded(ctx, "notes_groupes", err) {
		page.Degraded = true
		return page
	}
	subjects := notes.GroupBySubject(groups, s.locale)
	page.Average = notes.OverallAverage(subjects)
	page.AverageLetter = normalize.GradeLetter(page.Average)
	page.Subjects = notes.SortNotes(subjects, filter)
	return page
}

type RelevesPage struct {
	Groups   []notes.ReleveGroup `json:"groups"`
	Degraded bool                `json:"degraded"`
}

func (s *Service) Releves(ctx context.Context, sess session.Session) RelevesPage {
	page := RelevesPage{Groups: []notes.ReleveGroup{}}
	records, err := s.backend.Releves(ctx, sess.Token, sess.LocalID)
	if s.degraded(ctx, "relevers", err) {
		page.Degraded = true
		return page
	}
	if groups := notes.GroupRelevesByUnit(records); groups != nil {
		page.Groups = groups
	}
	return page
}

type DocumentsPage struct {
	Filter   string                 `json:"filter"`
	Courses  []normalize.CourseCard `json:"courses"`
	Degraded bool                   `json:"degraded"`
}

func (s *Service) Documents(ctx context.Context, sess session.Session, filter string) DocumentsPage {
	if filter == "" {
		filter = "all"
	}
	page := DocumentsPage{Filter: filter, Courses: []normalize.CourseCard{}}
	items, err := s.backend.ProgrammeDocuments(ctx, sess.Token, sess.LocalID)
	if s.degraded(ctx, "programmes_documents", err) {
		page.Degraded = true
		return page
	}
	now := s.now()
	page.Courses = normalize.FilterCourses(s.locale.Courses(items, now), filter, now)
	return page
}

// OpenDocument resolves what the device needs to open one document.
func (s *Service) OpenDocument(ctx context.Context, sess session.Session, documentID string) (normalize.OpenTarget, error) {
	items, err := s.backend.ProgrammeDocuments(ctx, sess.Token, sess.LocalID)
	if s.degraded(ctx, "programmes_documents", err) {
		return normalize.OpenTarget{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	doc, ok := normalize.FindDocument(s.locale.Courses(items, s.now()), documentID)
	if !ok {
		return normalize.OpenTarget{}, normalize.ErrDocumentUnavailable
	}
	return normalize.NewOpenTarget(doc)
}

type AlertsPage struct {
	Category string            `json:"category"`
	Alerts   []normalize.Alert `json:"alerts"`
	Degraded bool              `json:"degraded"`
}

func (s *Service) Alerts(ctx context.Context, sess session.Session, category string) AlertsPage {
	if category == "" {
		category = "all"
	}
	page := AlertsPage{Category: category, Alerts: []normalize.Alert{}}
	items, err := s.backend.Alertes(ctx, sess.Token, sess.LocalID)
	if s.degraded(ctx, "alertes", err) {
		page.Degraded = true
		return page
	}
	page.Alerts = normalize.FilterAlerts(s.locale.Alerts(items, s.now()), category)
	return page
}

type ProfilePage struct {
	Profile  normalize.Profile `json:"profile"`
	Degraded bool              `json:"degraded"`
}

// Profile falls back to the identity held in the session when the backend
// profile cannot be fetched.
func (s *Service) Profile(ctx context.Context, sess session.Session) ProfilePage {
	profile, err := s.backend.Profile(ctx, sess.Token, sess.LocalID)
	if s.degraded(ctx, "profile", err) {
		return ProfilePage{
			Profile: normalize.Profile{
				ID:        sess.LocalID,
				FirstName: sess.Prenom,
				LastName:  sess.Nom,
				FullName:  sess.DisplayName(),
				Initials:  normalize.Initials(sess.Prenom, sess.Nom),
				Email:     sess.Email,
			},
			Degraded: true,
		}
	}
	return ProfilePage{Profile: s.locale.Profile(profile)}
}
