package normalize

import (
	"sort"
	"strings"
	"time"

	"semaphore/my-espace/internal/dto"
)

type Course struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Day     string `json:"day"`
	Start   string `json:"startTime"`
	End     string `json:"endTime"`
	Room    string `json:"room"`
	Teacher string `json:"teacher"`
	Icon    Icon   `json:"icon"`
	Color   Color  `json:"color"`
}

func CourseOf(p dto.Programme) Course {
	return Course{
		ID:      p.LocalID,
		Subject: p.MatiereName,
		Day:     DayLabel(p.Jour),
		Start:   strings.TrimSpace(p.HeureDebut),
		End:     strings.TrimSpace(p.HeureFin),
		Room:    p.SalleName,
		Teacher: TeacherName(p.ProfPrenom, p.ProfNom),
		Icon:    SubjectIcon(p.MatiereName),
		Color:   SubjectColor(p.MatiereName),
	}
}

// Alerts

const (
	AlertExam  = "examen"
	AlertNote  = "note"
	AlertEvent = "evenement"
	AlertInfo  = "info"
	AlertOther = "autre"
)

type Alert struct {
	ID        string    `json:"id"`
	Category  string    `json:"type"`
	Icon      string    `json:"icon"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Time      string    `json:"time"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

func AlertCategory(raw string) string {
	folded := fold(raw)
	switch {
	case strings.Contains(folded, "exam"):
		return AlertExam
	case strings.Contains(folded, "note"):
		return AlertNote
	case strings.Contains(folded, "even"), strings.Contains(folded, "event"):
		return AlertEvent
	case strings.Contains(folded, "info"):
		return AlertInfo
	default:
		return AlertOther
	}
}

func alertIcon(category string) string {
	switch category {
	case AlertExam:
		return "school-outline"
	case AlertNote:
		return "trophy-outline"
	case AlertEvent:
		return "calendar"
	case AlertInfo:
		return "information-circle-outline"
	default:
		return "notifications-outline"
	}
}

// Alerts shapes alert DTOs newest first. Alerts with an unreadable date keep
// their relative order at the end.
func (l *Locale) Alerts(items []dto.Alerte, now time.Time) []Alert {
	alerts := make([]Alert, 0, len(items))
	for _, item := range items {
		kind := item.TypeAlerte
		if strings.TrimSpace(kind) == "" {
			kind = item.AnnonceType
		}
		category := AlertCategory(kind)
		alert := Alert{
			ID:       item.LocalID,
			Category: category,
			Icon:     alertIcon(category),
			Title:    firstNonEmpty(item.Title, item.AnnonceTitre),
			Message:  firstNonEmpty(item.Description, item.AnnonceContenu),
			Date:     l.FormatAbsoluteDate(item.CreatedAt),
		}
		if created, ok := ParseDate(item.CreatedAt); ok {
			alert.CreatedAt = created
			alert.Time = l.FormatRelativeDate(created, now)
		} else {
			alert.Time = l.UnknownDate
		}
		alerts = append(alerts, alert)
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return newerFirst(alerts[i].CreatedAt, alerts[j].CreatedAt)
	})
	return alerts
}

func FilterAlerts(alerts []Alert, category string) []Alert {
	if category == "" || category == "all" {
		return alerts
	}
	filtered := make([]Alert, 0, len(alerts))
	for _, alert := range alerts {
		if alert.Category == category {
			filtered = append(filtered, alert)
		}
	}
	return filtered
}

// Documents

type DocumentView struct {
	ID        string    `json:"id"`
	Title     string    `json:"name"`
	URL       string    `json:"url"`
	AddedDate string    `json:"addedDate"`
	AddedAt   time.Time `json:"addedAt"`
	FileType
}

type CourseCard struct {
	Course
	Documents      []DocumentView `json:"documents"`
	DocumentsCount int            `json:"documentsCount"`
	LastUpdate     string         `json:"lastUpdate"`
	LastUpdateAt   time.Time      `json:"lastUpdateAt"`
}

// Courses merges each programme with its documents, sorts documents newest
// first and courses by their most recent document.
func (l *Locale) Courses(items []dto.CourseDocuments, now time.Time) []CourseCard {
	cards := make([]CourseCard, 0, len(items))
	for _, item := range items {
		card := CourseCard{Course: CourseOf(item.Programme)}
		for _, doc := range item.Documents {
			view := DocumentView{
				ID:        doc.LocalID,
				Title:     firstNonEmpty(doc.Title, doc.FileName),
				URL:       doc.URL,
				AddedDate: l.FormatAbsoluteDate(doc.CreatedAt),
				FileType:  GuessFileType(firstNonEmpty(doc.FileName, doc.Title), doc.URL),
			}
			if added, ok := ParseDate(doc.CreatedAt); ok {
				view.AddedAt = added
			}
			card.Documents = append(card.Documents, view)
		}
		sort.SliceStable(card.Documents, func(i, j int) bool {
			return newerFirst(card.Documents[i].AddedAt, card.Documents[j].AddedAt)
		})
		card.DocumentsCount = len(card.Documents)
		if card.DocumentsCount > 0 && !card.Documents[0].AddedAt.IsZero() {
			card.LastUpdateAt = card.Documents[0].AddedAt
			card.LastUpdate = l.FormatRelativeDate(card.LastUpdateAt, now)
		}
		cards = append(cards, card)
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return newerFirst(cards[i].LastUpdateAt, cards[j].LastUpdateAt)
	})
	return cards
}

const recentWindow = 3 * 24 * time.Hour

// FilterCourses supports "all" and "recent" (updated within three days).
func FilterCourses(cards []CourseCard, filter string, now time.Time) []CourseCard {
	if filter != "recent" {
		return cards
	}
	threshold := now.Add(-recentWindow)
	filtered := make([]CourseCard, 0, len(cards))
	for _, card := range cards {
		if !card.LastUpdateAt.IsZero() && !card.LastUpdateAt.Before(threshold) {
			filtered = append(filtered, card)
		}
	}
	return filtered
}

func FindDocument(cards []CourseCard, documentID string) (DocumentView, bool) {
	for _, card := range cards {
		for _, doc := range card.Documents {
			if doc.ID == documentID {
				return doc, true
			}
		}
	}
	return DocumentView{}, false
}

// Profile

type Profile struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FullName     string `json:"fullName"`
	Initials     string `json:"initials"`
	StudentID    string `json:"studentId"`
	Level        string `json:"level"`
	Major        string `json:"major"`
	AcademicYear string `json:"academicYear"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	BirthDate    string `json:"birthDate"`
}

func (l *Locale) Profile(p dto.Profile) Profile {
	birthDate := strings.TrimSpace(p.DateNaissance)
	if _, ok := ParseDate(birthDate); ok {
		birthDate = l.FormatAbsoluteDate(birthDate)
	}
	return Profile{
		ID:           p.LocalID,
		FirstName:    p.Prenom,
		LastName:     p.Nom,
		FullName:     strings.TrimSpace(p.Prenom + " " + p.Nom),
		Initials:     Initials(p.Prenom, p.Nom),
		StudentID:    p.Matricule,
		Level:        p.Niveau,
		Major:        p.Filiere,
		AcademicYear: p.AnneeScolaire,
		Email:        p.Email,
		Phone:        p.Telephone,
		Address:      p.Adresse,
		BirthDate:    birthDate,
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// newerFirst orders known times descending and zero times last.
func newerFirst(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	if b.IsZero() {
		return true
	}
	return a.After(b)
}
