package normalize

import (
	"fmt"
	"strings"
	"time"
)

// Locale holds the month table and relative-time wording of one language.
type Locale struct {
	Months       [12]string
	UnknownDate  string
	LessThanHour string
	OneHour      string
	Hours        string
	Yesterday    string
	Days         string
}

var French = &Locale{
	Months: [12]string{
		"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
		"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
	},
	UnknownDate:  "Date inconnue",
	LessThanHour: "Il y a moins d'une heure",
	OneHour:      "Il y a 1 heure",
	Hours:        "Il y a %d heures",
	Yesterday:    "Hier",
	Days:         "Il y a %d jours",
}

var English = &Locale{
	Months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	UnknownDate:  "unknown date",
	LessThanHour: "less than an hour ago",
	OneHour:      "1 hour ago",
	Hours:        "%d hours ago",
	Yesterday:    "yesterday",
	Days:         "%d days ago",
}

// LocaleFor returns the locale for a language code, French by default.
func LocaleFor(code string) *Locale {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "en", "en-us", "en-gb", "english":
		return English
	default:
		return French
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate reads the ISO-like timestamps the backend emits. Values without
// an offset are taken as UTC.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatAbsoluteDate renders "D Month YYYY", or the unknown-date sentinel.
func (l *Locale) FormatAbsoluteDate(raw string) string {
	parsed, ok := ParseDate(raw)
	if !ok {
		return l.UnknownDate
	}
	return l.FormatTime(parsed)
}

func (l *Locale) FormatTime(t time.Time) string {
	if t.IsZero() {
		return l.UnknownDate
	}
	return fmt.Sprintf("%d %s %d", t.Day(), l.Months[t.Month()-1], t.Year())
}

// FormatRelativeDate buckets the time elapsed between t and now. Anything a
// week old or more falls back to the absolute date.
func (l *Locale) FormatRelativeDate(t, now time.Time) string {
	elapsed := now.Sub(t)
	if elapsed < time.Hour {
		return l.LessThanHour
	}
	if elapsed < 24*time.Hour {
		hours := int(elapsed / time.Hour)
		if hours == 1 {
			return l.OneHour
		}
		return fmt.Sprintf(l.Hours, hours)
	}
	days := int(elapsed / (24 * time.Hour))
	switch {
	case days == 1:
		return l.Yesterday
	case days < 7:
		return fmt.Sprintf(l.Days, days)
	default:
		return l.FormatTime(t)
	}
}

func FormatAbsoluteDate(raw string) string {
	return French.FormatAbsoluteDate(raw)
}

func FormatRelativeDate(t, now time.Time) string {
	return French.FormatRelativeDate(t, now)
}
