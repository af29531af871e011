// Package notes aggregates grades by subject and transcript lines by unit.
package notes

import (
	"sort"

	"semaphore/my-espace/internal/dto"
	"semaphore/my-espace/internal/normalize"
)

type SubjectGroup struct {
	Subject   string               `json:"name"`
	Icon      normalize.Icon       `json:"icon"`
	Color     string               `json:"color"`
	Average   float64              `json:"average"`
	Letter    string               `json:"letter"`
	TextClass string               `json:"textClass"`
	Notes     []normalize.NoteView `json:"notes"`
}

// GroupBySubject decorates the backend's per-subject groups. The backend
// already grouped the notes, so order is kept as received.
func GroupBySubject(groups []dto.NoteGroup, locale *normalize.Locale) []SubjectGroup {
	out := make([]SubjectGroup, 0, len(groups))
	for _, g := range groups {
		group := SubjectGroup{
			Subject:   g.MatiereName,
			Icon:      normalize.SubjectIcon(g.MatiereName),
			Color:     normalize.SubjectColor(g.MatiereName).Hex(),
			Average:   g.Moyenne,
			Letter:    normalize.GradeLetter(g.Moyenne),
			TextClass: normalize.GradeTier(g.Moyenne).TextClass(),
			Notes:     make([]normalize.NoteView, 0, len(g.Notes)),
		}
		for _, n := range g.Notes {
			if n.MatiereName == "" {
				n.MatiereName = g.MatiereName
			}
			group.Notes = append(group.Notes, locale.Note(n))
		}
		out = append(out, group)
	}
	return out
}

// OverallAverage is the plain mean of the subject averages, not weighted by
// note count. No groups yields 0.
func OverallAverage(groups []SubjectGroup) float64 {
	if len(groups) == 0 {
		return 0
	}
	var sum float64
	for _, g := range groups {
		sum += g.Average
	}
	return sum / float64(len(groups))
}

const (
	FilterAll    = "all"
	FilterRecent = "recent"
	FilterBest   = "best"
)

// SortNotes returns copies of the groups with their notes reordered:
// "recent" by date descending, "best" by score descending. Any other filter
// keeps backend order.
func SortNotes(groups []SubjectGroup, filter string) []SubjectGroup {
	out := make([]SubjectGroup, len(groups))
	for i, g := range groups {
		g.Notes = append([]normalize.NoteView(nil), g.Notes...)
		switch filter {
		case FilterRecent:
			sort.SliceStable(g.Notes, func(a, b int) bool {
				x, y := g.Notes[a].DateAt, g.Notes[b].DateAt
				if x.IsZero() {
					return false
				}
				return y.IsZero() || x.After(y)
			})
		case FilterBest:
			sort.SliceStable(g.Notes, func(a, b int) bool {
				return g.Notes[a].Score > g.Notes[b].Score
			})
		}
		out[i] = g
	}
	return out
}
