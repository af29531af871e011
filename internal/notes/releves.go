package notes

import (
	"sort"
	"strings"

	"semaphore/my-espace/internal/dto"
	"semaphore/my-espace/internal/normalize"
)

type ReleveLine struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Average   float64 `json:"average"`
	Letter    string  `json:"letter"`
	Validated bool    `json:"validated"`
	Summary   bool    `json:"isUe"`
}

// ReleveGroup is one unit with its subject lines, or a single line that has
// no parent unit (UnitID empty).
type ReleveGroup struct {
	UnitID   string       `json:"ueId,omitempty"`
	UnitName string       `json:"ueName,omitempty"`
	Lines    []ReleveLine `json:"lines"`
}

func lineOf(r dto.Releve) ReleveLine {
	return ReleveLine{
		ID:        r.LocalID,
		Name:      r.Name,
		Average:   r.Moyenne,
		Letter:    normalize.GradeLetter(r.Moyenne),
		Validated: r.Valider,
		Summary:   r.IsUE,
	}
}

func unitOf(r dto.Releve) string {
	if r.UEID == nil {
		return ""
	}
	return strings.TrimSpace(*r.UEID)
}

// GroupRelevesByUnit groups lines sharing a unit id in order of first
// appearance. Inside a group the unit summary lines come after the subject
// lines. Lines without a unit follow as singleton groups in input order.
func GroupRelevesByUnit(records []dto.Releve) []ReleveGroup {
	var (
		groups     []ReleveGroup
		singletons []ReleveGroup
		byUnit     = make(map[string]int)
	)
	for _, r := range records {
		unit := unitOf(r)
		if unit == "" {
			singletons = append(singletons, ReleveGroup{Lines: []ReleveLine{lineOf(r)}})
			continue
		}
		idx, ok := byUnit[unit]
		if !ok {
			idx = len(groups)
			byUnit[unit] = idx
			groups = append(groups, ReleveGroup{UnitID: unit})
		}
		if groups[idx].UnitName == "" {
			if r.UEName != nil && strings.TrimSpace(*r.UEName) != "" {
				groups[idx].UnitName = *r.UEName
			} else if r.IsUE {
				groups[idx].UnitName = r.Name
			}
		}
		groups[idx].Lines = append(groups[idx].Lines, lineOf(r))
	}
	for i := range groups {
		lines := groups[i].Lines
		sort.SliceStable(lines, func(a, b int) bool {
			return !lines[a].Summary && lines[b].Summary
		})
	}
	return append(groups, singletons...)
}
