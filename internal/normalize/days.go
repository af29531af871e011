package normalize

import "time"

// Days is the Monday-first list of canonical day labels used by the backend.
var Days = [7]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

var ShortDays = [7]string{"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

var dayAliases = map[string]int{
	"lundi": 0, "monday": 0,
	"mardi": 1, "tuesday": 1,
	"mercredi": 2, "wednesday": 2,
	"jeudi": 3, "thursday": 3,
	"vendredi": 4, "friday": 4,
	"samedi": 5, "saturday": 5,
	"dimanche": 6, "sunday": 6,
}

// DayIndex returns the Monday-first index of a day label, or -1.
func DayIndex(raw string) int {
	if idx, ok := dayAliases[fold(raw)]; ok {
		return idx
	}
	return -1
}

// DayLabel maps backend spellings ("LUNDI", "monday") to the canonical label
// and returns unknown values unchanged.
func DayLabel(raw string) string {
	if idx := DayIndex(raw); idx >= 0 {
		return Days[idx]
	}
	return raw
}

func DayOf(weekday time.Weekday) string {
	return Days[(int(weekday)+6)%7]
}
