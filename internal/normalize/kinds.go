package normalize

import "strings"

type NoteKind int

const (
	KindOther NoteKind = iota
	KindDevoir
	KindControle
	KindExamen
	KindTP
	KindInterrogation
	KindExpose
)

var kindLabels = map[NoteKind]string{
	KindDevoir:        "Devoir",
	KindControle:      "Contrôle",
	KindExamen:        "Examen",
	KindTP:            "TP",
	KindInterrogation: "Interrogation",
	KindExpose:        "Exposé",
}

func NoteKindOf(raw string) NoteKind {
	switch strings.ReplaceAll(fold(raw), " ", "") {
	case "devoir", "devoirmaison", "dm":
		return KindDevoir
	case "controle", "cc", "controlecontinu":
		return KindControle
	case "examen", "exam":
		return KindExamen
	case "tp", "travauxpratiques":
		return KindTP
	case "interrogation", "interro":
		return KindInterrogation
	case "expose":
		return KindExpose
	default:
		return KindOther
	}
}

// KindLabel translates a backend note type, keeping the raw value when the
// type is not one we know.
func KindLabel(raw string) string {
	if label, ok := kindLabels[NoteKindOf(raw)]; ok {
		return label
	}
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return trimmed
	}
	return "Note"
}
