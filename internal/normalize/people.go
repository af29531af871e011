package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func Initials(firstName, lastName string) string {
	var b strings.Builder
	for _, part := range []string{firstName, lastName} {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

func TeacherName(prenom, nom string) string {
	prenom = strings.TrimSpace(prenom)
	nom = strings.TrimSpace(nom)
	switch {
	case nom != "" && prenom != "":
		return prenom + " " + nom
	case nom != "":
		return nom
	default:
		return "Professeur"
	}
}
