package normalize

import "strings"

type Icon string

const (
	IconCalculator Icon = "calculator"
	IconFlask      Icon = "flask"
	IconGlobe      Icon = "globe"
	IconBook       Icon = "book"
	IconSchool     Icon = "school"
)

type Color string

const (
	ColorOrange Color = "orange"
	ColorGreen  Color = "green"
)

func (c Color) Hex() string {
	switch c {
	case ColorOrange:
		return "#d4a574"
	default:
		return "#96a896"
	}
}

type subjectRule struct {
	keywords []string
	icon     Icon
	color    Color
}

// subjectRules are evaluated in order and the first match wins. A subject
// such as "Biochimie" could match several rules; the order is the policy.
// A rule without a color leaves the default color.
var subjectRules = []subjectRule{
	{keywords: []string{"math"}, icon: IconCalculator, color: ColorOrange},
	{keywords: []string{"chimi", "chemi", "biolog"}, icon: IconFlask, color: ColorGreen},
	{keywords: []string{"geograph"}, icon: IconGlobe, color: ColorOrange},
	{keywords: []string{"litterat", "literat", "francais", "french"}, icon: IconBook},
}

const (
	defaultIcon  = IconSchool
	defaultColor = ColorGreen
)

func matchSubject(name string) (subjectRule, bool) {
	folded := fold(name)
	if folded == "" {
		return subjectRule{}, false
	}
	for _, rule := range subjectRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(folded, keyword) {
				return rule, true
			}
		}
	}
	return subjectRule{}, false
}

func SubjectIcon(name string) Icon {
	if rule, ok := matchSubject(name); ok {
		return rule.icon
	}
	return defaultIcon
}

func SubjectColor(name string) Color {
	if rule, ok := matchSubject(name); ok && rule.color != "" {
		return rule.color
	}
	return defaultColor
}
