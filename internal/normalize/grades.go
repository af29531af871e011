package normalize

// GradeLetter maps a /20 score to a letter; a score equal to a threshold
// takes the higher letter.
func GradeLetter(score float64) string {
	switch {
	case score >= 18:
		return "A+"
	case score >= 16:
		return "A"
	case score >= 14:
		return "B"
	case score >= 12:
		return "C"
	case score >= 10:
		return "D"
	default:
		return "E"
	}
}

type Tier string

const (
	TierHigh    Tier = "high"
	TierMidHigh Tier = "mid-high"
	TierMidLow  Tier = "mid-low"
	TierLow     Tier = "low"
)

func GradeTier(score float64) Tier {
	switch {
	case score >= 16:
		return TierHigh
	case score >= 14:
		return TierMidHigh
	case score >= 12:
		return TierMidLow
	default:
		return TierLow
	}
}

func (t Tier) TextClass() string {
	switch t {
	case TierHigh:
		return "green"
	case TierMidHigh:
		return "orange"
	case TierMidLow:
		return "yellow"
	default:
		return "red"
	}
}

func (t Tier) BadgeClass() string {
	return t.TextClass() + "-badge"
}
