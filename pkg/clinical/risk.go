package clinical

// RiskCategory classifies an antenatal risk score.
type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

func (r RiskCategory) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// CategoryForScore maps a 0-100 risk score onto the displayed guideline
// bands: 0-30 low, 31-60 medium, 61-100 high. Scores outside the range clamp
// to the nearest band. The store never reclassifies on its own; callers that
// change a risk score are expected to call this themselves.
func CategoryForScore(score int) RiskCategory {
	switch {
	case score <= 30:
		return RiskLow
	case score <= 60:
		return RiskMedium
	default:
		return RiskHigh
	}
}
