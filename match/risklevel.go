package match

// RiskLevel represents the risk classification of a matched entity.
type RiskLevel string

const (
	// RiskCritical indicates an entity requiring immediate attention.
	RiskCritical RiskLevel = "critical"

	// RiskHigh indicates a high-impact entity.
	RiskHigh RiskLevel = "high"

	// RiskMedium indicates a moderate-risk entity.
	RiskMedium RiskLevel = "medium"

	// RiskLow indicates a low-risk or informational entity.
	RiskLow RiskLevel = "low"
)

// riskWeights maps risk levels to numeric weights for ranking.
var riskWeights = map[RiskLevel]float64{
	RiskCritical: 10.0,
	RiskHigh:     7.5,
	RiskMedium:   5.0,
	RiskLow:      2.5,
}

// IsValid returns true if the risk level is one of the defined values.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskCritical, RiskHigh, RiskMedium, RiskLow:
		return true
	default:
		return false
	}
}

// Weight returns the numeric weight associated with the risk level.
// Returns 0.0 for invalid levels.
func (r RiskLevel) Weight() float64 {
	if w, ok := riskWeights[r]; ok {
		return w
	}
	return 0.0
}

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// NormalizeRiskLevel maps an arbitrary string to a RiskLevel, defaulting to
// RiskLow for unknown or missing values. The second return value reports
// whether the input was already a valid level.
func NormalizeRiskLevel(s string) (RiskLevel, bool) {
	r := RiskLevel(s)
	if r.IsValid() {
		return r, true
	}
	return RiskLow, false
}
