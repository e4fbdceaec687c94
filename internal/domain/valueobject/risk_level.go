package valueobject

import "fmt"

// RiskLevel is an ordinal risk tier: low < medium < high < very_high.
type RiskLevel struct {
	value string
}

const (
	riskLevelLow      = "low"
	riskLevelMedium   = "medium"
	riskLevelHigh     = "high"
	riskLevelVeryHigh = "very_high"
)

var (
	RiskLevelLow      = RiskLevel{value: riskLevelLow}
	RiskLevelMedium   = RiskLevel{value: riskLevelMedium}
	RiskLevelHigh     = RiskLevel{value: riskLevelHigh}
	RiskLevelVeryHigh = RiskLevel{value: riskLevelVeryHigh}
)

// RiskLevelFromString parses the wire representation of a risk level.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case riskLevelLow:
		return RiskLevelLow, nil
	case riskLevelMedium:
		return RiskLevelMedium, nil
	case riskLevelHigh:
		return RiskLevelHigh, nil
	case riskLevelVeryHigh:
		return RiskLevelVeryHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %q", s)
	}
}

// RiskLevelFromScore maps a final 0..100 risk score to its tier.
//
//	[80,100] very_high
//	[60,80)  high
//	[40,60)  medium
//	[0,40)   low
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskLevelVeryHigh
	case score >= 60:
		return RiskLevelHigh
	case score >= 40:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the wire representation.
func (r RiskLevel) String() string { return r.value }

// Label is the capitalised form used in human-readable messages.
func (r RiskLevel) Label() string {
	switch r.value {
	case riskLevelLow:
		return "Low"
	case riskLevelMedium:
		return "Medium"
	case riskLevelHigh:
		return "High"
	case riskLevelVeryHigh:
		return "Very high"
	default:
		return "Unknown"
	}
}

// Rank orders the tiers from 1 (low) to 4 (very_high); zero value ranks 0.
func (r RiskLevel) Rank() int {
	switch r.value {
	case riskLevelLow:
		return 1
	case riskLevelMedium:
		return 2
	case riskLevelHigh:
		return 3
	case riskLevelVeryHigh:
		return 4
	default:
		return 0
	}
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool { return r.value == "" }

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool { return r.value == other.value }

// MarshalText encodes the level as its wire string.
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// UnmarshalText accepts only the four wire strings.
func (r *RiskLevel) UnmarshalText(b []byte) error {
	lvl, err := RiskLevelFromString(string(b))
	if err != nil {
		return err
	}
	*r = lvl
	return nil
}
