package models

import "fmt"

// Severity is the derived stock tier of an ingredient. Values are totally
// ordered so that rolling up is a single max: Good < Warning < Critical.
type Severity int

const (
	SeverityGood Severity = iota
	SeverityWarning
	SeverityCritical
)

// String returns the lowercase wire name.
func (s Severity) String() string {
	switch s {
	case SeverityGood:
		return "good"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText encodes the severity as its wire name.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityGood, SeverityWarning, SeverityCritical:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
}

// UnmarshalText decodes a wire name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "good":
		*s = SeverityGood
	case "warning":
		*s = SeverityWarning
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("unknown severity %q", string(b))
	}
	return nil
}

// Worst returns the most severe of the given tiers; Good for none.
func Worst(tiers ...Severity) Severity {
	worst := SeverityGood
	for _, t := range tiers {
		worst = max(worst, t)
	}
	return worst
}
