package domain

import (
	"fmt"
	"strings"
)

// Severity orders event severities, risk levels and priorities on one scale.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityLow:      "Low",
	SeverityMedium:   "Medium",
	SeverityHigh:     "High",
	SeverityCritical: "Critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// AllSeverities lists every severity from the most to the least severe.
func AllSeverities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
}

// ParseSeverity accepts the display names case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	needle := strings.TrimSpace(s)
	for sev, name := range severityNames {
		if strings.EqualFold(name, needle) {
			return sev, nil
		}
	}
	return SeverityLow, fmt.Errorf("unknown severity %q", s)
}

// SeverityForFailure bands a failure percentage:
// >= 87.5 Critical, >= 75 High, >= 50 Medium, otherwise Low.
func SeverityForFailure(pct float64) Severity {
	switch {
	case pct >= 87.5:
		return SeverityCritical
	case pct >= 75:
		return SeverityHigh
	case pct >= 50:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ConsistentWithFailure reports whether s belongs to the tier that pct falls in.
// Critical and High share the >= 75% tier.
func (s Severity) ConsistentWithFailure(pct float64) bool {
	switch s {
	case SeverityCritical, SeverityHigh:
		return pct >= 75
	case SeverityMedium:
		return pct >= 50 && pct < 75
	case SeverityLow:
		return pct < 50
	default:
		return false
	}
}
