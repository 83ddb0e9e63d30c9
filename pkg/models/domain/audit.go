package domain

import (
	"fmt"
	"strings"
	"time"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityInfo:     "INFO",
	SeverityLow:      "LOW",
	SeverityMedium:   "MEDIUM",
	SeverityHigh:     "HIGH",
	SeverityCritical: "CRITICAL",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Multiplier is the weight a result of this severity carries in the score.
func (s Severity) Multiplier() float64 {
	switch s {
	case SeverityCritical:
		return 3.0
	case SeverityHigh:
		return 2.5
	case SeverityMedium:
		return 2.0
	case SeverityLow:
		return 1.5
	default:
		return 1.0
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func ParseSeverity(value string) (Severity, error) {
	for s, name := range severityNames {
		if strings.EqualFold(name, value) {
			return s, nil
		}
	}
	return SeverityInfo, fmt.Errorf("unknown severity %q", value)
}

type CheckStatus string

const (
	StatusPass    CheckStatus = "PASS"
	StatusWarning CheckStatus = "WARNING"
	StatusFail    CheckStatus = "FAIL"
	StatusError   CheckStatus = "ERROR"
	StatusInfo    CheckStatus = "INFO"
	StatusSkipped CheckStatus = "SKIPPED"
)

// IsIssue reports whether the status needs attention from an operator.
func (s CheckStatus) IsIssue() bool {
	return s == StatusFail || s == StatusWarning || s == StatusError
}

// DiagnosticResult is the outcome of one check against one bucket.
type DiagnosticResult struct {
	Check          CheckID
	Status         CheckStatus
	Severity       Severity
	Message        string
	Details        Facts
	Recommendation string
	AutoFixable    bool
	FixDescription string
	Timestamp      time.Time
}

func (r DiagnosticResult) CheckName() string {
	return r.Check.Name()
}

// Fixable reports whether the result is eligible for automated remediation.
func (r DiagnosticResult) Fixable() bool {
	return r.AutoFixable && (r.Status == StatusFail || r.Status == StatusWarning)
}
