package domain

import "time"

type Health string

const (
	HealthHealthy        Health = "HEALTHY"
	HealthGood           Health = "GOOD"
	HealthNeedsAttention Health = "NEEDS_ATTENTION"
	HealthUnhealthy      Health = "UNHEALTHY"
	HealthCritical       Health = "CRITICAL"
	HealthUnknown        Health = "UNKNOWN"
	// HealthError marks a bucket whose scan could not complete.
	HealthError Health = "ERROR"
)

// BucketReport is the snapshot of one scan. Results are kept in catalog order.
type BucketReport struct {
	BucketName string
	Region     string
	ScanStart  time.Time
	ScanEnd    time.Time
	Results    []DiagnosticResult
	Score      int
	Health     Health
	AIAnalysis string
	AISummary  string
}

type ReportCounts struct {
	Total    int
	Passed   int
	Failed   int
	Warnings int
	Errors   int
}

func (r BucketReport) Counts() ReportCounts {
	counts := ReportCounts{Total: len(r.Results)}
	for _, res := range r.Results {
		switch res.Status {
		case StatusPass:
			counts.Passed++
		case StatusFail:
			counts.Failed++
		case StatusWarning:
			counts.Warnings++
		case StatusError:
			counts.Errors++
		}
	}
	return counts
}

// Issues returns the results that need attention, in catalog order.
func (r BucketReport) Issues() []DiagnosticResult {
	var issues []DiagnosticResult
	for _, res := range r.Results {
		if res.Status.IsIssue() {
			issues = append(issues, res)
		}
	}
	return issues
}

func (r BucketReport) Result(id CheckID) (DiagnosticResult, bool) {
	for _, res := range r.Results {
		if res.Check == id {
			return res, true
		}
	}
	return DiagnosticResult{}, false
}

func (r BucketReport) Duration() time.Duration {
	return r.ScanEnd.Sub(r.ScanStart)
}
