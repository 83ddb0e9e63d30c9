package domain

// FixOutcome records what happened when one remediation was attempted.
type FixOutcome struct {
	Check   CheckID
	Success bool
	Message string
	Error   string
}

type WorkflowState string

const (
	WorkflowScanned   WorkflowState = "SCANNED"
	WorkflowFixing    WorkflowState = "FIXING"
	WorkflowFixed     WorkflowState = "FIXED"
	WorkflowRescanned WorkflowState = "RESCANNED"
	WorkflowDone      WorkflowState = "DONE"
)

// FixSummary describes one diagnose, fix and re-verify run.
type FixSummary struct {
	Before   BucketReport
	After    *BucketReport
	Outcomes []FixOutcome
	States   []WorkflowState
}

func (s FixSummary) AfterScore() int {
	if s.After == nil {
		return s.Before.Score
	}
	return s.After.Score
}

func (s FixSummary) Improvement() int {
	return s.AfterScore() - s.Before.Score
}

func (s FixSummary) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Success {
			n++
		}
	}
	return n
}
