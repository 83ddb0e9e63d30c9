package remediation

import (
	"context"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

type Scanner interface {
	RunAllChecks(ctx context.Context, bucket string) domain.BucketReport
}

// Workflow drives a scanned report through fixing and re-verification.
type Workflow struct {
	scanner    Scanner
	remediator Remediator
}

func NewWorkflow(scanner Scanner, remediator Remediator) *Workflow {
	return &Workflow{scanner: scanner, remediator: remediator}
}

// Run starts from an already scanned report. The bucket is re-scanned only
// when at least one fix was attempted.
func (w *Workflow) Run(ctx context.Context, before domain.BucketReport, opts Options) (domain.FixSummary, error) {
	summary := domain.FixSummary{
		Before:   before,
		Outcomes: []domain.FixOutcome{},
		States:   []domain.WorkflowState{domain.WorkflowScanned},
	}

	if len(w.remediator.Select(before)) == 0 {
		summary.States = append(summary.States, domain.WorkflowDone)
		return summary, nil
	}

	outcomes, err := w.remediator.RemediateAll(ctx, before, opts)
	if err != nil {
		summary.States = append(summary.States, domain.WorkflowDone)
		return summary, err
	}
	if len(outcomes) == 0 {
		summary.States = append(summary.States, domain.WorkflowDone)
		return summary, nil
	}

	summary.Outcomes = outcomes
	summary.States = append(summary.States, domain.WorkflowFixing, domain.WorkflowFixed)

	after := w.scanner.RunAllChecks(ctx, before.BucketName)
	summary.After = &after
	summary.States = append(summary.States, domain.WorkflowRescanned, domain.WorkflowDone)
	return summary, nil
}
