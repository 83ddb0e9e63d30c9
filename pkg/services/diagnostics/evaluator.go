package diagnostics

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/de-tools/bucket-doctor/pkg/services/scoring"
	"github.com/rs/zerolog"
)

const (
	DefaultCheckTimeout   = 30 * time.Second
	DefaultSizeSampleKeys = 1000
)

// Observer is notified as checks progress. Implementations must be cheap.
type Observer interface {
	CheckStarted(id domain.CheckID, index, total int)
	CheckFinished(result domain.DiagnosticResult)
}

type Options struct {
	CheckTimeout   time.Duration
	SizeSampleKeys int
	Observer       Observer
}

type Evaluator interface {
	RunAllChecks(ctx context.Context, bucket string) domain.BucketReport
}

type evaluator struct {
	provider FactProvider
	opts     Options
	now      func() time.Time
}

func NewEvaluator(provider FactProvider, opts Options) Evaluator {
	if opts.CheckTimeout <= 0 {
		opts.CheckTimeout = DefaultCheckTimeout
	}
	if opts.SizeSampleKeys <= 0 {
		opts.SizeSampleKeys = DefaultSizeSampleKeys
	}
	return &evaluator{
		provider: provider,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RunAllChecks produces exactly one result per catalog entry, in catalog order.
func (e *evaluator) RunAllChecks(ctx context.Context, bucket string) domain.BucketReport {
	logger := zerolog.Ctx(ctx).With().Str("bucket", bucket).Logger()

	report := domain.BucketReport{
		BucketName: bucket,
		Region:     e.region(ctx, bucket),
		ScanStart:  e.now(),
		Results:    make([]domain.DiagnosticResult, 0, len(catalog)),
	}

	for i, entry := range catalog {
		if e.opts.Observer != nil {
			e.opts.Observer.CheckStarted(entry.id, i, len(catalog))
		}

		started := time.Now()
		res := e.runCheck(ctx, entry, bucket)
		res.Timestamp = e.now()

		event := logger.Debug()
		if res.Status == domain.StatusError {
			event = logger.Warn()
		}
		event.Str("check", entry.id.Name()).
			Str("status", string(res.Status)).
			Dur("elapsed", time.Since(started)).
			Msg("check completed")

		report.Results = append(report.Results, res)
		if e.opts.Observer != nil {
			e.opts.Observer.CheckFinished(res)
		}
	}

	report.ScanEnd = e.now()
	report.Score, report.Health = scoring.CalculateScore(report.Results)
	return report
}

func (e *evaluator) region(ctx context.Context, bucket string) string {
	ctx, cancel := context.WithTimeout(ctx, e.opts.CheckTimeout)
	defer cancel()

	region, err := e.provider.BucketRegion(ctx, bucket)
	if err != nil || region == "" {
		zerolog.Ctx(ctx).Debug().Err(err).Str("bucket", bucket).Msg("falling back to default region")
		return e.provider.DefaultRegion()
	}
	return region
}

// runCheck isolates one check: a panic or an expired deadline becomes an
// ERROR result instead of aborting the scan.
func (e *evaluator) runCheck(ctx context.Context, entry catalogEntry, bucket string) domain.DiagnosticResult {
	ctx, cancel := context.WithTimeout(ctx, e.opts.CheckTimeout)
	defer cancel()

	done := make(chan domain.DiagnosticResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- checkFailed(entry.id, fmt.Errorf("%v", r))
			}
		}()
		done <- entry.run(ctx, e.provider, bucket, e.opts)
	}()

	select {
	case res := <-done:
		res.Check = entry.id
		res.AutoFixable = res.AutoFixable && entry.id.Remediable()
		return res
	case <-ctx.Done():
		return checkFailed(entry.id, ctx.Err())
	}
}

func checkFailed(id domain.CheckID, err error) domain.DiagnosticResult {
	return domain.DiagnosticResult{
		Check:    id,
		Status:   domain.StatusError,
		Severity: domain.SeverityMedium,
		Message:  fmt.Sprintf("Check failed with error: %v", err),
		Details:  domain.QueryFailure{Error: err.Error()},
	}
}
