package doctor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/de-tools/bucket-doctor/pkg/adapters"
	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/de-tools/bucket-doctor/pkg/models/store"
	"github.com/de-tools/bucket-doctor/pkg/services/diagnostics"
	"github.com/de-tools/bucket-doctor/pkg/services/remediation"
	"github.com/de-tools/bucket-doctor/pkg/store/duckdb/history"
	"github.com/rs/zerolog"
)

var ErrHistoryDisabled = errors.New("scan history is disabled")

// Account is the account-level part of the fact provider.
type Account interface {
	VerifyCredentials(ctx context.Context) (domain.CallerIdentity, error)
	ListBuckets(ctx context.Context) ([]string, error)
}

type Advisor interface {
	Available() bool
	Analyze(ctx context.Context, report domain.BucketReport) domain.Advice
	RemainingIssues(ctx context.Context, report domain.BucketReport) string
}

type DiagnoseOptions struct {
	WithAI bool
}

type DiagnoseResult struct {
	Report domain.BucketReport
	// Advice is nil unless WithAI was requested.
	Advice *domain.Advice
}

type FixOptions struct {
	remediation.Options
	WithAI bool
}

type FixResult struct {
	Summary domain.FixSummary
	// Recommendations covers the issues left after the rescan.
	Recommendations string
}

type ScanAllOptions struct {
	OnBucket func(bucket string, index, total int)
}

type Service interface {
	Diagnose(ctx context.Context, bucket string, opts DiagnoseOptions) (DiagnoseResult, error)
	Fix(ctx context.Context, bucket string, opts FixOptions) (FixResult, error)
	FixReport(ctx context.Context, before domain.BucketReport, opts FixOptions) (FixResult, error)
	ScanAll(ctx context.Context, opts ScanAllOptions) (domain.AccountSummary, error)
	History(ctx context.Context, bucket string, limit int) (domain.BucketHistory, error)
}

type Dependencies struct {
	Account    Account
	Evaluator  diagnostics.Evaluator
	Remediator remediation.Remediator
	Advisor    Advisor
	// History is optional.
	History history.Store
}

type service struct {
	account   Account
	evaluator diagnostics.Evaluator
	workflow  *remediation.Workflow
	advisor   Advisor
	history   history.Store
}

func NewService(deps Dependencies) (Service, error) {
	if deps.Account == nil {
		return nil, fmt.Errorf("account is required")
	}
	if deps.Evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	if deps.Remediator == nil {
		return nil, fmt.Errorf("remediator is required")
	}
	return &service{
		account:   deps.Account,
		evaluator: deps.Evaluator,
		workflow:  remediation.NewWorkflow(deps.Evaluator, deps.Remediator),
		advisor:   deps.Advisor,
		history:   deps.History,
	}, nil
}

func (s *service) Diagnose(ctx context.Context, bucket string, opts DiagnoseOptions) (DiagnoseResult, error) {
	if bucket == "" {
		return DiagnoseResult{}, domain.ErrBucketNameRequired
	}
	if _, err := s.account.VerifyCredentials(ctx); err != nil {
		return DiagnoseResult{}, err
	}

	report := s.evaluator.RunAllChecks(ctx, bucket)
	result := DiagnoseResult{Report: report}

	if opts.WithAI {
		advice := s.analyze(ctx, report)
		result.Advice = &advice
		result.Report.AIAnalysis = advice.Analysis
		result.Report.AISummary = advice.Summary
	}

	s.record(ctx, result.Report)
	return result, nil
}

func (s *service) Fix(ctx context.Context, bucket string, opts FixOptions) (FixResult, error) {
	if bucket == "" {
		return FixResult{}, domain.ErrBucketNameRequired
	}
	if _, err := s.account.VerifyCredentials(ctx); err != nil {
		return FixResult{}, err
	}
	before := s.evaluator.RunAllChecks(ctx, bucket)
	s.record(ctx, before)
	return s.FixReport(ctx, before, opts)
}

// FixReport remediates starting from an existing scan. Only the rescan is
// recorded in history.
func (s *service) FixReport(ctx context.Context, before domain.BucketReport, opts FixOptions) (FixResult, error) {
	logger := zerolog.Ctx(ctx).With().Str("bucket", before.BucketName).Logger()

	summary, err := s.workflow.Run(ctx, before, opts.Options)
	if err != nil {
		return FixResult{Summary: summary}, err
	}

	result := FixResult{Summary: summary}
	if summary.After == nil {
		return result, nil
	}

	logger.Info().
		Int("before", summary.Before.Score).
		Int("after", summary.AfterScore()).
		Int("fixed", summary.Succeeded()).
		Msg("remediation finished")
	s.record(ctx, *summary.After)

	if opts.WithAI && s.advisorAvailable() {
		result.Recommendations = s.advisor.RemainingIssues(ctx, *summary.After)
	}
	return result, nil
}

// ScanAll scans every bucket in turn. Rows are ordered by ascending score so
// the worst buckets come first.
func (s *service) ScanAll(ctx context.Context, opts ScanAllOptions) (domain.AccountSummary, error) {
	logger := zerolog.Ctx(ctx)

	if _, err := s.account.VerifyCredentials(ctx); err != nil {
		return domain.AccountSummary{}, err
	}
	buckets, err := s.account.ListBuckets(ctx)
	if err != nil {
		return domain.AccountSummary{}, fmt.Errorf("failed to list buckets: %w", err)
	}

	summary := domain.AccountSummary{Buckets: make([]domain.BucketSummary, 0, len(buckets))}
	reports := make([]domain.BucketReport, 0, len(buckets))
	total := 0

	for i, bucket := range buckets {
		if opts.OnBucket != nil {
			opts.OnBucket(bucket, i, len(buckets))
		}
		if err := ctx.Err(); err != nil {
			summary.Buckets = append(summary.Buckets, domain.BucketSummary{
				Bucket: bucket,
				Health: domain.HealthError,
				Error:  err.Error(),
			})
			continue
		}

		report := s.evaluator.RunAllChecks(ctx, bucket)
		reports = append(reports, report)
		total += report.Score
		summary.Buckets = append(summary.Buckets, domain.BucketSummary{
			Bucket: bucket,
			Region: report.Region,
			Score:  report.Score,
			Health: report.Health,
			Counts: report.Counts(),
		})
	}

	sort.SliceStable(summary.Buckets, func(i, j int) bool {
		return summary.Buckets[i].Score < summary.Buckets[j].Score
	})
	if len(summary.Buckets) > 0 {
		summary.AverageScore = total / len(summary.Buckets)
	}

	if s.history != nil {
		rows := make([]store.ScanHistory, 0, len(reports))
		for _, r := range reports {
			row, err := adapters.MapBucketReportDomainToStore(r)
			if err != nil {
				logger.Warn().Err(err).Str("bucket", r.BucketName).Msg("failed to encode scan history")
				continue
			}
			rows = append(rows, row)
		}
		if err := s.history.SaveAll(ctx, rows); err != nil {
			logger.Warn().Err(err).Msg("failed to record scan history")
		}
	}

	return summary, nil
}

func (s *service) History(ctx context.Context, bucket string, limit int) (domain.BucketHistory, error) {
	if s.history == nil {
		return domain.BucketHistory{}, ErrHistoryDisabled
	}
	if bucket == "" {
		return domain.BucketHistory{}, domain.ErrBucketNameRequired
	}

	rows, err := s.history.List(ctx, bucket, limit)
	if err != nil {
		return domain.BucketHistory{}, fmt.Errorf("failed to load history for %s: %w", bucket, err)
	}

	h := domain.BucketHistory{
		Bucket:  bucket,
		Records: make([]domain.ScanRecord, 0, len(rows)),
		Trend:   domain.TrendNew,
	}
	for _, row := range rows {
		h.Records = append(h.Records, adapters.MapScanHistoryStoreToDomain(row))
	}
	if len(h.Records) >= 2 {
		h.Delta = h.Records[0].Score - h.Records[1].Score
		switch {
		case h.Delta > 0:
			h.Trend = domain.TrendImproving
		case h.Delta < 0:
			h.Trend = domain.TrendDegrading
		default:
			h.Trend = domain.TrendStable
		}
	}
	return h, nil
}

func (s *service) advisorAvailable() bool {
	return s.advisor != nil && s.advisor.Available()
}

func (s *service) analyze(ctx context.Context, report domain.BucketReport) domain.Advice {
	if !s.advisorAvailable() {
		return domain.UnavailableAdvice()
	}
	return s.advisor.Analyze(ctx, report)
}

// record never fails the caller.
func (s *service) record(ctx context.Context, report domain.BucketReport) {
	if s.history == nil {
		return
	}
	logger := zerolog.Ctx(ctx)

	row, err := adapters.MapBucketReportDomainToStore(report)
	if err != nil {
		logger.Warn().Err(err).Str("bucket", report.BucketName).Msg("failed to encode scan history")
		return
	}
	if err := s.history.Save(ctx, row); err != nil {
		logger.Warn().Err(err).Str("bucket", report.BucketName).Msg("failed to record scan history")
	}
}
