package doctor

import (
	"context"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/de-tools/bucket-doctor/pkg/models/store"
	"github.com/de-tools/bucket-doctor/pkg/services/remediation"
	"github.com/stretchr/testify/mock"
)

type mockAccount struct {
	mock.Mock
}

func (m *mockAccount) VerifyCredentials(ctx context.Context) (domain.CallerIdentity, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CallerIdentity), args.Error(1)
}

func (m *mockAccount) ListBuckets(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockEvaluator struct {
	mock.Mock
}

func (m *mockEvaluator) RunAllChecks(ctx context.Context, bucket string) domain.BucketReport {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.BucketReport)
}

type mockRemediator struct {
	mock.Mock
}

func (m *mockRemediator) Select(report domain.BucketReport) []domain.DiagnosticResult {
	args := m.Called(report)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.DiagnosticResult)
}

func (m *mockRemediator) RemediateAll(
	ctx context.Context,
	report domain.BucketReport,
	opts remediation.Options,
) ([]domain.FixOutcome, error) {
	args := m.Called(ctx, report, opts)
	return args.Get(0).([]domain.FixOutcome), args.Error(1)
}

type mockAdvisor struct {
	mock.Mock
}

func (m *mockAdvisor) Available() bool {
	return m.Called().Bool(0)
}

func (m *mockAdvisor) Analyze(ctx context.Context, report domain.BucketReport) domain.Advice {
	return m.Called(ctx, report).Get(0).(domain.Advice)
}

func (m *mockAdvisor) RemainingIssues(ctx context.Context, report domain.BucketReport) string {
	return m.Called(ctx, report).String(0)
}

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) Save(ctx context.Context, record store.ScanHistory) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockHistory) SaveAll(ctx context.Context, records []store.ScanHistory) error {
	return m.Called(ctx, records).Error(0)
}

func (m *mockHistory) List(ctx context.Context, bucket string, limit int) ([]store.ScanHistory, error) {
	args := m.Called(ctx, bucket, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ScanHistory), args.Error(1)
}
