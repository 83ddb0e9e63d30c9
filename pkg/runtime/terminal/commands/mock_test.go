package commands

import (
	"context"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/de-tools/bucket-doctor/pkg/services/doctor"
	"github.com/stretchr/testify/mock"
)

type mockDoctor struct {
	mock.Mock
}

func (m *mockDoctor) Diagnose(ctx context.Context, bucket string, opts doctor.DiagnoseOptions) (doctor.DiagnoseResult, error) {
	args := m.Called(ctx, bucket, opts)
	return args.Get(0).(doctor.DiagnoseResult), args.Error(1)
}

func (m *mockDoctor) Fix(ctx context.Context, bucket string, opts doctor.FixOptions) (doctor.FixResult, error) {
	args := m.Called(ctx, bucket, opts)
	return args.Get(0).(doctor.FixResult), args.Error(1)
}

func (m *mockDoctor) FixReport(
	ctx context.Context,
	before domain.BucketReport,
	opts doctor.FixOptions,
) (doctor.FixResult, error) {
	args := m.Called(ctx, before, opts)
	return args.Get(0).(doctor.FixResult), args.Error(1)
}

func (m *mockDoctor) ScanAll(ctx context.Context, opts doctor.ScanAllOptions) (domain.AccountSummary, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(domain.AccountSummary), args.Error(1)
}

func (m *mockDoctor) History(ctx context.Context, bucket string, limit int) (domain.BucketHistory, error) {
	args := m.Called(ctx, bucket, limit)
	return args.Get(0).(domain.BucketHistory), args.Error(1)
}

type mockClient struct {
	mock.Mock
}

func (m *mockClient) VerifyCredentials(ctx context.Context) (domain.CallerIdentity, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CallerIdentity), args.Error(1)
}

func (m *mockClient) ListBuckets(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockClient) EnableLogging(ctx context.Context, bucket, targetBucket, targetPrefix string) error {
	return m.Called(ctx, bucket, targetBucket, targetPrefix).Error(0)
}

type mockAdvisor struct {
	mock.Mock
}

func (m *mockAdvisor) Available() bool {
	return m.Called().Bool(0)
}

func (m *mockAdvisor) Troubleshoot(ctx context.Context, issue, bucket string, extra map[string]any) string {
	return m.Called(ctx, issue, bucket, extra).String(0)
}

func (m *mockAdvisor) GeneratePolicy(ctx context.Context, bucket, useCase string) string {
	return m.Called(ctx, bucket, useCase).String(0)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) GetProfiles(ctx context.Context) ([]domain.AWSProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AWSProfile), args.Error(1)
}
