package diagnostics

import (
	"context"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/stretchr/testify/mock"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) DefaultRegion() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockProvider) BucketRegion(ctx context.Context, bucket string) (string, error) {
	args := m.Called(ctx, bucket)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) BucketExistence(ctx context.Context, bucket string) (domain.ExistenceFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.ExistenceFacts), args.Error(1)
}

func (m *mockProvider) BucketPolicy(ctx context.Context, bucket string) (domain.PolicyFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.PolicyFacts), args.Error(1)
}

func (m *mockProvider) PublicAccessBlock(ctx context.Context, bucket string) (domain.PublicAccessBlockFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.PublicAccessBlockFacts), args.Error(1)
}

func (m *mockProvider) BucketACL(ctx context.Context, bucket string) (domain.ACLFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.ACLFacts), args.Error(1)
}

func (m *mockProvider) BucketEncryption(ctx context.Context, bucket string) (domain.EncryptionFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.EncryptionFacts), args.Error(1)
}

func (m *mockProvider) BucketVersioning(ctx context.Context, bucket string) (domain.VersioningFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.VersioningFacts), args.Error(1)
}

func (m *mockProvider) BucketLifecycle(ctx context.Context, bucket string) (domain.LifecycleFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.LifecycleFacts), args.Error(1)
}

func (m *mockProvider) BucketCORS(ctx context.Context, bucket string) (domain.CORSFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.CORSFacts), args.Error(1)
}

func (m *mockProvider) BucketLogging(ctx context.Context, bucket string) (domain.LoggingFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.LoggingFacts), args.Error(1)
}

func (m *mockProvider) BucketReplication(ctx context.Context, bucket string) (domain.ReplicationFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.ReplicationFacts), args.Error(1)
}

func (m *mockProvider) ObjectLock(ctx context.Context, bucket string) (domain.ObjectLockFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.ObjectLockFacts), args.Error(1)
}

func (m *mockProvider) TransferAcceleration(ctx context.Context, bucket string) (domain.AccelerationFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.AccelerationFacts), args.Error(1)
}

func (m *mockProvider) BucketTagging(ctx context.Context, bucket string) (domain.TaggingFacts, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(domain.TaggingFacts), args.Error(1)
}

func (m *mockProvider) BucketSize(ctx context.Context, bucket string, maxKeys int) (domain.SizeFacts, error) {
	args := m.Called(ctx, bucket, maxKeys)
	return args.Get(0).(domain.SizeFacts), args.Error(1)
}

// healthyBucket wires every concern to a well-configured bucket. Calls that a
// test sets up beforehand take precedence.
func healthyBucket(m *mockProvider, bucket string) {
	anyArg := mock.Anything
	m.On("DefaultRegion").Return("us-east-1").Maybe()
	m.On("BucketRegion", anyArg, bucket).Return("eu-west-1", nil).Maybe()
	m.On("BucketExistence", anyArg, bucket).Return(domain.ExistenceFacts{Exists: true, Accessible: true}, nil).Maybe()
	m.On("BucketPolicy", anyArg, bucket).Return(domain.PolicyFacts{
		Exists:   true,
		Document: `{"Statement":[{"Effect":"Allow","Principal":{"AWS":"arn:aws:iam::123456789012:root"},"Action":"s3:GetObject"}]}`,
	}, nil).Maybe()
	m.On("PublicAccessBlock", anyArg, bucket).Return(domain.PublicAccessBlockFacts{
		Exists: true, BlockPublicAcls: true, IgnorePublicAcls: true, BlockPublicPolicy: true, RestrictPublicBuckets: true,
	}, nil).Maybe()
	m.On("BucketACL", anyArg, bucket).Return(domain.ACLFacts{
		Grants: []domain.ACLGrant{{GranteeType: "CanonicalUser", ID: "owner", Permission: "FULL_CONTROL"}},
	}, nil).Maybe()
	m.On("BucketEncryption", anyArg, bucket).Return(domain.EncryptionFacts{
		Enabled: true, Rules: []domain.EncryptionRule{{Algorithm: "AES256"}},
	}, nil).Maybe()
	m.On("BucketVersioning", anyArg, bucket).Return(domain.VersioningFacts{Status: "Enabled"}, nil).Maybe()
	m.On("BucketLifecycle", anyArg, bucket).Return(domain.LifecycleFacts{
		Exists: true, Rules: []domain.LifecycleRule{{ID: "expire", Status: "Enabled"}},
	}, nil).Maybe()
	m.On("BucketCORS", anyArg, bucket).Return(domain.CORSFacts{}, nil).Maybe()
	m.On("BucketLogging", anyArg, bucket).Return(domain.LoggingFacts{Enabled: true, TargetBucket: "logs"}, nil).Maybe()
	m.On("BucketReplication", anyArg, bucket).Return(domain.ReplicationFacts{Enabled: true, Rules: 1}, nil).Maybe()
	m.On("ObjectLock", anyArg, bucket).Return(domain.ObjectLockFacts{Enabled: true}, nil).Maybe()
	m.On("TransferAcceleration", anyArg, bucket).Return(domain.AccelerationFacts{Status: "Suspended"}, nil).Maybe()
	m.On("BucketTagging", anyArg, bucket).Return(domain.TaggingFacts{Tags: map[string]string{
		"Environment": "prod", "Project": "atlas", "Owner": "data", "CostCenter": "42",
	}}, nil).Maybe()
	m.On("BucketSize", anyArg, bucket, anyArg).Return(domain.SizeFacts{ObjectCount: 10, TotalSizeBytes: 2048, TotalSizeMB: 0}, nil).Maybe()
}
