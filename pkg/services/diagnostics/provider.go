package diagnostics

import (
	"context"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

// FactProvider answers read-only questions about a bucket, one per concern.
// A nil error with a "not present" fact means the concern is not configured;
// a non-nil error means the query itself failed.
type FactProvider interface {
	DefaultRegion() string
	BucketRegion(ctx context.Context, bucket string) (string, error)
	BucketExistence(ctx context.Context, bucket string) (domain.ExistenceFacts, error)
	BucketPolicy(ctx context.Context, bucket string) (domain.PolicyFacts, error)
	PublicAccessBlock(ctx context.Context, bucket string) (domain.PublicAccessBlockFacts, error)
	BucketACL(ctx context.Context, bucket string) (domain.ACLFacts, error)
	BucketEncryption(ctx context.Context, bucket string) (domain.EncryptionFacts, error)
	BucketVersioning(ctx context.Context, bucket string) (domain.VersioningFacts, error)
	BucketLifecycle(ctx context.Context, bucket string) (domain.LifecycleFacts, error)
	BucketCORS(ctx context.Context, bucket string) (domain.CORSFacts, error)
	BucketLogging(ctx context.Context, bucket string) (domain.LoggingFacts, error)
	BucketReplication(ctx context.Context, bucket string) (domain.ReplicationFacts, error)
	ObjectLock(ctx context.Context, bucket string) (domain.ObjectLockFacts, error)
	TransferAcceleration(ctx context.Context, bucket string) (domain.AccelerationFacts, error)
	BucketTagging(ctx context.Context, bucket string) (domain.TaggingFacts, error)
	BucketSize(ctx context.Context, bucket string, maxKeys int) (domain.SizeFacts, error)
}
