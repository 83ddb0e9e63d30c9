package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func (c *Client) BlockPublicAccess(ctx context.Context, bucket string) error {
	_, err := c.forBucket(ctx, bucket).PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: awssdk.String(bucket),
		PublicAccessBlockConfiguration: &types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       awssdk.Bool(true),
			IgnorePublicAcls:      awssdk.Bool(true),
			BlockPublicPolicy:     awssdk.Bool(true),
			RestrictPublicBuckets: awssdk.Bool(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put public access block: %w", err)
	}
	return nil
}

func (c *Client) EnableEncryption(ctx context.Context, bucket, algorithm string) error {
	_, err := c.forBucket(ctx, bucket).PutBucketEncryption(ctx, &s3.PutBucketEncryptionInput{
		Bucket: awssdk.String(bucket),
		ServerSideEncryptionConfiguration: &types.ServerSideEncryptionConfiguration{
			Rules: []types.ServerSideEncryptionRule{
				{
					ApplyServerSideEncryptionByDefault: &types.ServerSideEncryptionByDefault{
						SSEAlgorithm: types.ServerSideEncryption(algorithm),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put bucket encryption: %w", err)
	}
	return nil
}

func (c *Client) EnableVersioning(ctx context.Context, bucket string) error {
	_, err := c.forBucket(ctx, bucket).PutBucketVersioning(ctx, &s3.PutBucketVersioningInput{
		Bucket: awssdk.String(bucket),
		VersioningConfiguration: &types.VersioningConfiguration{
			Status: types.BucketVersioningStatusEnabled,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put bucket versioning: %w", err)
	}
	return nil
}

// EnableLogging turns on server access logging. It is not part of the
// automated remediation set.
func (c *Client) EnableLogging(ctx context.Context, bucket, targetBucket, targetPrefix string) error {
	if targetPrefix == "" {
		targetPrefix = fmt.Sprintf("%s-logs/", bucket)
	}
	_, err := c.forBucket(ctx, bucket).PutBucketLogging(ctx, &s3.PutBucketLoggingInput{
		Bucket: awssdk.String(bucket),
		BucketLoggingStatus: &types.BucketLoggingStatus{
			LoggingEnabled: &types.LoggingEnabled{
				TargetBucket: awssdk.String(targetBucket),
				TargetPrefix: awssdk.String(targetPrefix),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put bucket logging: %w", err)
	}
	return nil
}
