package aws

import (
	"context"
	"fmt"
	"math"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

func (c *Client) BucketExistence(ctx context.Context, bucket string) (domain.ExistenceFacts, error) {
	_, err := c.forBucket(ctx, bucket).HeadBucket(ctx, &s3.HeadBucketInput{Bucket: awssdk.String(bucket)})
	switch {
	case err == nil:
		return domain.ExistenceFacts{Exists: true, Accessible: true, StatusCode: 200}, nil
	case isNotFound(err):
		return domain.ExistenceFacts{Exists: false, StatusCode: 404, Error: err.Error()}, nil
	case isForbidden(err):
		return domain.ExistenceFacts{Exists: true, Accessible: false, StatusCode: 403, Error: err.Error()}, nil
	default:
		return domain.ExistenceFacts{}, fmt.Errorf("failed to head bucket: %w", err)
	}
}

func (c *Client) BucketPolicy(ctx context.Context, bucket string) (domain.PolicyFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetBucketPolicy(ctx, &s3.GetBucketPolicyInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		if isAbsent(err) {
			return domain.PolicyFacts{Exists: false}, nil
		}
		return domain.PolicyFacts{}, fmt.Errorf("failed to get bucket policy: %w", err)
	}
	return domain.PolicyFacts{Exists: true, Document: awssdk.ToString(resp.Policy)}, nil
}

func (c *Client) PublicAccessBlock(ctx context.Context, bucket string) (domain.PublicAccessBlockFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		if isAbsent(err) {
			return domain.PublicAccessBlockFacts{Exists: false}, nil
		}
		return domain.PublicAccessBlockFacts{}, fmt.Errorf("failed to get public access block: %w", err)
	}

	cfg := resp.PublicAccessBlockConfiguration
	if cfg == nil {
		return domain.PublicAccessBlockFacts{Exists: false}, nil
	}
	return domain.PublicAccessBlockFacts{
		Exists:                true,
		BlockPublicAcls:       awssdk.ToBool(cfg.BlockPublicAcls),
		IgnorePublicAcls:      awssdk.ToBool(cfg.IgnorePublicAcls),
		BlockPublicPolicy:     awssdk.ToBool(cfg.BlockPublicPolicy),
		RestrictPublicBuckets: awssdk.ToBool(cfg.RestrictPublicBuckets),
	}, nil
}

func (c *Client) BucketACL(ctx context.Context, bucket string) (domain.ACLFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetBucketAcl(ctx, &s3.GetBucketAclInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		return domain.ACLFacts{}, fmt.Errorf("failed to get bucket acl: %w", err)
	}

	facts := domain.ACLFacts{Grants: make([]domain.ACLGrant, 0, len(resp.Grants))}
	if resp.Owner != nil {
		facts.Owner = awssdk.ToString(resp.Owner.ID)
	}
	for _, g := range resp.Grants {
		grant := domain.ACLGrant{Permission: string(g.Permission)}
		if g.Grantee != nil {
			grant.GranteeType = string(g.Grantee.Type)
			grant.URI = awssdk.ToString(g.Grantee.URI)
			grant.ID = awssdk.ToString(g.Grantee.ID)
			grant.DisplayName = awssdk.ToString(g.Grantee.DisplayName)
		}
		facts.Grants = append(facts.Grants, grant)
	}
	return facts, nil
}

func (c *Client) BucketEncryption(ctx context.Context, bucket string) (domain.EncryptionFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		if isAbsent(err) {
			return domain.EncryptionFacts{Enabled: false}, nil
		}
		return domain.EncryptionFacts{}, fmt.Errorf("failed to get bucket encryption: %w", err)
	}

	var rules []domain.EncryptionRule
	if resp.ServerSideEncryptionConfiguration != nil {
		for _, r := range resp.ServerSideEncryptionConfiguration.Rules {
			rule := domain.EncryptionRule{BucketKeyEnabled: awssdk.ToBool(r.BucketKeyEnabled)}
			if def := r.ApplyServerSideEncryptionByDefault; def != nil {
				rule.Algorithm = string(def.SSEAlgorithm)
				rule.KMSKeyID = awssdk.ToString(def.KMSMasterKeyID)
			}
			rules = append(rules, rule)
		}
	}
	return domain.EncryptionFacts{Enabled: len(rules) > 0, Rules: rules}, nil
}

func (c *Client) BucketVersioning(ctx context.Context, bucket string) (domain.VersioningFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		return domain.VersioningFacts{}, fmt.Errorf("failed to get bucket versioning: %w", err)
	}

	status := string(resp.Status)
	if status == "" {
		status = "Disabled"
	}
	mfa := string(resp.MFADelete)
	if mfa == "" {
		mfa = "Disabled"
	}
	return domain.VersioningFacts{Status: status, MFADelete: mfa}, nil
}

func (c *Client) BucketLifecycle(ctx context.Context, bucket string) (domain.LifecycleFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetBucketLifecycleConfiguration(ctx,
		&s3.GetBucketLifecycleConfigurationInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		if isAbsent(err) {
			return domain.LifecycleFacts{Exists: false}, nil
		}
		return domain.LifecycleFacts{}, fmt.Errorf("failed to get lifecycle configuration: %w", err)
	}

	facts := domain.LifecycleFacts{Exists: len(resp.Rules) > 0}
	for _, r := range resp.Rules {
		facts.Rules = append(facts.Rules, domain.LifecycleRule{
			ID:     awssdk.ToString(r.ID),
			Status: string(r.Status),
		})
	}
	return facts, nil
}

func (c *Client) BucketCORS(ctx context.Context, bucket string) (domain.CORSFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetBucketCors(ctx, &s3.GetBucketCorsInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		if isAbsent(err) {
			return domain.CORSFacts{Exists: false}, nil
		}
		return domain.CORSFacts{}, fmt.Errorf("failed to get cors configuration: %w", err)
	}

	facts := domain.CORSFacts{Exists: len(resp.CORSRules) > 0}
	for _, r := range resp.CORSRules {
		facts.Rules = append(facts.Rules, domain.CORSRule{
			AllowedOrigins: r.AllowedOrigins,
			AllowedMethods: r.AllowedMethods,
			AllowedHeaders: r.AllowedHeaders,
			MaxAgeSeconds:  awssdk.ToInt32(r.MaxAgeSeconds),
		})
	}
	return facts, nil
}

func (c *Client) BucketLogging(ctx context.Context, bucket string) (domain.LoggingFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetBucketLogging(ctx, &s3.GetBucketLoggingInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		return domain.LoggingFacts{}, fmt.Errorf("failed to get bucket logging: %w", err)
	}
	if resp.LoggingEnabled == nil {
		return domain.LoggingFacts{Enabled: false}, nil
	}
	return domain.LoggingFacts{
		Enabled:      true,
		TargetBucket: awssdk.ToString(resp.LoggingEnabled.TargetBucket),
		TargetPrefix: awssdk.ToString(resp.LoggingEnabled.TargetPrefix),
	}, nil
}

func (c *Client) BucketReplication(ctx context.Context, bucket string) (domain.ReplicationFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetBucketReplication(ctx, &s3.GetBucketReplicationInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		if isAbsent(err) {
			return domain.ReplicationFacts{Enabled: false}, nil
		}
		return domain.ReplicationFacts{}, fmt.Errorf("failed to get replication configuration: %w", err)
	}
	if resp.ReplicationConfiguration == nil {
		return domain.ReplicationFacts{Enabled: false}, nil
	}
	return domain.ReplicationFacts{
		Enabled: true,
		Role:    awssdk.ToString(resp.ReplicationConfiguration.Role),
		Rules:   len(resp.ReplicationConfiguration.Rules),
	}, nil
}

func (c *Client) ObjectLock(ctx context.Context, bucket string) (domain.ObjectLockFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetObjectLockConfiguration(ctx,
		&s3.GetObjectLockConfigurationInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		if isAbsent(err) {
			return domain.ObjectLockFacts{Enabled: false}, nil
		}
		return domain.ObjectLockFacts{}, fmt.Errorf("failed to get object lock configuration: %w", err)
	}

	cfg := resp.ObjectLockConfiguration
	if cfg == nil || cfg.ObjectLockEnabled != types.ObjectLockEnabledEnabled {
		return domain.ObjectLockFacts{Enabled: false}, nil
	}
	facts := domain.ObjectLockFacts{Enabled: true}
	if cfg.Rule != nil && cfg.Rule.DefaultRetention != nil {
		facts.RetentionMode = string(cfg.Rule.DefaultRetention.Mode)
		facts.Days = awssdk.ToInt32(cfg.Rule.DefaultRetention.Days)
		facts.Years = awssdk.ToInt32(cfg.Rule.DefaultRetention.Years)
	}
	return facts, nil
}

func (c *Client) TransferAcceleration(ctx context.Context, bucket string) (domain.AccelerationFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetBucketAccelerateConfiguration(ctx,
		&s3.GetBucketAccelerateConfigurationInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		return domain.AccelerationFacts{}, fmt.Errorf("failed to get accelerate configuration: %w", err)
	}
	status := string(resp.Status)
	if status == "" {
		status = "Not configured"
	}
	return domain.AccelerationFacts{Status: status}, nil
}

func (c *Client) BucketTagging(ctx context.Context, bucket string) (domain.TaggingFacts, error) {
	resp, err := c.forBucket(ctx, bucket).GetBucketTagging(ctx, &s3.GetBucketTaggingInput{Bucket: awssdk.String(bucket)})
	if err != nil {
		if isAbsent(err) {
			return domain.TaggingFacts{Tags: map[string]string{}}, nil
		}
		return domain.TaggingFacts{}, fmt.Errorf("failed to get bucket tagging: %w", err)
	}

	tags := make(map[string]string, len(resp.TagSet))
	for _, tag := range resp.TagSet {
		tags[awssdk.ToString(tag.Key)] = awssdk.ToString(tag.Value)
	}
	return domain.TaggingFacts{Tags: tags}, nil
}

// BucketSize walks at most maxKeys objects; larger buckets are reported as sampled.
func (c *Client) BucketSize(ctx context.Context, bucket string, maxKeys int) (domain.SizeFacts, error) {
	client := c.forBucket(ctx, bucket)

	var totalSize int64
	var objectCount int64
	var continuationToken *string

	for objectCount < int64(maxKeys) {
		page := int32(min(int64(maxKeys)-objectCount, 1000))
		objResp, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            awssdk.String(bucket),
			ContinuationToken: continuationToken,
			MaxKeys:           awssdk.Int32(page),
		})
		if err != nil {
			return domain.SizeFacts{}, fmt.Errorf("failed to list objects: %w", err)
		}

		for _, obj := range objResp.Contents {
			totalSize += awssdk.ToInt64(obj.Size)
			objectCount++
		}

		if !awssdk.ToBool(objResp.IsTruncated) {
			break
		}
		continuationToken = objResp.NextContinuationToken
	}

	return domain.SizeFacts{
		ObjectCount:    objectCount,
		TotalSizeBytes: totalSize,
		TotalSizeMB:    math.Round(float64(totalSize)/(1024*1024)*100) / 100,
		Sampled:        objectCount >= int64(maxKeys),
	}, nil
}
