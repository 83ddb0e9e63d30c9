package aws

import (
	"context"
	"fmt"
	"sort"
	"sync"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

// S3API is the subset of the S3 client the provider relies on.
type S3API interface {
	ListBuckets(ctx context.Context, in *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	GetBucketLocation(ctx context.Context, in *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	GetBucketPolicy(ctx context.Context, in *s3.GetBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.GetBucketPolicyOutput, error)
	GetPublicAccessBlock(ctx context.Context, in *s3.GetPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.GetPublicAccessBlockOutput, error)
	GetBucketAcl(ctx context.Context, in *s3.GetBucketAclInput, optFns ...func(*s3.Options)) (*s3.GetBucketAclOutput, error)
	GetBucketEncryption(ctx context.Context, in *s3.GetBucketEncryptionInput, optFns ...func(*s3.Options)) (*s3.GetBucketEncryptionOutput, error)
	GetBucketVersioning(ctx context.Context, in *s3.GetBucketVersioningInput, optFns ...func(*s3.Options)) (*s3.GetBucketVersioningOutput, error)
	GetBucketLifecycleConfiguration(ctx context.Context, in *s3.GetBucketLifecycleConfigurationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLifecycleConfigurationOutput, error)
	GetBucketCors(ctx context.Context, in *s3.GetBucketCorsInput, optFns ...func(*s3.Options)) (*s3.GetBucketCorsOutput, error)
	GetBucketLogging(ctx context.Context, in *s3.GetBucketLoggingInput, optFns ...func(*s3.Options)) (*s3.GetBucketLoggingOutput, error)
	GetBucketReplication(ctx context.Context, in *s3.GetBucketReplicationInput, optFns ...func(*s3.Options)) (*s3.GetBucketReplicationOutput, error)
	GetObjectLockConfiguration(ctx context.Context, in *s3.GetObjectLockConfigurationInput, optFns ...func(*s3.Options)) (*s3.GetObjectLockConfigurationOutput, error)
	GetBucketAccelerateConfiguration(ctx context.Context, in *s3.GetBucketAccelerateConfigurationInput, optFns ...func(*s3.Options)) (*s3.GetBucketAccelerateConfigurationOutput, error)
	GetBucketTagging(ctx context.Context, in *s3.GetBucketTaggingInput, optFns ...func(*s3.Options)) (*s3.GetBucketTaggingOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	PutPublicAccessBlock(ctx context.Context, in *s3.PutPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error)
	PutBucketEncryption(ctx context.Context, in *s3.PutBucketEncryptionInput, optFns ...func(*s3.Options)) (*s3.PutBucketEncryptionOutput, error)
	PutBucketVersioning(ctx context.Context, in *s3.PutBucketVersioningInput, optFns ...func(*s3.Options)) (*s3.PutBucketVersioningOutput, error)
	PutBucketLogging(ctx context.Context, in *s3.PutBucketLoggingInput, optFns ...func(*s3.Options)) (*s3.PutBucketLoggingOutput, error)
}

type STSAPI interface {
	GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Client implements the bucket fact queries and fixes on top of S3. Calls
// for a bucket are routed to a client in the bucket's own region.
type Client struct {
	defaultRegion string
	global        S3API
	sts           STSAPI
	newRegional   func(region string) S3API

	mu       sync.Mutex
	regional map[string]S3API
	regions  map[string]string
}

func NewClient(cfg awssdk.Config) *Client {
	return newClient(
		cfg.Region,
		s3.NewFromConfig(cfg),
		sts.NewFromConfig(cfg),
		func(region string) S3API {
			return s3.NewFromConfig(cfg, func(o *s3.Options) { o.Region = region })
		},
	)
}

func newClient(defaultRegion string, global S3API, stsClient STSAPI, newRegional func(string) S3API) *Client {
	if defaultRegion == "" {
		defaultRegion = DefaultRegion
	}
	return &Client{
		defaultRegion: defaultRegion,
		global:        global,
		sts:           stsClient,
		newRegional:   newRegional,
		regional:      map[string]S3API{},
		regions:       map[string]string{},
	}
}

func (c *Client) DefaultRegion() string {
	return c.defaultRegion
}

// VerifyCredentials resolves the caller identity. A failure means no check can
// run, so it wraps domain.ErrProviderUnavailable.
func (c *Client) VerifyCredentials(ctx context.Context) (domain.CallerIdentity, error) {
	out, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return domain.CallerIdentity{}, fmt.Errorf("%w: failed to verify AWS credentials: %w",
			domain.ErrProviderUnavailable, err)
	}
	return domain.CallerIdentity{
		Account: awssdk.ToString(out.Account),
		ARN:     awssdk.ToString(out.Arn),
		UserID:  awssdk.ToString(out.UserId),
	}, nil
}

func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	resp, err := c.global.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list S3 buckets: %w", err)
	}

	names := make([]string, 0, len(resp.Buckets))
	for _, bucket := range resp.Buckets {
		names = append(names, awssdk.ToString(bucket.Name))
	}
	sort.Strings(names)
	return names, nil
}

func (c *Client) BucketRegion(ctx context.Context, bucket string) (string, error) {
	c.mu.Lock()
	region, ok := c.regions[bucket]
	c.mu.Unlock()
	if ok {
		return region, nil
	}

	locResp, err := c.global.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: awssdk.String(bucket),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get bucket location: %w", err)
	}
	region = string(locResp.LocationConstraint)
	if region == "" {
		region = DefaultRegion
	}

	c.mu.Lock()
	c.regions[bucket] = region
	c.mu.Unlock()
	return region, nil
}

// forBucket returns a client bound to the bucket's region, falling back to the
// default client when the region cannot be resolved.
func (c *Client) forBucket(ctx context.Context, bucket string) S3API {
	region, err := c.BucketRegion(ctx, bucket)
	if err != nil || region == c.defaultRegion || c.newRegional == nil {
		return c.global
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	client, ok := c.regional[region]
	if !ok {
		client = c.newRegional(region)
		c.regional[region] = client
	}
	return client
}
