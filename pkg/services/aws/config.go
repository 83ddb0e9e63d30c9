package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

const (
	DefaultRegion = "us-east-1" // Default region if not specified in AWS profile
)

// LoadConfig resolves the SDK configuration and checks that credentials can be
// retrieved. Failures wrap domain.ErrProviderUnavailable.
func LoadConfig(ctx context.Context, profile, region string) (awssdk.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithDefaultRegion(DefaultRegion),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("%w: unable to load AWS SDK config: %w", domain.ErrProviderUnavailable, err)
	}

	// Test the credentials
	_, err = awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("%w: invalid AWS credentials for profile %q: %w",
			domain.ErrProviderUnavailable, profile, err)
	}

	return awsCfg, nil
}
