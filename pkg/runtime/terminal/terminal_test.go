package terminal

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/commands"
	"github.com/de-tools/bucket-doctor/pkg/services/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBucketClient struct {
	mock.Mock
}

func (m *mockBucketClient) VerifyCredentials(ctx context.Context) (domain.CallerIdentity, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CallerIdentity), args.Error(1)
}

func (m *mockBucketClient) ListBuckets(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockBucketClient) EnableLogging(ctx context.Context, bucket, targetBucket, targetPrefix string) error {
	return m.Called(ctx, bucket, targetBucket, targetPrefix).Error(0)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

type profileList []domain.AWSProfile

func (p profileList) GetProfiles(context.Context) ([]domain.AWSProfile, error) {
	return p, nil
}

func TestCLI_ConnectsLazilyWithFlagOverrides(t *testing.T) {
	// Given
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "bucket-doctor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reporting:\n  output_dir: /tmp/reports\n"), 0o600))

	client := new(mockBucketClient)
	client.On("VerifyCredentials", mock.Anything).Return(domain.CallerIdentity{Account: "123"}, nil)
	client.On("ListBuckets", mock.Anything).Return([]string{"assets"}, nil)

	var got *config.Config
	closed := 0
	connect := func(_ context.Context, cfg *config.Config) (*commands.Environment, io.Closer, error) {
		got = cfg
		return &commands.Environment{Client: client, OutputDir: cfg.Reporting.OutputDir},
			closerFunc(func() error { closed++; return nil }), nil
	}

	var out bytes.Buffer
	cli := NewCLI(Options{Connector: connect, Output: &out})
	cli.SetArgs([]string{"list-buckets", "--config", path, "--region", "eu-west-1", "--profile", "prod"})

	// When
	err := cli.Execute(context.Background())

	// Then
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "eu-west-1", got.AWS.Region)
	assert.Equal(t, "prod", got.AWS.Profile)
	assert.Equal(t, "/tmp/reports", got.Reporting.OutputDir)
	assert.Equal(t, 1, closed)
	assert.Contains(t, out.String(), "assets")
	client.AssertExpectations(t)
}

func TestCLI_ProfilesDoesNotConnect(t *testing.T) {
	connect := func(context.Context, *config.Config) (*commands.Environment, io.Closer, error) {
		t.Fatal("profiles must not connect to AWS")
		return nil, nil, nil
	}
	profiles := func(context.Context) (commands.ProfileLister, error) {
		return profileList{{Name: "default", Region: "us-east-1", Source: domain.ProfileSourceConfig}}, nil
	}

	var out bytes.Buffer
	cli := NewCLI(Options{Connector: connect, Profiles: profiles, Output: &out})
	cli.SetArgs([]string{"profiles"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "default")
}

func TestCLI_InvalidConfigFile(t *testing.T) {
	connect := func(context.Context, *config.Config) (*commands.Environment, io.Closer, error) {
		t.Fatal("must not connect with a broken config")
		return nil, nil, nil
	}

	var out bytes.Buffer
	cli := NewCLI(Options{Connector: connect, Output: &out})
	cli.SetArgs([]string{"list-buckets", "--config", filepath.Join(t.TempDir(), "missing.yaml")})

	err := cli.Execute(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestCLI_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out})
	cli.SetArgs([]string{"frobnicate"})

	assert.Error(t, cli.Execute(context.Background()))
}
