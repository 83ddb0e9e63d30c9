package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"github.com/de-tools/bucket-doctor/pkg/services/doctor"
)

type Advisor interface {
	Available() bool
	Troubleshoot(ctx context.Context, issue, bucket string, extra map[string]any) string
	GeneratePolicy(ctx context.Context, bucket, useCase string) string
}

type BucketClient interface {
	VerifyCredentials(ctx context.Context) (domain.CallerIdentity, error)
	ListBuckets(ctx context.Context) ([]string, error)
	EnableLogging(ctx context.Context, bucket, targetBucket, targetPrefix string) error
}

type ProfileLister interface {
	GetProfiles(ctx context.Context) ([]domain.AWSProfile, error)
}

// Environment is what the bucket commands run against. It is built on first
// use so that flags are parsed before AWS is contacted.
type Environment struct {
	Doctor    doctor.Service
	Client    BucketClient
	Advisor   Advisor
	OutputDir string
}

type Loader func(ctx context.Context) (*Environment, error)

type ProfileLoader func(ctx context.Context) (ProfileLister, error)

const (
	OutputConsole = "console"
	OutputJSON    = "json"
	OutputHTML    = "html"
	OutputAll     = "all"
)

func validateOutput(output string) error {
	switch output {
	case OutputConsole, OutputJSON, OutputHTML, OutputAll:
		return nil
	default:
		return fmt.Errorf("invalid output %q: must be one of console, json, html, all", output)
	}
}

// render prints and saves report according to output.
func render(reporter *export.Reporter, outputDir, output string, report domain.BucketReport) error {
	if output == OutputConsole || output == OutputAll {
		if err := reporter.Handle(report); err != nil {
			return err
		}
	}
	files := export.NewFileWriter(outputDir)
	if output == OutputJSON || output == OutputAll {
		path, err := files.WriteJSON(report)
		if err != nil {
			return err
		}
		reporter.Info("JSON report saved: " + path)
	}
	if output == OutputHTML || output == OutputAll {
		path, err := files.WriteHTML(report)
		if err != nil {
			return err
		}
		reporter.Info("HTML report saved: " + path)
	}
	return nil
}
