package commands

import (
	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewListBucketsCmd(load Loader, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "list-buckets",
		Short: "List the buckets in the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			env, err := load(ctx)
			if err != nil {
				return err
			}
			if _, err := env.Client.VerifyCredentials(ctx); err != nil {
				return err
			}

			buckets, err := env.Client.ListBuckets(ctx)
			if err != nil {
				return err
			}
			if len(buckets) == 0 {
				reporter.Info("No buckets found.")
				return nil
			}
			reporter.Buckets(buckets)
			return nil
		},
	}
}
