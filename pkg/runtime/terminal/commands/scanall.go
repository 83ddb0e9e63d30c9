package commands

import (
	"fmt"

	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"github.com/de-tools/bucket-doctor/pkg/services/doctor"
	"github.com/spf13/cobra"
)

func NewScanAllCmd(load Loader, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "scan-all",
		Short: "Scan every bucket in the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			env, err := load(ctx)
			if err != nil {
				return err
			}

			summary, err := env.Doctor.ScanAll(ctx, doctor.ScanAllOptions{
				OnBucket: func(bucket string, index, total int) {
					reporter.Info(fmt.Sprintf("[%d/%d] Scanning %s", index+1, total, bucket))
				},
			})
			if err != nil {
				return err
			}

			reporter.AccountSummary(summary)
			return nil
		},
	}
}
