package commands

import (
	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewHistoryCmd(load Loader, reporter *export.Reporter) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <bucket>",
		Short: "Show recorded scans of a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			env, err := load(ctx)
			if err != nil {
				return err
			}

			h, err := env.Doctor.History(ctx, args[0], limit)
			if err != nil {
				return err
			}
			reporter.History(h)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of scans to show")
	return cmd
}
