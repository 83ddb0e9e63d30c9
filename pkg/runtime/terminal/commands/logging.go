package commands

import (
	"fmt"

	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type EnableLoggingCmd struct {
	targetBucket string
	prefix       string
	load         Loader
	reporter     *export.Reporter
}

// NewEnableLoggingCmd configures access logging, which the automated fixes
// leave alone.
func NewEnableLoggingCmd(load Loader, reporter *export.Reporter) *cobra.Command {
	lc := &EnableLoggingCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "enable-logging <bucket>",
		Short: "Enable server access logging on a bucket",
		Args:  cobra.ExactArgs(1),
		RunE:  lc.run,
	}

	cmd.Flags().StringVar(&lc.targetBucket, "target-bucket", "", "Bucket that receives the access logs")
	cmd.Flags().StringVar(&lc.prefix, "prefix", "", "Log object prefix (default <bucket>-logs/)")
	_ = cmd.MarkFlagRequired("target-bucket")

	return cmd
}

func (lc *EnableLoggingCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := lc.load(ctx)
	if err != nil {
		return err
	}

	bucket := args[0]
	if err := env.Client.EnableLogging(ctx, bucket, lc.targetBucket, lc.prefix); err != nil {
		return err
	}
	lc.reporter.Info(fmt.Sprintf("Access logging enabled for %s into %s", bucket, lc.targetBucket))
	return nil
}
