package commands

import (
	"fmt"
	"io"

	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"github.com/de-tools/bucket-doctor/pkg/services/doctor"
	"github.com/de-tools/bucket-doctor/pkg/services/remediation"
	"github.com/spf13/cobra"
)

type FixCmd struct {
	autoApprove bool
	noAI        bool
	load        Loader
	reporter    *export.Reporter
	in          io.Reader
}

func NewFixCmd(load Loader, reporter *export.Reporter, in io.Reader) *cobra.Command {
	fc := &FixCmd{load: load, reporter: reporter, in: in}
	cmd := &cobra.Command{
		Use:   "fix <bucket>",
		Short: "Scan a bucket, apply automated fixes and scan again",
		Args:  cobra.ExactArgs(1),
		RunE:  fc.run,
	}

	cmd.Flags().BoolVar(&fc.autoApprove, "auto-approve", false, "Apply fixes without asking")
	cmd.Flags().BoolVar(&fc.noAI, "no-ai", false, "Skip AI advice for the remaining issues")

	return cmd
}

func (fc *FixCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := fc.load(ctx)
	if err != nil {
		return err
	}

	bucket := args[0]
	fc.reporter.Info(fmt.Sprintf("Scanning bucket: %s", bucket))
	scanned, err := env.Doctor.Diagnose(ctx, bucket, doctor.DiagnoseOptions{})
	if err != nil {
		return err
	}
	if err := fc.reporter.Handle(scanned.Report); err != nil {
		return err
	}

	result, err := env.Doctor.FixReport(ctx, scanned.Report, doctor.FixOptions{
		Options: remediation.Options{
			AutoApprove: fc.autoApprove,
			Confirmer:   NewPromptConfirmer(fc.in, cmd.OutOrStdout(), fc.reporter),
		},
		WithAI: !fc.noAI,
	})
	if err != nil {
		return err
	}

	fc.reporter.FixSummary(result.Summary)
	if result.Summary.After != nil {
		if err := fc.reporter.Handle(*result.Summary.After); err != nil {
			return err
		}
	}
	if result.Recommendations != "" {
		fc.reporter.Text("Remaining issues", result.Recommendations)
	}
	return nil
}
