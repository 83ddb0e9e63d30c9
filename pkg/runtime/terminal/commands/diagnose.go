package commands

import (
	"fmt"
	"io"

	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"github.com/de-tools/bucket-doctor/pkg/services/doctor"
	"github.com/de-tools/bucket-doctor/pkg/services/remediation"
	"github.com/spf13/cobra"
)

type DiagnoseCmd struct {
	fix         bool
	autoApprove bool
	noAI        bool
	output      string
	load        Loader
	reporter    *export.Reporter
	in          io.Reader
}

func NewDiagnoseCmd(load Loader, reporter *export.Reporter, in io.Reader) *cobra.Command {
	dc := &DiagnoseCmd{load: load, reporter: reporter, in: in}
	cmd := &cobra.Command{
		Use:     "diagnose <bucket>",
		Aliases: []string{"scan"},
		Short:   "Run the full diagnostic scan on a bucket",
		Args:    cobra.ExactArgs(1),
		RunE:    dc.run,
	}

	cmd.Flags().BoolVar(&dc.fix, "fix", false, "Apply automated fixes after the scan")
	cmd.Flags().BoolVar(&dc.autoApprove, "auto-approve", false, "Apply fixes without asking")
	cmd.Flags().BoolVar(&dc.noAI, "no-ai", false, "Skip AI analysis")
	cmd.Flags().StringVar(&dc.output, "output", OutputAll, "Output format: console, json, html or all")

	return cmd
}

func (dc *DiagnoseCmd) run(cmd *cobra.Command, args []string) error {
	if err := validateOutput(dc.output); err != nil {
		return err
	}
	ctx := cmd.Context()

	env, err := dc.load(ctx)
	if err != nil {
		return err
	}

	bucket := args[0]
	dc.reporter.Info(fmt.Sprintf("Scanning bucket: %s", bucket))
	result, err := env.Doctor.Diagnose(ctx, bucket, doctor.DiagnoseOptions{WithAI: !dc.noAI})
	if err != nil {
		return err
	}

	if result.Advice != nil {
		dc.reporter.Advice(*result.Advice)
	}
	if err := render(dc.reporter, env.OutputDir, dc.output, result.Report); err != nil {
		return err
	}

	final := result.Report
	if dc.fix {
		fixed, err := env.Doctor.FixReport(ctx, result.Report, doctor.FixOptions{
			Options: remediation.Options{
				AutoApprove: dc.autoApprove,
				Confirmer:   NewPromptConfirmer(dc.in, cmd.OutOrStdout(), dc.reporter),
			},
		})
		if err != nil {
			return err
		}
		dc.reporter.FixSummary(fixed.Summary)
		if fixed.Summary.After != nil {
			final = *fixed.Summary.After
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Final Score: %d/100 - %s\n", final.Score, final.Health)
	return nil
}
