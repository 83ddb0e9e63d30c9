package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/bucket-doctor/pkg/adapters"
	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"github.com/de-tools/bucket-doctor/pkg/services/doctor"
	"github.com/spf13/cobra"
)

type TroubleshootCmd struct {
	load     Loader
	reporter *export.Reporter
	in       io.Reader
}

func NewTroubleshootCmd(load Loader, reporter *export.Reporter, in io.Reader) *cobra.Command {
	tc := &TroubleshootCmd{load: load, reporter: reporter, in: in}
	return &cobra.Command{
		Use:   "troubleshoot <bucket>",
		Short: "Interactive AI troubleshooting session for a bucket",
		Args:  cobra.ExactArgs(1),
		RunE:  tc.run,
	}
}

func (tc *TroubleshootCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	env, err := tc.load(ctx)
	if err != nil {
		return err
	}
	if !env.Advisor.Available() {
		return fmt.Errorf("AI engine unavailable: configure Bedrock access or an OpenAI/Gemini API key")
	}
	if _, err := env.Client.VerifyCredentials(ctx); err != nil {
		return err
	}

	bucket := args[0]
	tc.reporter.Info(fmt.Sprintf("Interactive troubleshooting for: %s", bucket))
	tc.reporter.Info("Type 'quit' or 'exit' to end the session.")
	tc.reporter.Info("Type 'scan' to run a full diagnostic first.")
	tc.reporter.Info("Type 'policy <use-case>' to generate a bucket policy.")

	session := map[string]any{}
	scanner := bufio.NewScanner(tc.in)
	for {
		fmt.Fprint(out, "\nDescribe your issue> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		lower := strings.ToLower(input)

		switch {
		case input == "":
			continue
		case lower == "quit" || lower == "exit" || lower == "q":
			tc.reporter.Info("Session ended.")
			return nil
		case lower == "scan":
			result, err := env.Doctor.Diagnose(ctx, bucket, doctor.DiagnoseOptions{})
			if err != nil {
				return err
			}
			if err := tc.reporter.Handle(result.Report); err != nil {
				return err
			}
			session["last_scan"] = adapters.MapBucketReportDomainToApi(result.Report)
		case strings.HasPrefix(lower, "policy "):
			useCase := strings.TrimSpace(input[len("policy "):])
			tc.reporter.Text("Generated Bucket Policy", env.Advisor.GeneratePolicy(ctx, bucket, useCase))
		default:
			tc.reporter.Text("AI Troubleshooting", env.Advisor.Troubleshoot(ctx, input, bucket, session))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
