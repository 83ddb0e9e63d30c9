package commands

import (
	"fmt"

	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewProfilesCmd(load ProfileLoader, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the AWS profiles found in the shared config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			registry, err := load(ctx)
			if err != nil {
				return err
			}
			profiles, err := registry.GetProfiles(ctx)
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}
			reporter.Profiles(profiles)
			return nil
		},
	}
}
