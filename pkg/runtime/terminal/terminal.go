package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/bucket-doctor/pkg/runtime/app"
	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/commands"
	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"github.com/de-tools/bucket-doctor/pkg/services/config"
	"github.com/de-tools/bucket-doctor/pkg/services/diagnostics"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Connector builds the environment the bucket commands run against. The
// returned closer is released once the command finishes.
type Connector func(ctx context.Context, cfg *config.Config) (*commands.Environment, io.Closer, error)

// CLI represents the command-line interface
type CLI struct {
	connect  Connector
	profiles commands.ProfileLoader
	reporter *export.Reporter
	input    io.Reader
	rootCmd  *cobra.Command

	configPath string
	region     string
	profile    string
	debug      bool

	env    *commands.Environment
	closer io.Closer
}

// Options contain configuration for the CLI
type Options struct {
	Connector Connector
	Profiles  commands.ProfileLoader
	Output    io.Writer
	Input     io.Reader
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Profiles == nil {
		opts.Profiles = defaultProfiles
	}

	reporter := export.NewReporter(opts.Output)
	if opts.Connector == nil {
		opts.Connector = Connect(export.NewProgress(reporter))
	}

	cli := &CLI{
		connect:  opts.Connector,
		profiles: opts.Profiles,
		reporter: reporter,
		input:    opts.Input,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	defer cli.close(ctx)
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides the arguments, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bucket-doctor",
		Short:         "Diagnose, score and fix S3 bucket configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cli.debug {
				logger := zerolog.Ctx(cmd.Context()).Level(zerolog.DebugLevel)
				cmd.SetContext(logger.WithContext(cmd.Context()))
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.configPath, "config", "", "Path to a bucket-doctor.yaml config file")
	flags.StringVar(&cli.region, "region", "", "AWS region (overrides config)")
	flags.StringVar(&cli.profile, "profile", "", "AWS profile name (overrides config)")
	flags.BoolVar(&cli.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(commands.NewDiagnoseCmd(cli.environment, cli.reporter, cli.input))
	cmd.AddCommand(commands.NewFixCmd(cli.environment, cli.reporter, cli.input))
	cmd.AddCommand(commands.NewScanAllCmd(cli.environment, cli.reporter))
	cmd.AddCommand(commands.NewListBucketsCmd(cli.environment, cli.reporter))
	cmd.AddCommand(commands.NewTroubleshootCmd(cli.environment, cli.reporter, cli.input))
	cmd.AddCommand(commands.NewHistoryCmd(cli.environment, cli.reporter))
	cmd.AddCommand(commands.NewEnableLoggingCmd(cli.environment, cli.reporter))
	cmd.AddCommand(commands.NewProfilesCmd(cli.profiles, cli.reporter))

	return cmd
}

// environment loads the configuration and connects on first use.
func (cli *CLI) environment(ctx context.Context) (*commands.Environment, error) {
	if cli.env != nil {
		return cli.env, nil
	}

	cfg, err := cli.loadConfig()
	if err != nil {
		return nil, err
	}

	env, closer, err := cli.connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cli.env = env
	cli.closer = closer
	return env, nil
}

func (cli *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return nil, err
	}
	if cli.region != "" {
		cfg.AWS.Region = cli.region
	}
	if cli.profile != "" {
		cfg.AWS.Profile = cli.profile
	}
	if cli.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cli *CLI) close(ctx context.Context) {
	if cli.closer == nil {
		return
	}
	if err := cli.closer.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to release resources")
	}
	cli.env = nil
	cli.closer = nil
}

// Connect wires the production services behind the commands. Scan progress
// goes to observer.
func Connect(observer diagnostics.Observer) Connector {
	return func(ctx context.Context, cfg *config.Config) (*commands.Environment, io.Closer, error) {
		a, err := app.New(ctx, cfg, app.Options{Observer: observer})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize: %w", err)
		}
		return &commands.Environment{
			Doctor:    a.Doctor,
			Client:    a.Client,
			Advisor:   a.Advisor,
			OutputDir: cfg.Reporting.OutputDir,
		}, a, nil
	}
}

func defaultProfiles(context.Context) (commands.ProfileLister, error) {
	return config.NewRegistry(config.DefaultPaths())
}
