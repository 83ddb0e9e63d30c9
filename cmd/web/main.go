package main

import (
	"fmt"
	"os"

	"github.com/de-tools/bucket-doctor/pkg/runtime/app"
	"github.com/de-tools/bucket-doctor/pkg/server"
	"github.com/de-tools/bucket-doctor/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	host    string
	port    string
	debug   bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Bucket Doctor API server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a bucket-doctor.yaml config file")
	rootCmd.Flags().StringVar(&host, "host", "", "Listen host (overrides config and SERVER_HOST)")
	rootCmd.Flags().StringVar(&port, "port", "", "Listen port (overrides config and SERVER_PORT)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if port != "" {
		cfg.Server.Port = port
	}

	level := zerolog.InfoLevel
	if debug || cfg.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	a, err := app.New(ctx, cfg, app.Options{})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to release resources")
		}
	}()

	if id, err := a.Client.VerifyCredentials(ctx); err != nil {
		logger.Warn().Err(err).Msg("AWS credentials could not be verified")
	} else {
		logger.Info().Str("account", id.Account).Str("arn", id.ARN).Msg("AWS credentials verified")
	}
	logger.Info().
		Bool("ai_available", a.Advisor.Available()).
		Str("ai_provider", a.Advisor.ProviderName()).
		Msg("advisory engine ready")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.ServerAddr(),
		Version:         app.Version,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Account: a.Client,
			Doctor:  a.Doctor,
			Advisor: a.Advisor,
		},
	})
	return api.Start()
}
