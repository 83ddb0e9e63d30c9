package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/bucket-doctor/pkg/services/advisor"
	"github.com/de-tools/bucket-doctor/pkg/services/aws"
	"github.com/de-tools/bucket-doctor/pkg/services/config"
	"github.com/de-tools/bucket-doctor/pkg/services/diagnostics"
	"github.com/de-tools/bucket-doctor/pkg/services/doctor"
	"github.com/de-tools/bucket-doctor/pkg/services/remediation"
	"github.com/de-tools/bucket-doctor/pkg/store/duckdb"
	"github.com/de-tools/bucket-doctor/pkg/store/duckdb/history"
	"github.com/rs/zerolog"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "dev"

// App holds the wired services shared by the CLI and the web server.
type App struct {
	Config   *config.Config
	Client   *aws.Client
	Advisor  *advisor.Engine
	Doctor   doctor.Service
	Profiles config.Registry

	db *sql.DB
}

type Options struct {
	// Observer receives per-check progress of every scan.
	Observer diagnostics.Observer
}

// New connects to AWS and wires every service. AWS failures wrap
// domain.ErrProviderUnavailable.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	logger := zerolog.Ctx(ctx)

	profiles, err := config.NewRegistry(config.DefaultPaths())
	if err != nil {
		return nil, fmt.Errorf("failed to create profile registry: %w", err)
	}
	if cfg.AWS.Profile != "" {
		if _, err := profiles.GetProfile(ctx, cfg.AWS.Profile); err != nil {
			return nil, fmt.Errorf("invalid AWS profile: %w", err)
		}
	}

	awsCfg, err := aws.LoadConfig(ctx, cfg.AWS.Profile, cfg.AWS.Region)
	if err != nil {
		return nil, err
	}
	client := aws.NewClient(awsCfg)

	provider, err := advisor.Select(ctx, advisor.DefaultRegistry(), cfg.AI.Provider, advisor.Settings{
		AWS:          &awsCfg,
		Model:        cfg.AI.Model,
		OpenAIAPIKey: cfg.AI.OpenAIAPIKey,
		GeminiAPIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, err
	}
	engine := advisor.NewEngine(provider, cfg.AI.MaxTokens)

	remediator, err := remediation.NewRemediator(client, remediation.Settings{
		EncryptionAlgorithm: cfg.Remediation.EncryptionAlgorithm,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create remediator: %w", err)
	}

	evaluator := diagnostics.NewEvaluator(client, diagnostics.Options{
		CheckTimeout:   cfg.Scan.CheckTimeout,
		SizeSampleKeys: cfg.Scan.SizeSampleKeys,
		Observer:       opts.Observer,
	})

	a := &App{
		Config:   cfg,
		Client:   client,
		Advisor:  engine,
		Profiles: profiles,
	}

	deps := doctor.Dependencies{
		Account:    client,
		Evaluator:  evaluator,
		Remediator: remediator,
		Advisor:    engine,
	}
	if cfg.History.Enabled {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.History.DBPath})
		if err != nil {
			return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		store, err := history.NewStore(db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create history store: %w", err)
		}
		a.db = db
		deps.History = store
		logger.Debug().Str("path", cfg.History.DBPath).Msg("scan history enabled")
	}

	a.Doctor, err = doctor.NewService(deps)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create doctor service: %w", err)
	}

	logger.Debug().
		Str("region", client.DefaultRegion()).
		Str("ai_provider", engine.ProviderName()).
		Msg("application initialized")
	return a, nil
}

func (a *App) Close() error {
	var firstErr error
	if a.Advisor != nil {
		firstErr = a.Advisor.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
