package remediation

import (
	"context"
	"fmt"
	"slices"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	DefaultEncryptionAlgorithm = "AES256"
	NoAutomatedFix             = "No automated fix available"
)

var supportedAlgorithms = []string{"AES256", "aws:kms", "aws:kms:dsse"}

// Fixer applies configuration changes to a bucket.
type Fixer interface {
	BlockPublicAccess(ctx context.Context, bucket string) error
	EnableEncryption(ctx context.Context, bucket, algorithm string) error
	EnableVersioning(ctx context.Context, bucket string) error
}

// Confirmer asks the operator whether the selected fixes may be applied.
type Confirmer interface {
	Confirm(ctx context.Context, bucket string, selected []domain.DiagnosticResult) (bool, error)
}

type Settings struct {
	EncryptionAlgorithm string
}

type Options struct {
	AutoApprove bool
	Confirmer   Confirmer
}

type Remediator interface {
	Select(report domain.BucketReport) []domain.DiagnosticResult
	RemediateAll(ctx context.Context, report domain.BucketReport, opts Options) ([]domain.FixOutcome, error)
}

type action func(ctx context.Context, f Fixer, bucket string, s Settings) (string, error)

var actions = map[domain.CheckID]action{
	domain.CheckPublicAccessBlock: func(ctx context.Context, f Fixer, bucket string, _ Settings) (string, error) {
		if err := f.BlockPublicAccess(ctx, bucket); err != nil {
			return "", err
		}
		return "Public access blocked", nil
	},
	domain.CheckEncryption: func(ctx context.Context, f Fixer, bucket string, s Settings) (string, error) {
		if err := f.EnableEncryption(ctx, bucket, s.EncryptionAlgorithm); err != nil {
			return "", err
		}
		return fmt.Sprintf("Encryption enabled with %s", s.EncryptionAlgorithm), nil
	},
	domain.CheckVersioning: func(ctx context.Context, f Fixer, bucket string, _ Settings) (string, error) {
		if err := f.EnableVersioning(ctx, bucket); err != nil {
			return "", err
		}
		return "Versioning enabled", nil
	},
}

type remediator struct {
	fixer    Fixer
	settings Settings
	actions  map[domain.CheckID]action
}

// NewRemediator fails when the action table does not cover exactly the
// checks that can report themselves as auto-fixable.
func NewRemediator(fixer Fixer, settings Settings) (Remediator, error) {
	if fixer == nil {
		return nil, fmt.Errorf("fixer is nil")
	}
	if settings.EncryptionAlgorithm == "" {
		settings.EncryptionAlgorithm = DefaultEncryptionAlgorithm
	}
	if !slices.Contains(supportedAlgorithms, settings.EncryptionAlgorithm) {
		return nil, fmt.Errorf("unsupported encryption algorithm %q", settings.EncryptionAlgorithm)
	}
	if err := validateActions(actions); err != nil {
		return nil, err
	}
	return &remediator{
		fixer:    fixer,
		settings: settings,
		actions:  actions,
	}, nil
}

func validateActions(table map[domain.CheckID]action) error {
	for _, id := range domain.RemediableChecks() {
		if _, ok := table[id]; !ok {
			return fmt.Errorf("no remediation action registered for %q", id.Name())
		}
	}
	for id := range table {
		if !id.Remediable() {
			return fmt.Errorf("remediation action registered for non auto-fixable check %q", id.Name())
		}
	}
	return nil
}

// Select returns the fixable failing results in catalog order.
func (r *remediator) Select(report domain.BucketReport) []domain.DiagnosticResult {
	var selected []domain.DiagnosticResult
	for _, res := range report.Results {
		if res.Fixable() {
			selected = append(selected, res)
		}
	}
	return selected
}

func (r *remediator) RemediateAll(
	ctx context.Context,
	report domain.BucketReport,
	opts Options,
) ([]domain.FixOutcome, error) {
	logger := zerolog.Ctx(ctx).With().Str("bucket", report.BucketName).Logger()

	selected := r.Select(report)
	if len(selected) == 0 {
		return []domain.FixOutcome{}, nil
	}

	if !opts.AutoApprove {
		if opts.Confirmer == nil {
			logger.Info().Msg("no confirmation available, skipping remediation")
			return []domain.FixOutcome{}, nil
		}
		ok, err := opts.Confirmer.Confirm(ctx, report.BucketName, selected)
		if err != nil {
			return []domain.FixOutcome{}, fmt.Errorf("failed to confirm remediation: %w", err)
		}
		if !ok {
			logger.Info().Msg("remediation declined")
			return []domain.FixOutcome{}, nil
		}
	}

	outcomes := make([]domain.FixOutcome, 0, len(selected))
	for _, res := range selected {
		outcome := r.apply(ctx, report.BucketName, res.Check)
		if outcome.Success {
			logger.Info().Str("check", res.CheckName()).Msg(outcome.Message)
		} else {
			logger.Error().Str("check", res.CheckName()).Str("error", outcome.Error).Msg("remediation failed")
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (r *remediator) apply(ctx context.Context, bucket string, id domain.CheckID) (outcome domain.FixOutcome) {
	outcome.Check = id

	act, ok := r.actions[id]
	if !ok {
		outcome.Message = NoAutomatedFix
		return outcome
	}

	defer func() {
		if p := recover(); p != nil {
			outcome.Success = false
			outcome.Message = ""
			outcome.Error = fmt.Sprintf("%v", p)
		}
	}()

	msg, err := act(ctx, r.fixer, bucket, r.settings)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Success = true
	outcome.Message = msg
	return outcome
}
