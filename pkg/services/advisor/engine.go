package advisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	DefaultMaxTokens      = 4096
	troubleshootMaxTokens = 3000
	policyMaxTokens       = 2000

	unavailableText = "AI analysis unavailable."
)

// Order in which auto selection tries providers.
var autoOrder = []string{ProviderBedrock, ProviderOpenAI, ProviderGemini}

// Engine narrates reports through an optional provider. Every operation
// degrades to placeholder text when no provider is configured or the
// provider fails.
type Engine struct {
	provider  Provider
	maxTokens int
}

// NewEngine wraps provider. A nil provider yields an unavailable engine.
func NewEngine(provider Provider, maxTokens int) *Engine {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Engine{provider: provider, maxTokens: maxTokens}
}

// Select resolves the provider named by name. "auto" tries autoOrder in turn and
// "none" disables advice. An explicitly named provider that cannot be built
// is an error.
func Select(ctx context.Context, reg Registry, name string, settings Settings) (Provider, error) {
	logger := zerolog.Ctx(ctx)

	switch name {
	case ProviderNone:
		return nil, nil
	case "", ProviderAuto:
		for _, candidate := range autoOrder {
			p, err := reg.Create(ctx, candidate, settings)
			if err == nil {
				logger.Info().Str("provider", candidate).Msg("AI engine selected")
				return p, nil
			}
			if !errors.Is(err, ErrNotConfigured) {
				logger.Warn().Err(err).Str("provider", candidate).Msg("AI provider not available")
			}
		}
		logger.Info().Msg("no AI provider configured")
		return nil, nil
	default:
		known := reg.ListProviders()
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("unknown AI provider %q: must be one of %s, %s or %s",
				name, ProviderAuto, strings.Join(known, ", "), ProviderNone)
		}
		p, err := reg.Create(ctx, name, settings)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize AI provider %s: %w", name, err)
		}
		return p, nil
	}
}

func (e *Engine) Available() bool {
	return e != nil && e.provider != nil
}

func (e *Engine) ProviderName() string {
	if !e.Available() {
		return ProviderNone
	}
	return e.provider.Name()
}

// Analyze never fails: an unavailable engine or a provider error produce
// placeholder advice.
func (e *Engine) Analyze(ctx context.Context, report domain.BucketReport) domain.Advice {
	if !e.Available() {
		return domain.UnavailableAdvice()
	}
	text, err := e.provider.Complete(ctx, analysisSystemPrompt, analysisPrompt(report), e.maxTokens)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("bucket", report.BucketName).Msg("AI analysis failed")
		return domain.Advice{Analysis: "AI failed: " + err.Error(), Summary: "Error"}.Normalized()
	}
	return ParseAdvice(text)
}

func (e *Engine) Troubleshoot(ctx context.Context, issue, bucket string, extra map[string]any) string {
	if !e.Available() {
		return unavailableText
	}
	text, err := e.provider.Complete(ctx, troubleshootSystemPrompt, troubleshootPrompt(issue, bucket, extra), troubleshootMaxTokens)
	if err != nil {
		return "Failed: " + err.Error()
	}
	return text
}

func (e *Engine) GeneratePolicy(ctx context.Context, bucket, useCase string) string {
	if !e.Available() {
		return unavailableText
	}
	text, err := e.provider.Complete(ctx, policySystemPrompt, policyPrompt(bucket, useCase), policyMaxTokens)
	if err != nil {
		return "Failed: " + err.Error()
	}
	return text
}

// Freeform passes prompts straight through and reports provider errors.
func (e *Engine) Freeform(ctx context.Context, system, user string) (string, error) {
	if !e.Available() {
		return "", fmt.Errorf("AI engine unavailable")
	}
	return e.provider.Complete(ctx, system, user, e.maxTokens)
}

// RemainingIssues asks for guidance on the issues a remediation pass left
// behind. It returns "" when there is nothing to ask about.
func (e *Engine) RemainingIssues(ctx context.Context, report domain.BucketReport) string {
	if !e.Available() {
		return ""
	}
	issues := report.Issues()
	if len(issues) == 0 {
		return ""
	}
	text, err := e.Freeform(ctx, remainingSystemPrompt, remainingPrompt(report.BucketName, issues))
	if err != nil {
		return "AI analysis failed: " + err.Error()
	}
	return text
}

func (e *Engine) Close() error {
	if !e.Available() {
		return nil
	}
	if closer, ok := e.provider.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
