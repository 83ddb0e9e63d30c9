package advisor

import (
	"context"
	"fmt"
	"sort"
	"sync"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
)

const (
	ProviderAuto    = "auto"
	ProviderNone    = "none"
	ProviderBedrock = "bedrock"
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
)

// Provider is a text-completion backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// Settings carries everything a factory may need. AWS is nil when no AWS
// configuration could be loaded.
type Settings struct {
	AWS          *awssdk.Config
	Model        string
	OpenAIAPIKey string
	GeminiAPIKey string
}

// Factory builds a provider. It returns ErrNotConfigured when the settings
// do not carry what the provider needs.
type Factory func(ctx context.Context, settings Settings) (Provider, error)

var ErrNotConfigured = fmt.Errorf("provider not configured")

// Registry manages provider factories
type Registry interface {
	Register(name string, factory Factory) error
	Create(ctx context.Context, name string, settings Settings) (Provider, error)
	ListProviders() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]Factory),
	}
}

// DefaultRegistry registers the built-in providers.
func DefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(ProviderBedrock, NewBedrockProvider)
	_ = r.Register(ProviderOpenAI, NewOpenAIProvider)
	_ = r.Register(ProviderGemini, NewGeminiProvider)
	return r
}

func (r *registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("provider %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, name string, settings Settings) (Provider, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("provider %q is not registered", name)
	}

	return factory(ctx, settings)
}

func (r *registry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
