package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/eternalquest/internal/store"
)

// ErrNotConfigured is returned when no provider is selected and no API key
// could be discovered in the environment.
var ErrNotConfigured = errors.New("no LLM provider configured (set QUEST_LLM_PROVIDER or an API key such as GEMINI_API_KEY)")

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, eventRepo, logger)
	retried := WithRetry(logged, cfg.Retry, logger)
	if cfg.Timeout > 0 {
		return WithTimeout(retried, cfg.Timeout), nil
	}
	return retried, nil
}

// NewProviderFromEnv resolves the provider from overrides and the
// environment, then builds it with NewProvider.
func NewProviderFromEnv(ctx context.Context, o Overrides, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	cfg, ok := ResolveConfig(o)
	if !ok {
		return nil, ErrNotConfigured
	}
	return NewProvider(ctx, cfg, eventRepo, logger)
}
