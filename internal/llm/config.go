package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call, retries included.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional, for OpenAI-compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// Overrides are settings from the quest config file, env or flags. Empty
// fields leave the provider defaults alone.
type Overrides struct {
	Provider string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envSetters maps QUEST_* provider variables to config fields.
var envSetters = map[string]func(*Config, string){
	"QUEST_ANTHROPIC_API_KEY":  func(c *Config, v string) { c.Anthropic.APIKey = v },
	"QUEST_ANTHROPIC_MODEL":    func(c *Config, v string) { c.Anthropic.Model = v },
	"QUEST_OPENAI_API_KEY":     func(c *Config, v string) { c.OpenAI.APIKey = v },
	"QUEST_OPENAI_MODEL":       func(c *Config, v string) { c.OpenAI.Model = v },
	"QUEST_OPENAI_BASE_URL":    func(c *Config, v string) { c.OpenAI.BaseURL = v },
	"QUEST_GEMINI_API_KEY":     func(c *Config, v string) { c.Gemini.APIKey = v },
	"QUEST_GEMINI_MODEL":       func(c *Config, v string) { c.Gemini.Model = v },
	"QUEST_OPENROUTER_API_KEY": func(c *Config, v string) { c.OpenRouter.APIKey = v },
	"QUEST_OPENROUTER_MODEL":   func(c *Config, v string) { c.OpenRouter.Model = v },
}

// ConfigFromEnv builds a Config from QUEST_* provider variables, falling
// back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, set := range envSetters {
		if v := os.Getenv(name); v != "" {
			set(&cfg, v)
		}
	}
	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := ConfigFromEnv()

	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// ResolveConfig picks the provider configuration. An explicit provider in
// o wins; otherwise the standard API key variables are probed. ok is false
// when no provider could be selected.
func ResolveConfig(o Overrides) (cfg Config, ok bool) {
	if o.Provider != "" {
		cfg = ConfigFromEnv()
		cfg.Provider = o.Provider
	} else if cfg, ok = DiscoverConfig(); !ok {
		return Config{}, false
	}

	cfg.apply(o)
	return cfg, true
}

// apply copies the model and key overrides into the selected provider.
func (c *Config) apply(o Overrides) {
	if o.Timeout > 0 {
		c.Timeout = o.Timeout
	}
	set := func(key, model *string) {
		if o.APIKey != "" {
			*key = o.APIKey
		}
		if o.Model != "" {
			*model = o.Model
		}
	}
	switch c.Provider {
	case "anthropic":
		set(&c.Anthropic.APIKey, &c.Anthropic.Model)
	case "openai":
		set(&c.OpenAI.APIKey, &c.OpenAI.Model)
	case "gemini":
		set(&c.Gemini.APIKey, &c.Gemini.Model)
	case "openrouter":
		set(&c.OpenRouter.APIKey, &c.OpenRouter.Model)
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider (set QUEST_LLM_API_KEY)", c.Provider)
	}
	return nil
}
