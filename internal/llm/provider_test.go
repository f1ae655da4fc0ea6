package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/eternalquest/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != StopEnd {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "goal-suggest")
	if p := PurposeFrom(ctx); p != "goal-suggest" {
		t.Fatalf("expected 'goal-suggest', got %q", p)
	}
}

func TestFinish(t *testing.T) {
	content := json.RawMessage(`{"name":"Run","points":5}`)

	t.Run("no schema passes raw content", func(t *testing.T) {
		resp, err := finish(nil, json.RawMessage(`plain text`), Usage{}, "m", StopMaxTokens)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StopReason != StopMaxTokens {
			t.Fatalf("expected max_tokens stop reason, got %q", resp.StopReason)
		}
	})

	t.Run("valid structured output", func(t *testing.T) {
		resp, err := finish(goalSchema(), content, Usage{TotalTokens: 3}, "m", StopEnd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Model != "m" || resp.Usage.TotalTokens != 3 {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("truncated structured output", func(t *testing.T) {
		_, err := finish(goalSchema(), json.RawMessage(`{"na`), Usage{}, "m", StopMaxTokens)
		var maxTok *ErrMaxTokensExceeded
		if !errors.As(err, &maxTok) {
			t.Fatalf("expected ErrMaxTokensExceeded, got: %T", err)
		}
	})

	t.Run("schema mismatch", func(t *testing.T) {
		_, err := finish(goalSchema(), json.RawMessage(`{"name":"Run"}`), Usage{}, "m", StopEnd)
		var inv *ErrInvalidResponse
		if !errors.As(err, &inv) {
			t.Fatalf("expected ErrInvalidResponse, got: %T", err)
		}
	})
}

func TestClassifyStatus(t *testing.T) {
	cause := errors.New("boom")

	var rl *ErrRateLimit
	if err := classifyStatus(http.StatusTooManyRequests, cause); !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit for 429, got %T", err)
	}

	var unavail *ErrProviderUnavailable
	if err := classifyStatus(http.StatusBadGateway, cause); !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable for 502, got %T", err)
	}
	if err := classifyStatus(http.StatusBadGateway, cause); !errors.Is(err, cause) {
		t.Fatal("expected the cause to be wrapped")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"QUEST_OPENAI_MODEL", "QUEST_GEMINI_MODEL", "QUEST_ANTHROPIC_API_KEY", "QUEST_OPENAI_API_KEY",
	} {
		t.Setenv(name, "")
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		clearKeyEnv(t)
		if _, ok := ResolveConfig(Overrides{}); ok {
			t.Fatal("expected no provider")
		}
	})

	t.Run("discovered key", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-env")
		cfg, ok := ResolveConfig(Overrides{Model: "gpt-4.1-mini"})
		if !ok {
			t.Fatal("expected a provider")
		}
		if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" {
			t.Fatalf("unexpected config: %+v", cfg.OpenAI)
		}
		if cfg.OpenAI.Model != "gpt-4.1-mini" {
			t.Fatalf("expected model override, got %q", cfg.OpenAI.Model)
		}
	})

	t.Run("explicit provider wins", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("GEMINI_API_KEY", "g-env")
		cfg, ok := ResolveConfig(Overrides{Provider: "anthropic", APIKey: "sk-flag", Timeout: 5 * time.Second})
		if !ok {
			t.Fatal("expected a provider")
		}
		if cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-flag" {
			t.Fatalf("unexpected config: %+v", cfg.Anthropic)
		}
		if cfg.Anthropic.Model != "claude-haiku" {
			t.Fatalf("expected default model, got %q", cfg.Anthropic.Model)
		}
		if cfg.Timeout != 5*time.Second {
			t.Fatalf("expected 5s timeout, got %s", cfg.Timeout)
		}
	})
}

func TestNewProviderFromEnv(t *testing.T) {
	clearKeyEnv(t)

	if _, err := NewProviderFromEnv(context.Background(), Overrides{}, nil, nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	p, err := NewProviderFromEnv(context.Background(), Overrides{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "mock" {
		t.Fatalf("expected mock provider, got %q", p.Name())
	}

	if _, err := NewProviderFromEnv(context.Background(), Overrides{Provider: "openai"}, nil, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestNewProvider_WrapsMiddleware(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openrouter"
	cfg.OpenRouter.APIKey = "sk-or-test"

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*TimeoutProvider); !ok {
		t.Fatalf("expected timeout wrapper, got %T", p)
	}
	if p.Name() != "openrouter" {
		t.Fatalf("expected 'openrouter', got %q", p.Name())
	}
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "quest.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, repo, nil)
	ctx := WithPurpose(context.Background(), "goal-suggest")

	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "go"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	// Newest first.
	failed, succeeded := events[0], events[1]
	if failed.Success || failed.ErrorMessage == "" {
		t.Fatalf("expected failed event, got %+v", failed.LLMRequestEventData)
	}
	if !succeeded.Success || succeeded.Provider != "mock" || succeeded.Purpose != "goal-suggest" {
		t.Fatalf("unexpected event: %+v", succeeded.LLMRequestEventData)
	}
	if succeeded.InputTokens != 12 || succeeded.ResponseBody != `{"ok":true}` {
		t.Fatalf("unexpected usage: %+v", succeeded.LLMRequestEventData)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSerializeRequest(t *testing.T) {
	out := serializeRequest(Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "suggest"}},
		Schema:   goalSchema(),
	})
	for _, want := range []string{"[system]\nbe brief", "[user]\nsuggest", "[schema: test-goal]"} {
		if !strings.Contains(out, want) {
			t.Errorf("serialized request missing %q:\n%s", want, out)
		}
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("gpt-4o-mini"); c == nil || c.InputPerMTok != 0.15 {
		t.Fatalf("unexpected cost: %+v", c)
	}
	if c := LookupCost("openai/gpt-4o-mini"); c == nil {
		t.Fatal("expected vendor-prefixed id to resolve")
	}
	if c := LookupCost("no-such-model"); c != nil {
		t.Fatalf("expected nil, got %+v", c)
	}
	cost := ModelCost{InputPerMTok: 1, OutputPerMTok: 2}.Cost(1_000_000, 500_000)
	if cost != 2 {
		t.Fatalf("expected cost 2, got %v", cost)
	}
}
