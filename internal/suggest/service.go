// Package suggest asks an LLM for new goals and turns the answer into
// goal specs the quest engine can accept.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/eternalquest/internal/goals"
	"github.com/abhisek/eternalquest/internal/llm"
	"github.com/abhisek/eternalquest/internal/quest"
)

// Purpose labels suggestion requests in the LLM event log.
const Purpose = "goal-suggest"

// ErrNoSuggestions is returned when the model answered but nothing usable
// survived sanitizing.
var ErrNoSuggestions = errors.New("no usable goal suggestions")

// Input describes what to suggest.
type Input struct {
	Theme string
	Count int
	// Existing holds the names of goals already tracked.
	Existing []string
}

// Suggestion is a sanitized goal spec plus the model's reasoning.
type Suggestion struct {
	Spec   quest.GoalSpec
	Reason string
}

// Service generates goal suggestions.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// NewService creates a goal suggestion service.
func NewService(provider llm.Provider, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

type suggestionsOutput struct {
	Goals []goalOutput `json:"goals"`
}

type goalOutput struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Target      int    `json:"target"`
	Bonus       int    `json:"bonus"`
	Reason      string `json:"reason"`
}

// Suggest requests goals from the provider. At most the requested count
// is returned; suggestions that duplicate an existing goal or cannot be
// repaired into a valid spec are dropped.
func (s *Service) Suggest(ctx context.Context, in Input) ([]Suggestion, error) {
	ctx = llm.WithPurpose(ctx, Purpose)
	count := s.count(in.Count)

	req := llm.Request{
		System: suggestSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSuggestUserMessage(in, count)},
		},
		Schema:      GoalSuggestionSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("goal suggestion: %w", err)
	}

	var out suggestionsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse suggestion response: %w", err)
	}

	seen := make(map[string]bool, len(in.Existing)+len(out.Goals))
	for _, name := range in.Existing {
		seen[nameKey(name)] = true
	}

	var result []Suggestion
	for _, g := range out.Goals {
		if len(result) == count {
			break
		}
		sug, ok := sanitize(g)
		if !ok {
			s.logger.Debug("dropping unusable suggestion", "name", g.Name, "kind", g.Kind)
			continue
		}
		key := nameKey(sug.Spec.Name)
		if seen[key] {
			s.logger.Debug("dropping duplicate suggestion", "name", sug.Spec.Name)
			continue
		}
		seen[key] = true
		result = append(result, sug)
	}

	if len(result) == 0 {
		return nil, ErrNoSuggestions
	}
	return result, nil
}

func (s *Service) count(n int) int {
	if n <= 0 {
		n = DefaultCount
	}
	if s.cfg.MaxCount > 0 && n > s.cfg.MaxCount {
		n = s.cfg.MaxCount
	}
	return n
}

// sanitize repairs a raw suggestion into a valid spec. ok is false when
// the kind is unknown or the name is empty.
func sanitize(g goalOutput) (Suggestion, bool) {
	kind, ok := goals.ParseKind(g.Kind)
	if !ok {
		return Suggestion{}, false
	}

	spec := quest.GoalSpec{
		Kind:        kind,
		Name:        cleanText(g.Name),
		Description: cleanText(g.Description),
		Points:      max(g.Points, 0),
	}
	if spec.Name == "" {
		return Suggestion{}, false
	}
	if kind == goals.KindChecklist {
		spec.Target = max(g.Target, 1)
		spec.Bonus = max(g.Bonus, 0)
	}

	if err := spec.Validate(); err != nil {
		return Suggestion{}, false
	}
	return Suggestion{Spec: spec, Reason: strings.TrimSpace(g.Reason)}, true
}

var textReplacer = strings.NewReplacer(
	goals.FieldSeparator, "/",
	goals.TagSeparator, " -",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// cleanText removes the save file separators and collapses whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(textReplacer.Replace(s)), " ")
}

func nameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
