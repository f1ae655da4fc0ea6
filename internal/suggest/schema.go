package suggest

import "github.com/abhisek/eternalquest/internal/llm"

// GoalSuggestionSchema defines the JSON schema for goal suggestions. Every
// property is required and extra properties are rejected so the schema is
// accepted by OpenAI strict mode.
var GoalSuggestionSchema = &llm.Schema{
	Name:        "goal-suggestions",
	Description: "A list of personal goals to track in Eternal Quest",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"goals": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": map[string]any{
							"type":        "string",
							"enum":        []any{"simple", "eternal", "checklist"},
							"description": "simple: done once; eternal: repeated forever; checklist: done a target number of times for a bonus",
						},
						"name": map[string]any{
							"type":        "string",
							"description": "Short goal name (2-5 words)",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "One sentence describing the goal",
						},
						"points": map[string]any{
							"type":        "integer",
							"description": "Points earned per recorded event",
						},
						"target": map[string]any{
							"type":        "integer",
							"description": "Times to complete a checklist goal; 0 for other kinds",
						},
						"bonus": map[string]any{
							"type":        "integer",
							"description": "Bonus points when a checklist goal reaches its target; 0 for other kinds",
						},
						"reason": map[string]any{
							"type":        "string",
							"description": "Why this goal fits the theme (one sentence)",
						},
					},
					"required":             []any{"kind", "name", "description", "points", "target", "bonus", "reason"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"goals"},
		"additionalProperties": false,
	},
}
