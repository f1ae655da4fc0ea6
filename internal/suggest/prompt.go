package suggest

import (
	"fmt"
	"strings"
)

const suggestSystemPrompt = `You are a supportive coach helping someone plan personal goals in a gamified goal tracker. Goals earn points when recorded and every 10000 points is a new level.`

func buildSuggestUserMessage(in Input, count int) string {
	var b strings.Builder

	theme := strings.TrimSpace(in.Theme)
	if theme == "" {
		theme = "general self-improvement"
	}
	fmt.Fprintf(&b, "Theme: %s\n", theme)
	fmt.Fprintf(&b, "Number of goals: %d\n", count)

	b.WriteString("\nExisting Goals:\n")
	if len(in.Existing) == 0 {
		b.WriteString("None\n")
	} else {
		for _, name := range in.Existing {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	b.WriteString(`
Instructions:
Suggest new goals that:
1. Fit the theme and do not repeat any existing goal.
2. Mix kinds: "simple" for one-off achievements, "eternal" for habits with no end, "checklist" for something repeated a set number of times.
3. Award between 10 and 1000 points per event, more for harder goals.
4. For checklist goals, set target to the number of repetitions (2-30) and bonus to a reward for finishing (usually 2-10 times the points). Use 0 for target and bonus on other kinds.
5. Never use the characters "|" or ":" in names or descriptions.
`)
	return b.String()
}
