package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eternalquest/internal/goals"
)

func TestEncode_EternalGoal(t *testing.T) {
	got := Encode(500, []*goals.Goal{goals.NewEternal("Read", "Read daily", 15)})
	assert.Equal(t, "500\nEternalGoal:Read|Read daily|15\n", got)
}

func TestEncode_Empty(t *testing.T) {
	assert.Equal(t, "0\n", Encode(0, nil))
}

func TestRoundTrip(t *testing.T) {
	done := goals.NewSimple("Run", "Run a marathon", 1000)
	done.RecordEvent()
	over := goals.NewChecklist("Temple", "Attend the temple", 50, 2, 500)
	for i := 0; i < 4; i++ {
		over.RecordEvent()
	}

	tests := []struct {
		name  string
		score int
		goals []*goals.Goal
	}{
		{"empty", 0, nil},
		{"single eternal", 500, []*goals.Goal{goals.NewEternal("Read", "Read daily", 15)}},
		{"mixed", 12345, []*goals.Goal{
			goals.NewSimple("Speak", "Give a talk", 100),
			done,
			goals.NewEternal("Pray", "Pray: morning and night", 5),
			goals.NewChecklist("Attend Class", "Attend 3 sessions", 50, 3, 100),
			over,
		}},
		{"zero points", 0, []*goals.Goal{goals.NewChecklist("Z", "", 0, 1, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(Encode(tt.score, tt.goals))
			require.NoError(t, err)
			assert.Equal(t, tt.score, doc.Score)
			require.Len(t, doc.Goals, len(tt.goals))
			for i := range tt.goals {
				assert.Equal(t, *tt.goals[i], *doc.Goals[i], "goal %d", i+1)
			}
			assert.Empty(t, doc.Skipped)
		})
	}
}

func TestDecode_AllVariants(t *testing.T) {
	text := "1234\n" +
		"SimpleGoal:Run|Run a marathon|1000|True\n" +
		"EternalGoal:Read|Read daily|15\n" +
		"ChecklistGoal:Attend Class|Attend 3 sessions|50|1|3|100\n"

	doc, err := Decode(text)
	require.NoError(t, err)

	assert.Equal(t, 1234, doc.Score)
	require.Len(t, doc.Goals, 3)
	assert.Equal(t, goals.Goal{Kind: goals.KindSimple, Name: "Run", Description: "Run a marathon", Points: 1000, Done: true}, *doc.Goals[0])
	assert.Equal(t, goals.Goal{Kind: goals.KindEternal, Name: "Read", Description: "Read daily", Points: 15}, *doc.Goals[1])
	assert.Equal(t, goals.Goal{Kind: goals.KindChecklist, Name: "Attend Class", Description: "Attend 3 sessions", Points: 50, Completed: 1, Target: 3, Bonus: 100}, *doc.Goals[2])
}

func TestDecode_BoolCaseInsensitive(t *testing.T) {
	doc, err := Decode("0\nSimpleGoal:a|b|1|true\nSimpleGoal:c|d|2|FALSE\n")
	require.NoError(t, err)
	require.Len(t, doc.Goals, 2)
	assert.True(t, doc.Goals[0].Done)
	assert.False(t, doc.Goals[1].Done)
}

func TestDecode_CRLFAndBlankLines(t *testing.T) {
	doc, err := Decode("42\r\n\r\nEternalGoal:Read|Read daily|15\r\n\n")
	require.NoError(t, err)
	assert.Equal(t, 42, doc.Score)
	require.Len(t, doc.Goals, 1)
	assert.Equal(t, 15, doc.Goals[0].Points)
}

func TestDecode_DescriptionMayContainColon(t *testing.T) {
	doc, err := Decode("0\nEternalGoal:Pray|Pray: morning and night|5\n")
	require.NoError(t, err)
	require.Len(t, doc.Goals, 1)
	assert.Equal(t, "Pray: morning and night", doc.Goals[0].Description)
}

func TestDecode_UnknownTagSkipped(t *testing.T) {
	text := "10\n" +
		"EternalGoal:Read|Read daily|15\n" +
		"NegativeGoal:Smoke|Quit smoking|-50\n" +
		"SimpleGoal:Run|Run|100|False\n"

	doc, err := Decode(text)
	require.NoError(t, err)
	require.Len(t, doc.Goals, 2)
	assert.Equal(t, "Read", doc.Goals[0].Name)
	assert.Equal(t, "Run", doc.Goals[1].Name)
	assert.Equal(t, []SkippedLine{{Line: 3, Tag: "NegativeGoal"}}, doc.Skipped)
}

func TestDecode_FormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLine int
	}{
		{"empty", "", 1},
		{"only blanks", "\n \n", 1},
		{"score not a number", "abc\n", 1},
		{"negative score", "-5\n", 1},
		{"simple one field", "0\nSimpleGoal:OnlyOneField\n", 2},
		{"simple too many fields", "0\nSimpleGoal:a|b|1|True|x\n", 2},
		{"simple bad bool", "0\nSimpleGoal:a|b|1|Yes\n", 2},
		{"eternal bad points", "0\nEternalGoal:a|b|ten\n", 2},
		{"eternal negative points", "0\nEternalGoal:a|b|-1\n", 2},
		{"checklist five fields", "0\nChecklistGoal:a|b|1|2|3\n", 2},
		{"checklist bad target", "0\nEternalGoal:a|b|1\nChecklistGoal:a|b|1|0|x|5\n", 3},
		{"no tag separator", "0\nEternalGoal a b 1\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(tt.text)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, ErrFormat), "errors.Is(err, ErrFormat) for %v", err)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantLine, fe.Line)
		})
	}
}

func TestFormatError_Message(t *testing.T) {
	_, err := Decode("0\nSimpleGoal:OnlyOneField\n")
	require.Error(t, err)
	assert.Equal(t, "line 2 (SimpleGoal): expected 4 fields, got 1", err.Error())
}
