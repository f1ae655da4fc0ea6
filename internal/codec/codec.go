// Package codec reads and writes the line-oriented save file format:
//
//	<score>
//	SimpleGoal:name|description|points|isComplete
//	EternalGoal:name|description|points
//	ChecklistGoal:name|description|points|completedCount|target|bonus
//
// Nothing is escaped, so names and descriptions must not contain '|',
// ':' or newlines. Lines with an unknown tag are skipped rather than
// rejected.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/eternalquest/internal/goals"
)

// ErrFormat is wrapped by every *FormatError.
var ErrFormat = errors.New("malformed save file")

// FormatError reports the line that stopped a decode.
type FormatError struct {
	Line int    // 1-based line number
	Tag  string // goal tag, empty for the score line
	Err  error
}

func (e *FormatError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Tag, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// SkippedLine is a line ignored because its tag is not a known goal kind.
type SkippedLine struct {
	Line int
	Tag  string
}

// Document is the decoded content of a save file.
type Document struct {
	Score   int
	Goals   []*goals.Goal
	Skipped []SkippedLine
}

// Encode renders score and goals in save file format. Each line,
// including the last, ends in a newline.
func Encode(score int, gs []*goals.Goal) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(score))
	b.WriteByte('\n')
	for _, g := range gs {
		b.WriteString(g.Line())
		b.WriteByte('\n')
	}
	return b.String()
}

// Decode parses save file text. Either the whole document is returned or
// an error; a bad line never yields a partial goal list.
func Decode(text string) (*Document, error) {
	lines := strings.Split(text, "\n")

	first := -1
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, &FormatError{Line: 1, Err: errors.New("missing score line")}
	}

	score, err := parseCount(strings.TrimSpace(lines[first]))
	if err != nil {
		return nil, &FormatError{Line: first + 1, Err: fmt.Errorf("score: %w", err)}
	}

	doc := &Document{Score: score}
	for i := first + 1; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		tag, rest, ok := strings.Cut(line, goals.TagSeparator)
		if !ok {
			return nil, &FormatError{Line: i + 1, Err: fmt.Errorf("missing %q after goal tag", goals.TagSeparator)}
		}

		kind := goals.Kind(tag)
		if !kind.Valid() {
			doc.Skipped = append(doc.Skipped, SkippedLine{Line: i + 1, Tag: tag})
			continue
		}

		g, err := decodeGoal(kind, strings.Split(rest, goals.FieldSeparator))
		if err != nil {
			return nil, &FormatError{Line: i + 1, Tag: tag, Err: err}
		}
		doc.Goals = append(doc.Goals, g)
	}

	return doc, nil
}

// fieldCounts is the number of '|' separated fields each kind expects.
var fieldCounts = map[goals.Kind]int{
	goals.KindSimple:    4,
	goals.KindEternal:   3,
	goals.KindChecklist: 6,
}

func decodeGoal(kind goals.Kind, fields []string) (*goals.Goal, error) {
	if want := fieldCounts[kind]; len(fields) != want {
		return nil, fmt.Errorf("expected %d fields, got %d", want, len(fields))
	}

	points, err := parseCount(fields[2])
	if err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}
	g := &goals.Goal{
		Kind:        kind,
		Name:        fields[0],
		Description: fields[1],
		Points:      points,
	}

	switch kind {
	case goals.KindSimple:
		done, err := parseBool(fields[3])
		if err != nil {
			return nil, fmt.Errorf("isComplete: %w", err)
		}
		g.Done = done

	case goals.KindChecklist:
		nums := make([]int, 3)
		for i, name := range []string{"completedCount", "target", "bonus"} {
			n, err := parseCount(fields[3+i])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			nums[i] = n
		}
		g.Completed, g.Target, g.Bonus = nums[0], nums[1], nums[2]
	}

	return g, nil
}

// parseCount parses a non-negative decimal integer.
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d is negative", n)
	}
	return n, nil
}

func parseBool(s string) (bool, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), "true"):
		return true, nil
	case strings.EqualFold(strings.TrimSpace(s), "false"):
		return false, nil
	}
	return false, fmt.Errorf("%q is not True or False", s)
}
