package goals

import "strings"

// Kind identifies a goal variant. The value doubles as the tag written
// at the start of each line in a save file.
type Kind string

const (
	KindSimple    Kind = "SimpleGoal"
	KindEternal   Kind = "EternalGoal"
	KindChecklist Kind = "ChecklistGoal"
)

// AllKinds returns all goal kinds in menu order.
func AllKinds() []Kind {
	return []Kind{KindSimple, KindEternal, KindChecklist}
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindSimple:
		return "Simple Goal"
	case KindEternal:
		return "Eternal Goal"
	case KindChecklist:
		return "Checklist Goal"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindSimple:
		return "◆"
	case KindEternal:
		return "∞"
	case KindChecklist:
		return "☰"
	default:
		return "✦"
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSimple, KindEternal, KindChecklist:
		return true
	}
	return false
}

// ParseKind resolves a menu selector ("1", "2", "3"), a file tag
// ("ChecklistGoal") or a short name ("checklist") to a Kind.
func ParseKind(selector string) (Kind, bool) {
	s := strings.ToLower(strings.TrimSpace(selector))
	switch s {
	case "1", "simple", "simplegoal":
		return KindSimple, true
	case "2", "eternal", "eternalgoal":
		return KindEternal, true
	case "3", "checklist", "checklistgoal":
		return KindChecklist, true
	}
	return "", false
}
