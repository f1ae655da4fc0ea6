package score

// PointsPerLevel is the score needed to climb one level.
const PointsPerLevel = 10000

// LevelFor returns the level reached at the given score. Level 1 starts at 0.
func LevelFor(score int) int {
	if score < 0 {
		return 1
	}
	return score/PointsPerLevel + 1
}

// LevelUp describes a level increase. To may be more than one above From
// when a single change crosses several boundaries.
type LevelUp struct {
	From int
	To   int
}

// Tracker accumulates points and derives the level from them.
type Tracker struct {
	score int
	level int
}

// NewTracker creates a tracker at score 0, level 1.
func NewTracker() *Tracker {
	return &Tracker{level: 1}
}

// Score returns the accumulated score.
func (t *Tracker) Score() int {
	return t.score
}

// Level returns the current level.
func (t *Tracker) Level() int {
	return t.level
}

// Add accumulates points and reports a level-up if one happened.
// Negative points are ignored; no goal ever takes points away.
func (t *Tracker) Add(points int) (LevelUp, bool) {
	if points <= 0 {
		return LevelUp{}, false
	}
	return t.set(t.score + points)
}

// SetScore replaces the score outright, as after loading a save file.
// A lower score lowers the level without a notification.
func (t *Tracker) SetScore(score int) (LevelUp, bool) {
	if score < 0 {
		score = 0
	}
	return t.set(score)
}

func (t *Tracker) set(score int) (LevelUp, bool) {
	prev := t.level
	t.score = score
	t.level = LevelFor(score)
	if t.level > prev {
		return LevelUp{From: prev, To: t.level}, true
	}
	return LevelUp{}, false
}

// Progress returns how far the score is into the current level and the
// points still needed to reach the next one.
func (t *Tracker) Progress() (into, remaining int) {
	into = t.score % PointsPerLevel
	return into, PointsPerLevel - into
}
