package game

import "time"

// Drop delay bounds. The potentiometer maps linearly onto
// [MinDropDelay, MaxDropDelay]; the final delay is clamped to
// [MinDropDelay/2, MaxDropDelay] after applying the level cap.
const (
	MinDropDelay = 50 * time.Millisecond
	MaxDropDelay = 700 * time.Millisecond
)

// moveInterval rate-limits horizontal steps so a jittery tilt reading
// cannot shake the piece back and forth.
const moveInterval = 50 * time.Millisecond

// LevelRule ties a score threshold to a level and its gravity cap.
type LevelRule struct {
	Level    int
	Score    int
	MaxDelay time.Duration
}

// levelRules in ascending score order; the last rule whose score threshold
// is met wins, so a score exactly at a threshold selects that level.
var levelRules = []LevelRule{
	{Level: 1, Score: 0, MaxDelay: 600 * time.Millisecond},
	{Level: 2, Score: 200, MaxDelay: 500 * time.Millisecond},
	{Level: 3, Score: 600, MaxDelay: 400 * time.Millisecond},
	{Level: 4, Score: 1200, MaxDelay: 300 * time.Millisecond},
	{Level: 5, Score: 2000, MaxDelay: 200 * time.Millisecond},
}

// lineScores[n] is the base score for clearing n lines at once, before the
// level multiplier.
var lineScores = [5]int{0, 10, 20, 30, 40}
