package device

// Display is the render surface pair: the OLED text panel and the 8x8
// matrix. Implementations must tolerate being called every loop.
type Display interface {
	DrawScoreboard(score, level, lines int)
	DrawFarewell()
	ClearMatrix()
}

// Scoreboard caches the last drawn values so an unchanged feedback frame
// costs no display traffic. The -1 sentinels force the first draw.
type Scoreboard struct {
	display Display
	score   int
	level   int
}

func NewScoreboard(display Display) *Scoreboard {
	return &Scoreboard{
		display: display,
		score:   -1,
		level:   -1,
	}
}

// Update redraws only when score or level changed.
func (s *Scoreboard) Update(score, level, lines int) {
	if score == s.score && level == s.level {
		return
	}
	s.score = score
	s.level = level
	s.display.DrawScoreboard(score, level, lines)
}

// Score returns the last drawn score, the fallback for feedback frames
// that omit one.
func (s *Scoreboard) Score() int { return s.score }

// Level returns the last drawn level.
func (s *Scoreboard) Level() int { return s.level }

// Reset clears the matrix, shows the farewell screen and forgets the
// cached values.
func (s *Scoreboard) Reset() {
	s.display.ClearMatrix()
	s.display.DrawFarewell()
	s.score = -1
	s.level = -1
}
