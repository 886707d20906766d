package game

// State is where a session stands from the engine's point of view.
type State int

const (
	Active State = iota
	Won
	Stuck
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Stuck:
		return "stuck"
	default:
		return "active"
	}
}

// Session is a grid plus the cumulative score. It is a value: every move
// produces a new Session.
type Session struct {
	grid  Grid
	score int
}

// NewSession starts a game on an empty size×size grid with two random tiles.
func NewSession(size int, rnd RandomSource) Session {
	session := Session{grid: NewEmptyGrid(size)}
	for range InitialTileCount {
		session = session.SpawnTile(rnd)
	}
	return session
}

// NewSessionFromGrid resumes play on an existing grid, mostly for tests and
// scripted positions.
func NewSessionFromGrid(grid Grid, score int) Session {
	return Session{grid: grid, score: score}
}

func (s Session) Grid() Grid {
	return s.grid
}

func (s Session) Score() int {
	return s.score
}

// Slide moves every tile in direction and adds the merge total to the score.
// No tile is spawned.
func (s Session) Slide(direction Direction) (Session, int) {
	grid, delta := s.grid.Slide(direction)
	return Session{grid: grid, score: s.score + delta}, delta
}

// Apply is one player move: slide, score, then spawn a tile. The spawn
// happens whether or not the slide changed anything, and is skipped only
// when the grid is full.
func (s Session) Apply(direction Direction, rnd RandomSource) Session {
	next, _ := s.Slide(direction)
	return next.SpawnTile(rnd)
}

// SpawnTile places a 2 or a 4 on a uniformly chosen blank cell. A full grid
// is returned unchanged.
func (s Session) SpawnTile(rnd RandomSource) Session {
	blanks := s.grid.BlankPositions()
	if len(blanks) == 0 {
		return s
	}
	pos := blanks[rnd.Pick(len(blanks))]
	value := SpawnValues[rnd.Pick(len(SpawnValues))]
	return Session{grid: s.grid.WithTile(pos, NumberTile(value)), score: s.score}
}

func (s Session) IsComplete() bool {
	return s.grid.Contains(WinningTile)
}

// IsStuck reports whether no direction changes the grid. Slides are tested
// without spawning.
func (s Session) IsStuck() bool {
	for _, direction := range AllDirections {
		if s.CanMove(direction) {
			return false
		}
	}
	return true
}

func (s Session) CanMove(direction Direction) bool {
	slid, _ := s.grid.Slide(direction)
	return !slid.Equal(s.grid)
}

func (s Session) State() State {
	switch {
	case s.IsComplete():
		return Won
	case s.IsStuck():
		return Stuck
	default:
		return Active
	}
}
