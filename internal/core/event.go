package core

// EventKind identifies a discrete gameplay occurrence forwarded to the
// audio, score and wallet collaborators.
type EventKind int

const (
	EventFloorPlaced    EventKind = iota // A floor was placed and stayed
	EventFloorToppled                    // A misaligned floor detached
	EventLifeLost                        // Miss, overflow or collapse cost a life
	EventTowerCollapsed                  // The stack tipped past the hard limit
	EventGameOver                        // No lives remain
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventFloorPlaced:
		return "FloorPlaced"
	case EventFloorToppled:
		return "FloorToppled"
	case EventLifeLost:
		return "LifeLost"
	case EventTowerCollapsed:
		return "TowerCollapsed"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Direction is a lateral side, used for collapse and topple animations.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// String returns "left", "right" or "none".
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Sign returns -1 for left, 1 for right and 0 otherwise.
func (d Direction) Sign() float64 {
	switch d {
	case DirLeft:
		return -1
	case DirRight:
		return 1
	default:
		return 0
	}
}

// Event is a single occurrence emitted by a simulation tick.
type Event struct {
	Kind      EventKind
	Golden    bool      // FloorPlaced: landed within the golden tolerance
	Points    int       // FloorPlaced: score (and coins) awarded
	Direction Direction // TowerCollapsed: side the stack is sliding to
}

// Edge is a rising-edge detector. It reports true only on the tick a
// condition turns from false to true.
type Edge struct {
	prev bool
}

// Rise records cond and reports whether it just became true.
func (e *Edge) Rise(cond bool) bool {
	fired := cond && !e.prev
	e.prev = cond
	return fired
}

// Reset forgets the previous condition.
func (e *Edge) Reset() {
	e.prev = false
}
