package memory

import "fmt"

// TileState is the visibility of a single tile.
type TileState int

const (
	TileHidden TileState = iota
	TileRevealed
	TileMatched
)

// String returns a human-readable name for the tile state.
func (s TileState) String() string {
	switch s {
	case TileHidden:
		return "hidden"
	case TileRevealed:
		return "revealed"
	case TileMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// Tile is one position on the board.
type Tile struct {
	Index  int
	Symbol Symbol
	State  TileState
}

// State is the turn machine's position in the current turn.
type State int

const (
	StateIdle        State = iota // no tile selected this turn
	StateOneSelected              // first tile revealed, waiting for the second
	StateLocked                   // two tiles revealed, mismatch resolution pending
	StateComplete                 // every tile matched
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOneSelected:
		return "one_selected"
	case StateLocked:
		return "locked"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome tells the caller what a selection did.
type Outcome int

const (
	OutcomeRejected    Outcome = iota // ignored, nothing changed
	OutcomeAwaitSecond                // first tile of the turn revealed
	OutcomeMatch                      // pair matched, back to idle
	OutcomeMismatch                   // pair differs, caller must schedule Resolve
	OutcomeComplete                   // last pair matched, game over
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeAwaitSecond:
		return "await_second"
	case OutcomeMatch:
		return "match"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeComplete:
		return "complete"
	default:
		return "unknown"
	}
}

const noTile = -1

// Machine is the turn state machine for one deck.
// It is not safe for concurrent use; Session serializes access.
type Machine struct {
	tiles   []Tile
	state   State
	first   int
	second  int
	moves   int
	matched int
}

// NewMachine lays out deck face-down.
func NewMachine(deck Deck) *Machine {
	tiles := make([]Tile, len(deck))
	for i, s := range deck {
		tiles[i] = Tile{Index: i, Symbol: s, State: TileHidden}
	}
	return &Machine{
		tiles:  tiles,
		state:  StateIdle,
		first:  noTile,
		second: noTile,
	}
}

// Select reveals the tile at index if the current state allows it.
func (m *Machine) Select(index int) (Outcome, error) {
	if index < 0 || index >= len(m.tiles) {
		return OutcomeRejected, fmt.Errorf("%w: index %d outside board of %d", ErrInvalidTileReference, index, len(m.tiles))
	}
	if m.tiles[index].State == TileMatched {
		return OutcomeRejected, nil
	}

	switch m.state {
	case StateIdle:
		m.tiles[index].State = TileRevealed
		m.first = index
		m.state = StateOneSelected
		return OutcomeAwaitSecond, nil

	case StateOneSelected:
		if index == m.first {
			return OutcomeRejected, nil
		}
		m.tiles[index].State = TileRevealed
		m.second = index
		m.moves++
		m.state = StateLocked
		return m.compare(), nil

	default:
		// Locked or Complete: input is ignored.
		return OutcomeRejected, nil
	}
}

// compare evaluates the locked pair.
func (m *Machine) compare() Outcome {
	a, b := &m.tiles[m.first], &m.tiles[m.second]
	if a.Symbol != b.Symbol {
		return OutcomeMismatch
	}

	a.State = TileMatched
	b.State = TileMatched
	m.matched += 2
	m.clearTurn()

	if m.matched == len(m.tiles) {
		m.state = StateComplete
		return OutcomeComplete
	}
	m.state = StateIdle
	return OutcomeMatch
}

// Resolve hides a mismatched pair and returns to idle.
// Returns false when there is no mismatch pending.
func (m *Machine) Resolve() bool {
	if m.state != StateLocked || m.first == noTile || m.second == noTile {
		return false
	}
	m.tiles[m.first].State = TileHidden
	m.tiles[m.second].State = TileHidden
	m.clearTurn()
	m.state = StateIdle
	return true
}

func (m *Machine) clearTurn() {
	m.first = noTile
	m.second = noTile
}

// State returns the current machine state.
func (m *Machine) State() State {
	return m.state
}

// Moves returns the number of completed two-tile comparisons.
func (m *Machine) Moves() int {
	return m.moves
}

// Matched returns the number of matched tiles.
func (m *Machine) Matched() int {
	return m.matched
}

// Total returns the number of tiles on the board.
func (m *Machine) Total() int {
	return len(m.tiles)
}

// Pending returns the indices of revealed tiles not yet resolved (0 to 2).
func (m *Machine) Pending() []int {
	pending := make([]int, 0, 2)
	if m.first != noTile {
		pending = append(pending, m.first)
	}
	if m.second != noTile {
		pending = append(pending, m.second)
	}
	return pending
}

// Tiles returns a copy of the board.
func (m *Machine) Tiles() []Tile {
	out := make([]Tile, len(m.tiles))
	copy(out, m.tiles)
	return out
}
