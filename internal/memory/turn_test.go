package memory

import (
	"errors"
	"testing"
)

// indicesOf returns the board positions holding sym.
func indicesOf(deck Deck, sym Symbol) []int {
	var out []int
	for i, s := range deck {
		if s == sym {
			out = append(out, i)
		}
	}
	return out
}

func TestMachineMatchAndComplete(t *testing.T) {
	deck := Deck{"A", "B", "B", "A"}
	m := NewMachine(deck)

	steps := []struct {
		index   int
		outcome Outcome
		state   State
		moves   int
		matched int
	}{
		{0, OutcomeAwaitSecond, StateOneSelected, 0, 0},
		{3, OutcomeMatch, StateIdle, 1, 2},
		{1, OutcomeAwaitSecond, StateOneSelected, 1, 2},
		{2, OutcomeComplete, StateComplete, 2, 4},
	}

	for i, st := range steps {
		got, err := m.Select(st.index)
		if err != nil {
			t.Fatalf("step %d: Select(%d) error: %v", i, st.index, err)
		}
		if got != st.outcome {
			t.Errorf("step %d: outcome = %s, want %s", i, got, st.outcome)
		}
		if m.State() != st.state {
			t.Errorf("step %d: state = %s, want %s", i, m.State(), st.state)
		}
		if m.Moves() != st.moves || m.Matched() != st.matched {
			t.Errorf("step %d: moves/matched = %d/%d, want %d/%d", i, m.Moves(), m.Matched(), st.moves, st.matched)
		}
	}

	for _, tile := range m.Tiles() {
		if tile.State != TileMatched {
			t.Errorf("tile %d state = %s, want matched", tile.Index, tile.State)
		}
	}
}

func TestMachineMismatchLocksUntilResolved(t *testing.T) {
	m := NewMachine(Deck{"A", "B", "A", "B"})

	m.Select(0)
	got, _ := m.Select(1)
	if got != OutcomeMismatch {
		t.Fatalf("outcome = %s, want mismatch", got)
	}
	if m.State() != StateLocked {
		t.Fatalf("state = %s, want locked", m.State())
	}

	// Third selection while locked is ignored.
	got, err := m.Select(2)
	if err != nil || got != OutcomeRejected {
		t.Errorf("select while locked = %s, %v; want rejected", got, err)
	}
	if m.Tiles()[2].State != TileHidden {
		t.Error("tile revealed while locked")
	}
	if m.Moves() != 1 {
		t.Errorf("moves = %d, want 1", m.Moves())
	}
	if n := len(m.Pending()); n != 2 {
		t.Errorf("pending = %d, want 2", n)
	}

	if !m.Resolve() {
		t.Fatal("Resolve() returned false with a pending mismatch")
	}
	if m.State() != StateIdle {
		t.Errorf("state after resolve = %s, want idle", m.State())
	}
	tiles := m.Tiles()
	if tiles[0].State != TileHidden || tiles[1].State != TileHidden {
		t.Error("mismatched tiles not hidden after resolve")
	}
	if len(m.Pending()) != 0 {
		t.Error("turn not cleared after resolve")
	}
	if m.Resolve() {
		t.Error("second Resolve() should be a no-op")
	}
}

func TestMachineRejections(t *testing.T) {
	m := NewMachine(Deck{"A", "A", "B", "B"})

	m.Select(0)
	if got, _ := m.Select(0); got != OutcomeRejected {
		t.Errorf("reselecting first tile = %s, want rejected", got)
	}
	if m.Moves() != 0 {
		t.Errorf("moves after reselect = %d, want 0", m.Moves())
	}

	m.Select(1) // match
	if got, _ := m.Select(0); got != OutcomeRejected {
		t.Errorf("selecting matched tile from idle = %s, want rejected", got)
	}

	m.Select(2)
	if got, _ := m.Select(1); got != OutcomeRejected {
		t.Errorf("selecting matched tile as second = %s, want rejected", got)
	}
	if m.State() != StateOneSelected {
		t.Errorf("state = %s, want one_selected", m.State())
	}

	m.Select(3) // complete
	if got, _ := m.Select(2); got != OutcomeRejected {
		t.Errorf("select after complete = %s, want rejected", got)
	}
}

func TestMachineInvalidTileReference(t *testing.T) {
	m := NewMachine(Deck{"A", "A"})

	for _, idx := range []int{-1, 2, 100} {
		_, err := m.Select(idx)
		if !errors.Is(err, ErrInvalidTileReference) {
			t.Errorf("Select(%d) error = %v, want ErrInvalidTileReference", idx, err)
		}
	}
	if m.State() != StateIdle {
		t.Errorf("state changed after invalid selection: %s", m.State())
	}
}

func TestMachineNeverHoldsMoreThanTwo(t *testing.T) {
	deck := Deck{"A", "B", "C", "A", "B", "C"}
	m := NewMachine(deck)

	// Hammer the board with selections, resolving mismatches as they occur.
	seq := []int{0, 1, 2, 3, 4, 5, 0, 3, 1, 4, 2, 5}
	moves := 0
	for _, idx := range seq {
		before := m.State()
		got, _ := m.Select(idx)
		if before == StateOneSelected && got != OutcomeRejected {
			moves++
		}
		if n := len(m.Pending()); n > 2 {
			t.Fatalf("pending = %d after selecting %d", n, idx)
		}
		if got == OutcomeMismatch {
			m.Resolve()
		}
	}
	if m.Moves() != moves {
		t.Errorf("moves = %d, want %d", m.Moves(), moves)
	}
	if m.State() != StateComplete {
		t.Errorf("state = %s, want complete", m.State())
	}
}
