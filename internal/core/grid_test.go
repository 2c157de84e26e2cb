package core

import "testing"

func TestGridRows(t *testing.T) {
	tests := []struct {
		cols, count, expected int
	}{
		{6, 24, 4},
		{6, 25, 5},
		{4, 2, 1},
		{6, 0, 0},
		{0, 3, 3}, // non-positive columns fall back to one
	}

	for _, tc := range tests {
		g := NewGrid(tc.cols, tc.count)
		if got := g.Rows(); got != tc.expected {
			t.Errorf("NewGrid(%d, %d).Rows() = %d, expected %d", tc.cols, tc.count, got, tc.expected)
		}
	}
}

func TestGridIndex(t *testing.T) {
	g := NewGrid(4, 10)

	tests := []struct {
		name     string
		row, col int
		expected int
	}{
		{"origin", 0, 0, 0},
		{"second row", 1, 2, 6},
		{"short last row", 2, 1, 9},
		{"past short last row", 2, 2, -1},
		{"negative row", -1, 0, -1},
		{"column overflow", 0, 4, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Index(tc.row, tc.col); got != tc.expected {
				t.Errorf("Index(%d, %d) = %d, expected %d", tc.row, tc.col, got, tc.expected)
			}
		})
	}

	row, col := g.Position(6)
	if row != 1 || col != 2 {
		t.Errorf("Position(6) = (%d, %d), expected (1, 2)", row, col)
	}
}

func TestGridMove(t *testing.T) {
	// 4 columns, 10 cells:
	//  0 1 2 3
	//  4 5 6 7
	//  8 9
	g := NewGrid(4, 10)

	tests := []struct {
		name     string
		from     int
		action   Action
		expected int
	}{
		{"right", 0, ActionRight, 1},
		{"right at edge", 3, ActionRight, 3},
		{"right past short row", 9, ActionRight, 9},
		{"left", 5, ActionLeft, 4},
		{"left at edge", 4, ActionLeft, 4},
		{"up", 5, ActionUp, 1},
		{"up at top", 2, ActionUp, 2},
		{"down", 1, ActionDown, 5},
		{"down into short row", 7, ActionDown, 9},
		{"down at bottom", 8, ActionDown, 8},
		{"non-directional", 5, ActionSelect, 5},
		{"out of range clamps", 42, ActionNone, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Move(tc.from, tc.action); got != tc.expected {
				t.Errorf("Move(%d, %v) = %d, expected %d", tc.from, tc.action, got, tc.expected)
			}
		})
	}
}

func TestGridMoveEmpty(t *testing.T) {
	g := NewGrid(6, 0)
	if got := g.Move(3, ActionDown); got != 0 {
		t.Errorf("Move on empty grid = %d, expected 0", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestActionString(t *testing.T) {
	if ActionShuffle.String() != "Shuffle" {
		t.Errorf("ActionShuffle.String() = %q", ActionShuffle.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
