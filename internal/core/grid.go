// Package core provides fundamental types and utilities for the memory game
// platform. It contains no external dependencies (especially no Bubble Tea)
// to keep board logic pure and testable.
package core

// Grid describes a row-major board of Count cells laid out in Cols columns.
// The last row may be partially filled.
type Grid struct {
	Cols  int
	Count int
}

// NewGrid creates a grid, treating a non-positive column count as one column.
func NewGrid(cols, count int) Grid {
	return Grid{Cols: Max(cols, 1), Count: Max(count, 0)}
}

// Rows returns the number of rows needed to hold every cell.
func (g Grid) Rows() int {
	if g.Count == 0 {
		return 0
	}
	return (g.Count + g.Cols - 1) / g.Cols
}

// Position returns the (row, col) of a cell index.
func (g Grid) Position(index int) (int, int) {
	return index / g.Cols, index % g.Cols
}

// Index returns the cell index at (row, col), or -1 if there is no such cell.
func (g Grid) Index(row, col int) int {
	if row < 0 || col < 0 || col >= g.Cols {
		return -1
	}
	i := row*g.Cols + col
	if i >= g.Count {
		return -1
	}
	return i
}

// Move returns the index reached by moving from index in the direction of a.
// Movement stops at the board edges; moving down into a short last row
// lands on its last cell. Non-directional actions return index unchanged.
func (g Grid) Move(index int, a Action) int {
	if g.Count == 0 {
		return 0
	}
	index = Clamp(index, 0, g.Count-1)
	row, col := g.Position(index)

	switch a {
	case ActionUp:
		if row > 0 {
			return index - g.Cols
		}
	case ActionDown:
		if row < g.Rows()-1 {
			return Min(index+g.Cols, g.Count-1)
		}
	case ActionLeft:
		if col > 0 {
			return index - 1
		}
	case ActionRight:
		if col < g.Cols-1 && index+1 < g.Count {
			return index + 1
		}
	}
	return index
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
