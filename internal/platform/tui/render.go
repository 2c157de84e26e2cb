package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-memory/internal/core"
	"github.com/vovakirdan/tui-memory/internal/memory"
)

const hiddenFace = "░░"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	tileStyle = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("57")).
			Padding(1, 3).
			Align(lipgloss.Center)
)

// renderView lays out the title, HUD, board and footer, or the completion
// overlay once the game is won.
func renderView(m Model) string {
	snap := m.session.Snapshot()

	var content string
	if snap.Result != nil && !m.overlayClosed {
		content = renderOverlay(*snap.Result)
	} else {
		content = lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("MEMORY"),
			hudStyle.Render(renderHUD(snap)),
			"",
			renderBoard(snap, m.grid, m.cursor),
			"",
			renderFooter(m, snap),
		)
	}

	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return content
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, content)
}

// renderHUD renders moves, elapsed time and the best time.
func renderHUD(snap memory.Snapshot) string {
	return fmt.Sprintf("Moves %d   Time %s   Best %s",
		snap.Moves, memory.FormatTime(snap.Elapsed), bestText(snap.Best, snap.HasBest))
}

func bestText(best int, ok bool) string {
	if !ok {
		return "--"
	}
	return memory.FormatTime(best)
}

// renderBoard renders the tiles row by row.
func renderBoard(snap memory.Snapshot, grid core.Grid, cursor int) string {
	if len(snap.Tiles) == 0 {
		return ""
	}

	rows := make([]string, 0, grid.Rows())
	for r := range grid.Rows() {
		cells := make([]string, 0, grid.Cols)
		for c := range grid.Cols {
			i := grid.Index(r, c)
			if i < 0 || i >= len(snap.Tiles) {
				break
			}
			cells = append(cells, renderTile(snap.Tiles[i], i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderTile(t memory.Tile, focused bool) string {
	style := tileStyle
	face := hiddenFace

	switch t.State {
	case memory.TileRevealed:
		face = string(t.Symbol)
		style = style.BorderForeground(lipgloss.Color("6"))
	case memory.TileMatched:
		face = string(t.Symbol)
		style = style.BorderForeground(lipgloss.Color("2")).Faint(true)
	}

	if focused {
		style = style.
			BorderForeground(lipgloss.Color("229")).
			BorderStyle(lipgloss.ThickBorder()).
			Faint(false)
	}
	return style.Render(face)
}

// renderFooter renders the focused tile's label, feedback or prompt, and help.
func renderFooter(m Model, snap memory.Snapshot) string {
	var b strings.Builder

	if m.cursor < len(snap.Tiles) {
		t := snap.Tiles[m.cursor]
		b.WriteString(statusStyle.Render(tileLabel(t, len(snap.Tiles))))
		b.WriteString("\n")
	}

	switch {
	case m.confirmRestart:
		b.WriteString(promptStyle.Render("Restart the current game? (y/n)"))
	case m.status != "":
		b.WriteString(promptStyle.Render(m.status))
	case snap.State == memory.StateComplete:
		b.WriteString(promptStyle.Render("All pairs found. Press n for a new board."))
	default:
		b.WriteString(" ")
	}
	b.WriteString("\n")

	b.WriteString(statusStyle.Render(m.help.View(m.keys.Keys())))
	return b.String()
}

// tileLabel returns the basic accessible label of a tile.
func tileLabel(t memory.Tile, total int) string {
	label := fmt.Sprintf("Memory card %d of %d, %s", t.Index+1, total, t.State)
	if t.State != memory.TileHidden {
		label += " " + string(t.Symbol)
	}
	return label
}

// renderOverlay renders the completion dialog.
func renderOverlay(r memory.Result) string {
	lines := []string{
		titleStyle.Render("You found all pairs!"),
		"",
		fmt.Sprintf("Moves: %d", r.Moves),
		fmt.Sprintf("Time:  %s", memory.FormatTime(r.Seconds)),
	}
	if r.IsNewBest {
		lines = append(lines, promptStyle.Render("New best time!"))
	} else {
		lines = append(lines, fmt.Sprintf("Best:  %s", memory.FormatTime(r.Best)))
	}
	lines = append(lines, "", statusStyle.Render("enter play again • esc close • q quit"))

	return overlayStyle.Render(strings.Join(lines, "\n"))
}
