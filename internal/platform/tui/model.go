package tui

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/core"
	"github.com/vovakirdan/tui-memory/internal/memory"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

// ModelOptions configures a board model.
type ModelOptions struct {
	Store   *storage.Store // nil keeps the best time in memory only
	Game    config.MemoryConfig
	Runtime core.RuntimeConfig
	Logger  *log.Logger

	// Scheduler drives the timers behind the update loop. nil means real timers.
	Scheduler memory.Scheduler

	// OnResult, if set, receives every completed game.
	OnResult func(memory.Result)
}

// Model is the Bubble Tea model for the memory board.
type Model struct {
	session *memory.Session
	loop    *LoopScheduler
	keys    *KeyMapper
	help    help.Model
	game    config.MemoryConfig
	pool    []memory.Symbol
	grid    core.Grid
	config  core.RuntimeConfig

	cursor         int
	confirmRestart bool
	overlayClosed  bool   // completion overlay dismissed for the current game
	status         string // feedback for the last action
	quitting       bool
}

// NewModel creates a board model and deals the first game.
func NewModel(opts ModelOptions) (Model, error) {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	loop := NewLoopScheduler(opts.Scheduler)
	sessOpts := memory.Options{
		Scheduler:     loop,
		Rand:          rand.New(rand.NewSource(cfg.Seed)),
		MismatchDelay: opts.Game.MismatchDelay(),
		Logger:        logger,
	}
	if opts.Store != nil {
		sessOpts.Best = opts.Store.BestStore()
		sessOpts.Recorder = opts.Store
	} else {
		sessOpts.Best = memory.NewKVBestStore(memory.NewMemoryKV())
	}
	session := memory.NewSession(sessOpts)
	if opts.OnResult != nil {
		session.OnResult(opts.OnResult)
	}

	pool := make([]memory.Symbol, len(opts.Game.Symbols))
	for i, s := range opts.Game.Symbols {
		pool[i] = memory.Symbol(s)
	}

	if err := session.NewGame(opts.Game.Board.TotalCards, pool); err != nil {
		loop.Close()
		return Model{}, fmt.Errorf("cannot deal board: %w", err)
	}

	return Model{
		session: session,
		loop:    loop,
		keys:    NewKeyMapper(),
		help:    help.New(),
		game:    opts.Game,
		pool:    pool,
		grid:    core.NewGrid(opts.Game.Board.Columns, opts.Game.Board.TotalCards),
		config:  cfg,
	}, nil
}

// Init starts listening for scheduled callbacks.
func (m Model) Init() tea.Cmd {
	return m.loop.waitForTask()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case taskMsg:
		msg.fn()
		return m, m.loop.waitForTask()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.status = ""

	if m.confirmRestart {
		switch action {
		case core.ActionConfirm:
			m.confirmRestart = false
			return m.restart(), nil
		case core.ActionBack, core.ActionShuffle: // n answers "no"
			m.confirmRestart = false
		}
		return m, nil
	}

	snap := m.session.Snapshot()
	if snap.Result != nil && !m.overlayClosed {
		switch action {
		case core.ActionSelect, core.ActionRestart, core.ActionShuffle, core.ActionConfirm:
			return m.newGame(), nil
		case core.ActionBack:
			m.overlayClosed = true
		}
		return m, nil
	}

	switch action {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.cursor = m.grid.Move(m.cursor, action)
	case core.ActionSelect:
		m = m.flip()
	case core.ActionRestart:
		if snap.State == memory.StateComplete {
			return m.restart(), nil
		}
		m.confirmRestart = true
	case core.ActionShuffle:
		return m.newGame(), nil
	}

	return m, nil
}

// flip reveals the tile under the cursor.
func (m Model) flip() Model {
	outcome, err := m.session.Select(m.cursor)
	if err != nil {
		m.status = err.Error()
		return m
	}

	switch outcome {
	case memory.OutcomeMatch:
		m.status = "Match!"
	case memory.OutcomeMismatch:
		m.status = "No match"
	}
	return m
}

// newGame deals a fresh board from the configured pool.
func (m Model) newGame() Model {
	if err := m.session.NewGame(m.game.Board.TotalCards, m.pool); err != nil {
		m.status = err.Error()
		return m
	}
	m.overlayClosed = false
	return m
}

// restart replays the current board configuration.
func (m Model) restart() Model {
	if err := m.session.Restart(); err != nil {
		m.status = err.Error()
		return m
	}
	m.overlayClosed = false
	return m
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return renderView(m)
}

// Session returns the game session driven by this model.
func (m Model) Session() *memory.Session {
	return m.session
}

// Cursor returns the index of the focused tile.
func (m Model) Cursor() int {
	return m.cursor
}

// Close cancels the session's timers and releases the update loop.
func (m Model) Close() {
	m.session.Close()
	m.loop.Close()
}

// Run starts the Bubble Tea program for a local game.
func Run(opts ModelOptions) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
