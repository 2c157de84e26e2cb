package memory

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultMismatchDelay is how long a mismatched pair stays face-up.
const DefaultMismatchDelay = 900 * time.Millisecond

// Result summarizes a completed game.
type Result struct {
	GameID     string
	TotalCards int
	Moves      int
	Seconds    int
	IsNewBest  bool
	Best       int // best time after this game was taken into account
	FinishedAt time.Time
}

// Options configures a Session. Only Scheduler is required.
type Options struct {
	Scheduler     Scheduler
	Best          BestScoreStore // nil means best times are not persisted
	Recorder      ResultRecorder // optional history of completed games
	Rand          *rand.Rand     // nil means seeded from the current time
	MismatchDelay time.Duration  // zero means DefaultMismatchDelay
	Logger        *log.Logger
}

// Snapshot is a read-only view of the session for render surfaces.
// Symbols of hidden tiles are blanked.
type Snapshot struct {
	GameID  string
	Tiles   []Tile
	State   State
	Moves   int
	Matched int
	Total   int
	Elapsed int
	Best    int
	HasBest bool
	Result  *Result
}

// Session owns one game at a time: its deck, turn machine, clock and the
// pending mismatch resolution.
type Session struct {
	mu       sync.Mutex
	sched    Scheduler
	best     BestScoreStore
	recorder ResultRecorder
	rng      *rand.Rand
	delay    time.Duration
	logger   *log.Logger

	clock   *Clock
	machine *Machine
	gen     uint64
	pending Task

	gameID     string
	totalCards int
	pool       []Symbol
	bestTime   int
	hasBest    bool
	last       *Result

	onResult []func(Result)
	onTick   []func(seconds int)
	onChange []func()
}

// NewSession creates a session with no game in progress.
func NewSession(opts Options) *Session {
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.MismatchDelay <= 0 {
		opts.MismatchDelay = DefaultMismatchDelay
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Session{
		sched:    opts.Scheduler,
		best:     opts.Best,
		recorder: opts.Recorder,
		rng:      opts.Rand,
		delay:    opts.MismatchDelay,
		logger:   opts.Logger,
		clock:    NewClock(opts.Scheduler),
	}
	s.clock.OnTick(s.handleTick)

	s.mu.Lock()
	s.refreshBestLocked()
	s.mu.Unlock()

	return s
}

// OnResult registers fn to receive every completed game.
func (s *Session) OnResult(fn func(Result)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResult = append(s.onResult, fn)
}

// OnTick registers fn to receive the elapsed seconds once per clock tick.
func (s *Session) OnTick(fn func(seconds int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTick = append(s.onTick, fn)
}

// OnChange registers fn to be called whenever the board changes.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// NewGame starts a fresh game, abandoning any game in progress.
// If the deck cannot be built the current game is left untouched.
func (s *Session) NewGame(totalCards int, pool []Symbol) error {
	s.mu.Lock()
	deck, err := Build(totalCards, pool, s.rng)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.cancelPendingLocked()
	s.gen++
	s.machine = NewMachine(deck)
	s.gameID = uuid.NewString()
	s.totalCards = totalCards
	s.pool = append(s.pool[:0], pool...)
	s.last = nil
	s.refreshBestLocked()
	s.clock.Restart()

	s.logger.Debug("new game", "game_id", s.gameID, "cards", totalCards)
	observers := s.changeObserversLocked()
	s.mu.Unlock()

	notify(observers)
	return nil
}

// Restart starts a new game with the configuration of the last one, or the
// default board when no game has been started yet.
func (s *Session) Restart() error {
	s.mu.Lock()
	total, pool := s.totalCards, append([]Symbol(nil), s.pool...)
	s.mu.Unlock()

	if total == 0 {
		total, pool = DefaultTotalCards, DefaultSymbols
	}
	return s.NewGame(total, pool)
}

// Select forwards a tile selection to the turn machine.
func (s *Session) Select(index int) (Outcome, error) {
	s.mu.Lock()
	if s.machine == nil {
		s.mu.Unlock()
		return OutcomeRejected, fmt.Errorf("%w: no game in progress", ErrInvalidTileReference)
	}

	outcome, err := s.machine.Select(index)
	if err != nil || outcome == OutcomeRejected {
		s.mu.Unlock()
		return outcome, err
	}

	var result *Result
	switch outcome {
	case OutcomeMismatch:
		gen := s.gen
		s.pending = s.sched.AfterFunc(s.delay, func() { s.resolveMismatch(gen) })
	case OutcomeComplete:
		result = s.finishLocked()
	}

	changed := s.changeObserversLocked()
	resultObservers := append([]func(Result){}, s.onResult...)
	s.mu.Unlock()

	notify(changed)
	if result != nil {
		for _, fn := range resultObservers {
			fn(*result)
		}
	}
	return outcome, nil
}

// resolveMismatch hides the pending pair unless the game it belongs to has
// been replaced in the meantime.
func (s *Session) resolveMismatch(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.machine == nil {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	if !s.machine.Resolve() {
		s.mu.Unlock()
		return
	}
	observers := s.changeObserversLocked()
	s.mu.Unlock()

	notify(observers)
}

// finishLocked stops the clock, updates the best time and records the game.
// Must be called with s.mu held.
func (s *Session) finishLocked() *Result {
	s.clock.Stop()

	r := Result{
		GameID:     s.gameID,
		TotalCards: s.machine.Total(),
		Moves:      s.machine.Moves(),
		Seconds:    s.clock.Elapsed(),
		FinishedAt: time.Now(),
	}

	s.updateBestLocked(&r)
	r.Best = s.bestTime

	if s.recorder != nil {
		if err := s.recorder.RecordResult(r); err != nil {
			s.logger.Warn("could not record result", "game_id", r.GameID, "error", err)
		}
	}

	s.logger.Info("game complete",
		"game_id", r.GameID,
		"moves", r.Moves,
		"seconds", r.Seconds,
		"new_best", r.IsNewBest,
	)

	s.last = &r
	return &r
}

// updateBestLocked decides whether r is a new best. With a store the
// compare and write happen atomically there, so sessions sharing a store
// never raise its best. If the store fails, r is judged against the last
// best this session saw and the store is left untouched.
// Must be called with s.mu held.
func (s *Session) updateBestLocked(r *Result) {
	if s.best != nil {
		improved, best, err := s.best.ImproveBestTime(r.Seconds)
		if err == nil {
			r.IsNewBest = improved
			s.bestTime, s.hasBest = best, true
			return
		}
		s.logger.Warn("could not update best time", "error", err)
	}

	if !s.hasBest || r.Seconds < s.bestTime {
		r.IsNewBest = true
		s.bestTime = r.Seconds
		s.hasBest = true
	}
}

// refreshBestLocked reloads the best time from the store. A failing store
// reads as "no best". Must be called with s.mu held.
func (s *Session) refreshBestLocked() {
	if s.best == nil {
		return
	}
	seconds, ok, err := s.best.BestTime()
	if err != nil {
		s.logger.Warn("could not read best time", "error", err)
		s.hasBest = false
		return
	}
	s.bestTime, s.hasBest = seconds, ok
}

func (s *Session) cancelPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *Session) handleTick(seconds int) {
	s.mu.Lock()
	observers := append([]func(int){}, s.onTick...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(seconds)
	}
}

func (s *Session) changeObserversLocked() []func() {
	return append([]func(){}, s.onChange...)
}

func notify(observers []func()) {
	for _, fn := range observers {
		fn()
	}
}

// Snapshot returns a copy of the current game for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		GameID:  s.gameID,
		Elapsed: s.clock.Elapsed(),
		Best:    s.bestTime,
		HasBest: s.hasBest,
	}
	if s.last != nil {
		r := *s.last
		snap.Result = &r
	}
	if s.machine == nil {
		return snap
	}

	snap.Tiles = s.machine.Tiles()
	for i := range snap.Tiles {
		if snap.Tiles[i].State == TileHidden {
			snap.Tiles[i].Symbol = ""
		}
	}
	snap.State = s.machine.State()
	snap.Moves = s.machine.Moves()
	snap.Matched = s.machine.Matched()
	snap.Total = s.machine.Total()
	return snap
}

// LastResult returns the result of the current game once it is complete.
func (s *Session) LastResult() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

// Elapsed returns the clock's current value.
func (s *Session) Elapsed() int {
	return s.clock.Elapsed()
}

// Close cancels every scheduled task. The session can be reused with NewGame.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPendingLocked()
	s.gen++
	s.clock.Stop()
}
