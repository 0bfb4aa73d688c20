package usecase

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/torus-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/torus-tictactoe/internal/entity"
	"github.com/rocketscienceinc/torus-tictactoe/internal/tictactoe"
)

type botService interface {
	SelectMove(board entity.Board, own entity.Mark) (int, bool)
}

// Snapshot is a copy of everything a front end needs to draw the match.
type Snapshot struct {
	GameID       string
	Mode         entity.Mode
	ComputerMark entity.Mark
	Game         entity.Game
	Thinking     bool
}

// ComputerToMove reports whether the next move belongs to the computer.
func (that Snapshot) ComputerToMove() bool {
	return that.Mode.WithComputer() && that.Game.IsOngoing() && that.Game.Turn == that.ComputerMark
}

type Options struct {
	Mode         entity.Mode
	ComputerMark entity.Mark
	ThinkDelay   time.Duration

	// OnChange is called after every state change, outside the match lock.
	// Calls are serialized and a snapshot older than one already delivered
	// is dropped. OnChange must not call Play, Reset or SetMode.
	OnChange func(Snapshot)
}

// Match owns the game in play. Human moves go through Play; computer moves
// are scheduled after ThinkDelay and dropped if the game changed meanwhile.
type Match struct {
	logger   *slog.Logger
	catalog  *tictactoe.Catalog
	bot      botService
	delay    time.Duration
	onChange func(Snapshot)

	mu           sync.Mutex
	gameID       string
	mode         entity.Mode
	computerMark entity.Mark
	game         entity.Game
	pending      *time.Timer
	generation   uint64
	closed       bool
	changes      uint64

	notifyMu  sync.Mutex
	delivered uint64
}

func NewMatch(logger *slog.Logger, catalog *tictactoe.Catalog, bot botService, opts Options) (*Match, error) {
	if _, err := entity.ParseMode(string(opts.Mode)); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if opts.ComputerMark.IsEmpty() {
		return nil, fmt.Errorf("failed to create match: %w: computer mark is empty", entity.ErrUnknownMark)
	}

	if opts.ThinkDelay < 0 {
		return nil, fmt.Errorf("failed to create match: %w", apperror.ErrNegativeDelay)
	}

	match := &Match{
		logger:       logger.With("component", "match"),
		catalog:      catalog,
		bot:          bot,
		delay:        opts.ThinkDelay,
		onChange:     opts.OnChange,
		mode:         opts.Mode,
		computerMark: opts.ComputerMark,
	}

	match.mu.Lock()
	match.startLocked()
	match.mu.Unlock()

	return match, nil
}

func (that *Match) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// Play applies a human move for the side to move. Moves that do not fit
// the current state are ignored and only logged.
func (that *Match) Play(cell int) Snapshot {
	that.mu.Lock()

	log := that.logger.With("method", "Play", "game", that.gameID, "cell", cell)

	if err := that.humanMayPlayLocked(); err != nil {
		log.Debug("move ignored", "error", err)
		snapshot := that.snapshotLocked()
		that.mu.Unlock()

		return snapshot
	}

	mark := that.game.Turn
	next, err := that.catalog.TryMove(that.game, cell, mark)
	if err != nil {
		log.Debug("move ignored", "error", err)
		snapshot := that.snapshotLocked()
		that.mu.Unlock()

		return snapshot
	}

	that.game = next
	that.logMoveLocked(log, mark)
	that.scheduleLocked()

	snapshot, change := that.changedLocked()
	that.mu.Unlock()

	that.notify(change, snapshot)

	return snapshot
}

// Reset drops the current game, and any pending computer move, and starts
// a new one in the same mode.
func (that *Match) Reset() Snapshot {
	that.mu.Lock()

	if that.closed {
		snapshot := that.snapshotLocked()
		that.mu.Unlock()

		return snapshot
	}

	that.startLocked()

	snapshot, change := that.changedLocked()
	that.mu.Unlock()

	that.notify(change, snapshot)

	return snapshot
}

// SetMode switches between human and computer opponents. Like the menu's
// "change mode" it always starts a new game.
func (that *Match) SetMode(mode entity.Mode) (Snapshot, error) {
	if _, err := entity.ParseMode(string(mode)); err != nil {
		return that.Snapshot(), fmt.Errorf("failed to set mode: %w", err)
	}

	that.mu.Lock()

	if that.closed {
		snapshot := that.snapshotLocked()
		that.mu.Unlock()

		return snapshot, apperror.ErrMatchClosed
	}

	that.mode = mode
	that.startLocked()

	snapshot, change := that.changedLocked()
	that.mu.Unlock()

	that.notify(change, snapshot)

	return snapshot, nil
}

// Close cancels any pending computer move. Later calls are ignored.
func (that *Match) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelLocked()
	that.closed = true
}

func (that *Match) startLocked() {
	that.cancelLocked()

	that.gameID = uuid.NewString()
	that.game = tictactoe.Reset()

	that.logger.Info("new game", "game", that.gameID, "mode", that.mode, "computer", that.computerMark.String())

	that.scheduleLocked()
}

func (that *Match) humanMayPlayLocked() error {
	if that.closed {
		return apperror.ErrMatchClosed
	}

	if that.snapshotLocked().ComputerToMove() {
		return apperror.ErrNotYourTurn
	}

	return nil
}

// scheduleLocked arms the think timer when the computer is to move. The
// timer carries the generation and board it was armed for.
func (that *Match) scheduleLocked() {
	if that.closed || !that.snapshotLocked().ComputerToMove() {
		return
	}

	that.cancelLocked()

	generation := that.generation
	board := that.game.Board
	that.pending = time.AfterFunc(that.delay, func() {
		that.computerMove(generation, board)
	})
}

func (that *Match) cancelLocked() {
	if that.pending != nil {
		that.pending.Stop()
		that.pending = nil
	}

	that.generation++
}

func (that *Match) computerMove(generation uint64, board entity.Board) {
	that.mu.Lock()

	log := that.logger.With("method", "computerMove", "game", that.gameID)

	if that.closed || generation != that.generation || board != that.game.Board {
		log.Debug("stale computer move discarded")
		that.mu.Unlock()

		return
	}

	that.pending = nil

	mark := that.computerMark
	cell, ok := that.bot.SelectMove(that.game.Board, mark)
	if !ok {
		log.Warn("computer found no free cell")
		that.mu.Unlock()

		return
	}

	next, err := that.catalog.TryMove(that.game, cell, mark)
	if err != nil {
		log.Error("computer move rejected", "cell", cell, "error", err)
		that.mu.Unlock()

		return
	}

	that.game = next
	that.logMoveLocked(log.With("cell", cell), mark)

	snapshot, change := that.changedLocked()
	that.mu.Unlock()

	that.notify(change, snapshot)
}

func (that *Match) logMoveLocked(log *slog.Logger, mark entity.Mark) {
	log.Debug("move played", "mark", mark.String())

	switch that.game.Outcome.Status {
	case entity.StatusWin:
		log.Info("game won", "winner", that.game.Outcome.Winner.String(), "line", that.game.Outcome.Line)
	case entity.StatusDraw:
		log.Info("game drawn")
	}
}

func (that *Match) snapshotLocked() Snapshot {
	return Snapshot{
		GameID:       that.gameID,
		Mode:         that.mode,
		ComputerMark: that.computerMark,
		Game:         that.game,
		Thinking:     that.pending != nil,
	}
}

// changedLocked numbers a state change so notify can keep deliveries in
// the order the changes happened.
func (that *Match) changedLocked() (Snapshot, uint64) {
	that.changes++

	return that.snapshotLocked(), that.changes
}

func (that *Match) notify(change uint64, snapshot Snapshot) {
	if that.onChange == nil {
		return
	}

	that.notifyMu.Lock()
	defer that.notifyMu.Unlock()

	if change <= that.delivered {
		return
	}

	that.delivered = change
	that.onChange(snapshot)
}
