package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/torus-tictactoe/internal/entity"
	"github.com/rocketscienceinc/torus-tictactoe/internal/usecase"
)

const helpText = `Torus Tic-Tac-Toe: rows and columns wrap around, so lines continue past every edge.
  <cell>             play a cell 0-8 (row*3 + col)
  <row> <col>        play by coordinates; any integers, wrapped onto the board
  new                start a new game
  mode human|computer  switch opponent and start a new game
  view flat|tiled    choose the board projection
  show               print the board again
  help               print this help
  quit               leave
`

type matchService interface {
	Snapshot() usecase.Snapshot
	Play(cell int) usecase.Snapshot
	Reset() usecase.Snapshot
	SetMode(mode entity.Mode) (usecase.Snapshot, error)
}

// Console is the terminal front end. It turns typed lines into match calls
// and prints the board whenever the match reports a change.
type Console struct {
	logger *slog.Logger

	mu   sync.Mutex
	out  io.Writer
	view View
}

func New(logger *slog.Logger, out io.Writer, view View) *Console {
	if _, ok := ParseView(string(view)); !ok {
		view = ViewFlat
	}

	return &Console{
		logger: logger.With("component", "cli"),
		out:    out,
		view:   view,
	}
}

// Render prints the snapshot. It is safe to use as the match's change hook.
func (that *Console) Render(snapshot usecase.Snapshot) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.writeLocked(render(snapshot, that.view))
}

// Run reads commands from in until quit, end of input, or ctx is done.
func (that *Console) Run(ctx context.Context, in io.Reader, match matchService) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	that.print(helpText)
	that.Render(match.Snapshot())

	for {
		select {
		case <-ctx.Done():
			that.logger.Info("console stopped", "reason", ctx.Err())
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		case line := <-lines:
			if quit := that.execute(line, match); quit {
				return nil
			}
		}
	}
}

// execute handles one input line and reports whether the user asked to quit.
func (that *Console) execute(line string, match matchService) bool {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) == 0 {
		return false
	}

	if cell, ok := parseMove(fields); ok {
		// Rejected moves are absorbed by the match and print nothing.
		match.Play(cell)
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		that.print(helpText)
	case "new", "reset":
		match.Reset()
	case "show":
		that.Render(match.Snapshot())
	case "mode":
		if len(fields) < 2 {
			that.print("usage: mode human|computer\n")
			return false
		}

		if _, err := match.SetMode(entity.Mode(strings.ToLower(fields[1]))); err != nil {
			that.logger.Debug("mode change rejected", "error", err)
			that.print(fmt.Sprintf("unknown mode %q\n", fields[1]))
		}
	case "view":
		view, ok := View(""), false
		if len(fields) > 1 {
			view, ok = ParseView(fields[1])
		}
		if !ok {
			that.print("usage: view flat|tiled\n")
			return false
		}

		that.mu.Lock()
		that.view = view
		that.mu.Unlock()
		that.Render(match.Snapshot())
	default:
		that.print(fmt.Sprintf("unrecognized input %q, type help\n", line))
	}

	return false
}

// parseMove accepts a single cell index or a row and column pair. Row and
// column wrap around the torus, the way a click anywhere on the repeated
// board lands on one of the nine cells. A lone index is passed through
// unchecked so the match can reject it.
func parseMove(fields []string) (int, bool) {
	switch len(fields) {
	case 1:
		cell, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, false
		}
		return cell, true
	case 2:
		row, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, false
		}
		col, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, false
		}
		return entity.CellIndex(row, col), true
	default:
		return 0, false
	}
}

func (that *Console) print(text string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.writeLocked(text)
}

func (that *Console) writeLocked(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
