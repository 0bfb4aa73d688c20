package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/torus-tictactoe/internal/entity"
	"github.com/rocketscienceinc/torus-tictactoe/internal/usecase"
)

// View is the projection used to print the board.
type View string

const (
	// ViewFlat prints the single 3x3 board.
	ViewFlat View = "flat"
	// ViewTiled repeats the board 3x3 times so lines that wrap around an
	// edge appear as straight runs across tile borders.
	ViewTiled View = "tiled"
)

func ParseView(s string) (View, bool) {
	switch view := View(strings.ToLower(strings.TrimSpace(s))); view {
	case ViewFlat, ViewTiled:
		return view, true
	default:
		return "", false
	}
}

// cellText is three characters wide: the mark, or the cell index when empty,
// in brackets when the cell belongs to the winning line.
func cellText(game entity.Game, cell int) string {
	text := strconv.Itoa(cell)
	if mark := game.Board[cell]; !mark.IsEmpty() {
		text = mark.String()
	}

	if line, ok := game.WinningLine(); ok && line.Contains(cell) {
		return "[" + text + "]"
	}

	return " " + text + " "
}

func renderFlat(game entity.Game) string {
	var sb strings.Builder

	for row := 0; row < entity.Size; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		cells := make([]string, 0, entity.Size)
		for col := 0; col < entity.Size; col++ {
			cells = append(cells, cellText(game, entity.CellIndex(row, col)))
		}
		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderTiled(game entity.Game) string {
	var sb strings.Builder

	separator := strings.Repeat("-", 3*entity.Size)
	separator = strings.Join([]string{separator, separator, separator}, "+")

	for tileRow := 0; tileRow < entity.Size; tileRow++ {
		if tileRow > 0 {
			sb.WriteString(separator)
			sb.WriteString("\n")
		}

		for row := 0; row < entity.Size; row++ {
			tiles := make([]string, 0, entity.Size)
			for tileCol := 0; tileCol < entity.Size; tileCol++ {
				var tile strings.Builder
				for col := 0; col < entity.Size; col++ {
					tile.WriteString(cellText(game, entity.CellIndex(row, col)))
				}
				tiles = append(tiles, tile.String())
			}
			sb.WriteString(strings.Join(tiles, "|"))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Status is the one-line summary shown under the board.
func Status(snapshot usecase.Snapshot) string {
	game := snapshot.Game

	switch {
	case game.Outcome.Status == entity.StatusWin:
		return fmt.Sprintf("Winner: %s", game.Outcome.Winner)
	case game.Outcome.Status == entity.StatusDraw:
		return "Draw!"
	case snapshot.Thinking:
		return "Computer thinking..."
	case !snapshot.Mode.WithComputer():
		return fmt.Sprintf("Next player: %s", game.Turn)
	case game.Turn == snapshot.ComputerMark:
		return fmt.Sprintf("Next player: %s (Computer)", game.Turn)
	default:
		return fmt.Sprintf("Next player: %s (You)", game.Turn)
	}
}

func modeTitle(mode entity.Mode) string {
	if mode.WithComputer() {
		return "Playing vs Computer"
	}

	return "Playing vs Human"
}

func render(snapshot usecase.Snapshot, view View) string {
	board := renderFlat(snapshot.Game)
	if view == ViewTiled {
		board = renderTiled(snapshot.Game)
	}

	return fmt.Sprintf("%s\n%s%s\n", modeTitle(snapshot.Mode), board, Status(snapshot))
}
