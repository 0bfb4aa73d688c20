package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/torus-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/torus-tictactoe/internal/entity"
)

// Reset returns a fresh game: empty board, X to move.
func Reset() entity.Game {
	return entity.NewGame()
}

// Evaluate checks board against the torus catalog.
func Evaluate(board entity.Board) entity.Outcome {
	return Default().Evaluate(board)
}

// ApplyMove plays mark on cell using the torus catalog. Rejected moves leave
// the game untouched.
func ApplyMove(game entity.Game, cell int, mark entity.Mark) entity.Game {
	return Default().ApplyMove(game, cell, mark)
}

// TryMove is ApplyMove on the torus catalog that also says why a move was
// rejected.
func TryMove(game entity.Game, cell int, mark entity.Mark) (entity.Game, error) {
	return Default().TryMove(game, cell, mark)
}

func (that *Catalog) ApplyMove(game entity.Game, cell int, mark entity.Mark) entity.Game {
	next, err := that.TryMove(game, cell, mark)
	if err != nil {
		return game
	}

	return next
}

// TryMove validates and plays a move. On error the returned game is the
// input game, unchanged.
func (that *Catalog) TryMove(game entity.Game, cell int, mark entity.Mark) (entity.Game, error) {
	if err := validateMove(game, mark, cell); err != nil {
		return game, fmt.Errorf("invalid turn: %w", err)
	}

	game.Board[cell] = mark
	updateGameStatus(&game, that.Evaluate(game.Board), mark)

	return game, nil
}

// validateMove - checks if the move is valid.
func validateMove(game entity.Game, mark entity.Mark, cell int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if mark.IsEmpty() {
		return fmt.Errorf("%w: empty mark", entity.ErrUnknownMark)
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if !game.Board[cell].IsEmpty() {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - fixes the outcome after a move or passes the turn.
func updateGameStatus(game *entity.Game, outcome entity.Outcome, mark entity.Mark) {
	game.Outcome = outcome
	if !outcome.IsTerminal() {
		game.Turn = mark.Opponent()
	}
}
