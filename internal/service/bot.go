package service

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/torus-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/torus-tictactoe/internal/entity"
	"github.com/rocketscienceinc/torus-tictactoe/internal/tictactoe"
)

// NoMove is returned alongside false when the board has no free cell.
const NoMove = -1

type BotService interface {
	SelectMove(board entity.Board, own entity.Mark) (int, bool)
	MakeTurn(game entity.Game) (entity.Game, int, error)
}

type botService struct {
	catalog *tictactoe.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

func NewBotService(catalog *tictactoe.Catalog, rng *rand.Rand) BotService {
	return &botService{
		catalog: catalog,
		rng:     rng,
	}
}

func (that *botService) SelectMove(board entity.Board, own entity.Mark) (int, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return SelectMove(board, that.catalog, own, own.Opponent(), that.rng)
}

// MakeTurn plays the bot's choice for whoever is to move in game.
func (that *botService) MakeTurn(game entity.Game) (entity.Game, int, error) {
	if game.IsFinished() {
		return game, NoMove, apperror.ErrGameFinished
	}

	cell, ok := that.SelectMove(game.Board, game.Turn)
	if !ok {
		return game, NoMove, apperror.ErrNoAvailableMoves
	}

	next, err := that.catalog.TryMove(game, cell, game.Turn)
	if err != nil {
		return game, NoMove, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return next, cell, nil
}

// SelectMove picks a cell for own. Free cells are scanned in ascending order
// and the first rule that matches decides:
//
//  1. a cell that completes a line for own;
//  2. a cell that would complete a line for opponent;
//  3. the cell after which own has the most ways to win next turn, if any;
//  4. a cell that would hand opponent two or more ways to win next turn;
//  5. a random free cell drawn from rng.
//
// It returns NoMove and false when the board is full.
func SelectMove(board entity.Board, catalog *tictactoe.Catalog, own, opponent entity.Mark, rng *rand.Rand) (int, bool) {
	free := board.EmptyCells()
	if len(free) == 0 {
		return NoMove, false
	}

	if cell, ok := firstCompleting(board, catalog, free, own); ok {
		return cell, true
	}

	if cell, ok := firstCompleting(board, catalog, free, opponent); ok {
		return cell, true
	}

	if cell, ok := mostThreats(board, catalog, free, own); ok {
		return cell, true
	}

	if cell, ok := firstDoubleThreat(board, catalog, free, opponent); ok {
		return cell, true
	}

	return randomCell(free, rng), true
}

func firstCompleting(board entity.Board, catalog *tictactoe.Catalog, free []int, mark entity.Mark) (int, bool) {
	for _, cell := range free {
		if catalog.Completes(board, cell, mark) {
			return cell, true
		}
	}

	return NoMove, false
}

// threats counts the free cells that would complete a line for mark once
// mark also holds cell.
func threats(board entity.Board, catalog *tictactoe.Catalog, free []int, cell int, mark entity.Mark) int {
	board[cell] = mark

	count := 0
	for _, next := range free {
		if next != cell && catalog.Completes(board, next, mark) {
			count++
		}
	}

	return count
}

func mostThreats(board entity.Board, catalog *tictactoe.Catalog, free []int, mark entity.Mark) (int, bool) {
	best, bestCount := NoMove, 0
	for _, cell := range free {
		if count := threats(board, catalog, free, cell, mark); count > bestCount {
			best, bestCount = cell, count
		}
	}

	return best, bestCount > 0
}

func firstDoubleThreat(board entity.Board, catalog *tictactoe.Catalog, free []int, mark entity.Mark) (int, bool) {
	for _, cell := range free {
		if threats(board, catalog, free, cell, mark) >= 2 {
			return cell, true
		}
	}

	return NoMove, false
}

func randomCell(free []int, rng *rand.Rand) int {
	if rng == nil {
		return free[rand.Intn(len(free))] //nolint: gosec // it's ok
	}

	return free[rng.Intn(len(free))]
}
