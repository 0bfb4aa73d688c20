package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/torus-tictactoe/internal/entity"
)

var classicLines = []entity.Line{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func TestGenerateLines(t *testing.T) {
	t.Run("Produces the twelve torus lines in generation order", func(t *testing.T) {
		// When: generating the catalog
		lines := GenerateLines()

		// Then: every row, column, wrapped diagonal and wrapped anti-diagonal appears once
		expected := []entity.Line{
			{0, 4, 8}, {0, 3, 6}, {0, 5, 7}, {0, 1, 2},
			{1, 5, 6}, {1, 4, 7}, {1, 3, 8},
			{2, 3, 7}, {2, 5, 8}, {2, 4, 6},
			{3, 4, 5}, {6, 7, 8},
		}
		assert.Equal(t, expected, lines)
	})

	t.Run("Every line has three distinct sorted cells in range", func(t *testing.T) {
		seen := make(map[entity.Line]bool)

		for _, line := range GenerateLines() {
			assert.Less(t, line[0], line[1])
			assert.Less(t, line[1], line[2])
			assert.True(t, entity.IsValidCell(line[0]))
			assert.True(t, entity.IsValidCell(line[2]))

			assert.False(t, seen[line], "duplicate line %v", line)
			seen[line] = true
		}
	})

	t.Run("Generation is deterministic", func(t *testing.T) {
		assert.Equal(t, GenerateLines(), GenerateLines())
		assert.Equal(t, GenerateLines(), Default().Lines())
	})

	t.Run("Wrapped lines exist", func(t *testing.T) {
		// Then: at least one line is not a run of consecutive row-major cells
		wrapped := 0
		for _, line := range GenerateLines() {
			if line[1]-line[0] != line[2]-line[1] {
				wrapped++
			}
		}
		assert.Positive(t, wrapped)
		assert.True(t, Default().Contains(entity.Line{7, 3, 2}))
	})
}

func TestCatalogSymmetry(t *testing.T) {
	catalog := Default()

	for rowShift := 0; rowShift < entity.Size; rowShift++ {
		for colShift := 0; colShift < entity.Size; colShift++ {
			for _, line := range catalog.Lines() {
				// Given: every cell of the line moved by the same row and column offset
				var shifted entity.Line
				for i, cell := range line {
					row, col := entity.RowCol(cell)
					shifted[i] = entity.CellIndex(row+rowShift, col+colShift)
				}

				// Then: the shifted line is still a catalog line
				assert.True(t, catalog.Contains(shifted), "shift (%d,%d) of %v gives %v", rowShift, colShift, line, shifted)
			}
		}
	}
}

func TestCatalogPairCoverage(t *testing.T) {
	catalog := Default()

	// Then: any two distinct cells share exactly one line
	for a := 0; a < entity.CellCount; a++ {
		for b := a + 1; b < entity.CellCount; b++ {
			count := 0
			for _, line := range catalog.LinesThrough(a) {
				if line.Contains(b) {
					count++
				}
			}
			assert.Equal(t, 1, count, "cells %d and %d", a, b)
		}
	}
}

func TestNewCatalog(t *testing.T) {
	t.Run("Canonicalizes and deduplicates", func(t *testing.T) {
		// Given: the same line in two orders plus another line
		catalog, err := NewCatalog(entity.Line{2, 1, 0}, entity.Line{0, 1, 2}, entity.Line{8, 4, 0})

		// Then: two sorted lines remain in first-seen order
		require.NoError(t, err)
		assert.Equal(t, []entity.Line{{0, 1, 2}, {0, 4, 8}}, catalog.Lines())
		assert.Equal(t, 2, catalog.Len())
	})

	t.Run("Rejects out of range cells", func(t *testing.T) {
		_, err := NewCatalog(entity.Line{0, 1, 9})
		require.ErrorIs(t, err, ErrInvalidLine)
	})

	t.Run("Rejects repeated cells", func(t *testing.T) {
		_, err := NewCatalog(entity.Line{4, 4, 5})
		require.ErrorIs(t, err, ErrInvalidLine)
	})

	t.Run("MustNewCatalog panics on invalid lines", func(t *testing.T) {
		assert.Panics(t, func() { MustNewCatalog(entity.Line{-1, 0, 1}) })
	})

	t.Run("Lines returns a copy", func(t *testing.T) {
		lines := Default().Lines()
		lines[0] = entity.Line{6, 7, 8}

		assert.Equal(t, entity.Line{0, 4, 8}, Default().Lines()[0])
	})
}

func TestCatalogLinesThrough(t *testing.T) {
	// Then: on the torus every cell sits on four lines
	for cell := 0; cell < entity.CellCount; cell++ {
		lines := Default().LinesThrough(cell)
		assert.Len(t, lines, 4)
		for _, line := range lines {
			assert.True(t, line.Contains(cell))
		}
	}

	assert.Nil(t, Default().LinesThrough(9))
}

func TestCatalogEvaluate(t *testing.T) {
	catalog := Default()

	t.Run("Top row", func(t *testing.T) {
		// Given: X on cells 0, 1 and 2
		board := entity.Board{entity.X, entity.X, entity.X}

		// When: evaluating the board
		outcome := catalog.Evaluate(board)

		// Then: X wins on the top row
		assert.Equal(t, entity.Win(entity.X, entity.Line{0, 1, 2}), outcome)
	})

	t.Run("Wrapped line", func(t *testing.T) {
		// Given: X on cells 2, 3 and 7, connected only through the edges
		var board entity.Board
		board[2], board[3], board[7] = entity.X, entity.X, entity.X

		// When: evaluating the board
		outcome := catalog.Evaluate(board)

		// Then: the wrap line is detected
		assert.Equal(t, entity.Win(entity.X, entity.Line{2, 3, 7}), outcome)
	})

	t.Run("First completed line in catalog order wins", func(t *testing.T) {
		// Given: a full board where X holds both {0,5,7} and {0,1,2}
		board := entity.Board{
			entity.X, entity.X, entity.X,
			entity.O, entity.O, entity.X,
			entity.O, entity.X, entity.O,
		}

		// When: evaluating the board
		outcome := catalog.Evaluate(board)

		// Then: {0,5,7} is reported since it comes first, and a win beats a full board
		assert.Equal(t, entity.Win(entity.X, entity.Line{0, 5, 7}), outcome)
	})

	t.Run("Ongoing game", func(t *testing.T) {
		board := entity.Board{entity.X, entity.O, entity.Empty, entity.Empty, entity.X}

		assert.Equal(t, entity.InProgress(), catalog.Evaluate(board))
	})

	t.Run("Every full torus board has a winner", func(t *testing.T) {
		// Given: every way to fill the board with X and O
		for mask := 0; mask < 1<<entity.CellCount; mask++ {
			var board entity.Board
			for cell := range board {
				board[cell] = entity.O
				if mask&(1<<cell) != 0 {
					board[cell] = entity.X
				}
			}

			// Then: a line is always complete, so a torus game never ends in a draw on a full board
			assert.Equal(t, entity.StatusWin, catalog.Evaluate(board).Status, "mask %09b", mask)
		}
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: the classic layout, where this full board has no line
		classic := MustNewCatalog(classicLines...)
		board := entity.Board{
			entity.O, entity.X, entity.O,
			entity.O, entity.X, entity.X,
			entity.X, entity.O, entity.X,
		}

		// When: evaluating the board
		outcome := classic.Evaluate(board)

		// Then: the game is a draw, never a win
		assert.Equal(t, entity.Draw(), outcome)
	})
}

func TestCatalogCompletes(t *testing.T) {
	// Given: O on 2 and 3
	var board entity.Board
	board[2], board[3] = entity.O, entity.O

	// Then: only cell 7 completes a line for O
	for _, cell := range board.EmptyCells() {
		assert.Equal(t, cell == 7, Default().Completes(board, cell, entity.O), "cell %d", cell)
	}

	// Then: occupied cells and empty marks never complete
	assert.False(t, Default().Completes(board, 2, entity.O))
	assert.False(t, Default().Completes(board, 7, entity.Empty))
	assert.False(t, Default().Completes(board, 7, entity.X))
}
