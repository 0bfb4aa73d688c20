package tictactoe

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rocketscienceinc/torus-tictactoe/internal/entity"
)

var ErrInvalidLine = errors.New("invalid line")

// Catalog is an ordered, read-only set of winning lines. The order is the
// order in which lines were first produced and decides which line is
// reported when a board completes more than one.
type Catalog struct {
	lines  []entity.Line
	byCell [entity.CellCount][]entity.Line
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return MustNewCatalog(GenerateLines()...)
})

// Default returns the torus catalog shared by the whole process.
func Default() *Catalog {
	return defaultCatalog()
}

// GenerateLines walks every start cell in every one of the eight directions,
// wrapping rows and columns, and keeps each distinct sorted triple once.
// Opposite directions and different starting cells yield the same triple,
// so the dedup is what brings 72 walks down to the 12 torus lines.
func GenerateLines() []entity.Line {
	seen := make(map[entity.Line]struct{})
	lines := make([]entity.Line, 0, 4*entity.Size)

	for start := 0; start < entity.CellCount; start++ {
		startRow, startCol := entity.RowCol(start)

		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}

				var line entity.Line
				for step := 0; step < entity.Size; step++ {
					line[step] = entity.CellIndex(startRow+dx*step, startCol+dy*step)
				}

				line = canonical(line)
				if _, ok := seen[line]; ok {
					continue
				}

				seen[line] = struct{}{}
				lines = append(lines, line)
			}
		}
	}

	return lines
}

// NewCatalog builds a catalog from explicit lines. Lines are sorted and
// deduplicated, keeping the first occurrence.
func NewCatalog(lines ...entity.Line) (*Catalog, error) {
	catalog := &Catalog{lines: make([]entity.Line, 0, len(lines))}
	seen := make(map[entity.Line]struct{}, len(lines))

	for _, line := range lines {
		if err := validateLine(line); err != nil {
			return nil, err
		}

		line = canonical(line)
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}

		catalog.lines = append(catalog.lines, line)
		for _, cell := range line {
			catalog.byCell[cell] = append(catalog.byCell[cell], line)
		}
	}

	return catalog, nil
}

func MustNewCatalog(lines ...entity.Line) *Catalog {
	catalog, err := NewCatalog(lines...)
	if err != nil {
		panic(fmt.Errorf("failed to build catalog: %w", err))
	}

	return catalog
}

// Lines returns a copy of the catalog in evaluation order.
func (that *Catalog) Lines() []entity.Line {
	return slices.Clone(that.lines)
}

func (that *Catalog) Len() int {
	return len(that.lines)
}

func (that *Catalog) Contains(line entity.Line) bool {
	return slices.Contains(that.lines, canonical(line))
}

// LinesThrough returns the lines that pass through cell, in catalog order.
func (that *Catalog) LinesThrough(cell int) []entity.Line {
	if !entity.IsValidCell(cell) {
		return nil
	}

	return slices.Clone(that.byCell[cell])
}

// Evaluate reports the first completed line in catalog order, then a draw
// when the board is full, otherwise a game in progress.
func (that *Catalog) Evaluate(board entity.Board) entity.Outcome {
	for _, line := range that.lines {
		mark := board[line[0]]
		if !mark.IsEmpty() && board.Holds(line, mark) {
			return entity.Win(mark, line)
		}
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}

// Completes reports whether placing mark on the empty cell finishes a line
// for mark. The board itself is not changed.
func (that *Catalog) Completes(board entity.Board, cell int, mark entity.Mark) bool {
	if !entity.IsValidCell(cell) || !board[cell].IsEmpty() || mark.IsEmpty() {
		return false
	}

	board[cell] = mark
	for _, line := range that.byCell[cell] {
		if board.Holds(line, mark) {
			return true
		}
	}

	return false
}

func validateLine(line entity.Line) error {
	for _, cell := range line {
		if !entity.IsValidCell(cell) {
			return fmt.Errorf("%w: cell %d out of range in %v", ErrInvalidLine, cell, line)
		}
	}

	if line[0] == line[1] || line[1] == line[2] || line[0] == line[2] {
		return fmt.Errorf("%w: repeated cell in %v", ErrInvalidLine, line)
	}

	return nil
}

func canonical(line entity.Line) entity.Line {
	slices.Sort(line[:])
	return line
}
