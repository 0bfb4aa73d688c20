package entity

const (
	Size      = 3
	CellCount = Size * Size
)

// Board is the 3x3 grid stored row-major: cell = row*3 + col.
type Board [CellCount]Mark

// Line is a winning triple of cell indices, sorted ascending.
type Line [3]int

// CellIndex maps a row and column to a cell index, wrapping both
// coordinates onto the torus so any integer pair resolves to a cell.
func CellIndex(row, col int) int {
	return wrap(row)*Size + wrap(col)
}

// RowCol splits a cell index into its row and column.
func RowCol(cell int) (int, int) {
	return cell / Size, cell % Size
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < CellCount
}

func wrap(v int) int {
	return ((v % Size) + Size) % Size
}

// EmptyCells returns the free cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, CellCount)
	for i, mark := range that {
		if mark.IsEmpty() {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsFull() bool {
	for _, mark := range that {
		if mark.IsEmpty() {
			return false
		}
	}

	return true
}

// Holds reports whether every cell of the line carries mark.
func (that Board) Holds(line Line, mark Mark) bool {
	return that[line[0]] == mark && that[line[1]] == mark && that[line[2]] == mark
}

// Contains reports whether cell is one of the line's cells.
func (that Line) Contains(cell int) bool {
	return that[0] == cell || that[1] == cell || that[2] == cell
}
