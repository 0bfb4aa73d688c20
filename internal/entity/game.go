package entity

// Status is the terminal state of a game.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusWin
	StatusDraw
)

func (that Status) String() string {
	switch that {
	case StatusWin:
		return "win"
	case StatusDraw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Outcome is the result of evaluating a board. Winner and Line are only
// meaningful for StatusWin.
type Outcome struct {
	Status Status
	Winner Mark
	Line   Line
}

func InProgress() Outcome {
	return Outcome{Status: StatusInProgress}
}

func Win(winner Mark, line Line) Outcome {
	return Outcome{Status: StatusWin, Winner: winner, Line: line}
}

func Draw() Outcome {
	return Outcome{Status: StatusDraw}
}

func (that Outcome) IsTerminal() bool {
	return that.Status != StatusInProgress
}

// Game is the full state of one match. It is a comparable value: two games
// are identical when they compare equal with ==.
type Game struct {
	Board   Board
	Turn    Mark
	Outcome Outcome
}

// NewGame returns an empty board with X to move.
func NewGame() Game {
	return Game{
		Turn:    X,
		Outcome: InProgress(),
	}
}

func (that Game) IsFinished() bool {
	return that.Outcome.IsTerminal()
}

func (that Game) IsOngoing() bool {
	return !that.Outcome.IsTerminal()
}

func (that Game) Winner() Mark {
	if that.Outcome.Status != StatusWin {
		return Empty
	}

	return that.Outcome.Winner
}

// WinningLine returns the completed line and true when the game was won.
func (that Game) WinningLine() (Line, bool) {
	if that.Outcome.Status != StatusWin {
		return Line{}, false
	}

	return that.Outcome.Line, true
}

// MoveCount is the number of marks on the board.
func (that Game) MoveCount() int {
	return CellCount - len(that.Board.EmptyCells())
}
