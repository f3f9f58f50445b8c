package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
)

// Mark is the content of a single cell. The zero value is an empty cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const BoardSize = 9

// WinCombos lists every row, column and diagonal in the order they are checked.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that Mark) IsEmpty() bool {
	return that == EmptyCell
}

func (that Mark) Valid() bool {
	return that == EmptyCell || that == PlayerX || that == PlayerO
}

// MarshalJSON - encodes an empty cell as null.
func (that Mark) MarshalJSON() ([]byte, error) {
	if that.IsEmpty() {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = EmptyCell
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidMark, data)
	}

	mark := Mark(raw)
	if mark.IsEmpty() || !mark.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, raw)
	}

	*that = mark

	return nil
}

// Board is one snapshot of the grid, row-major. It is a value type: placing a
// mark returns a new Board and leaves the receiver untouched.
type Board [BoardSize]Mark

// Place returns a copy of the board with mark set at cell.
func (that Board) Place(cell int, mark Mark) (Board, error) {
	if cell < 0 || cell >= BoardSize {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	that[cell] = mark

	return that, nil
}

// Winner - returns the mark occupying a full line, or EmptyCell.
// Boards holding two different winning lines are not detected.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that Board) IsEmpty() bool {
	for _, cell := range that {
		if !cell.IsEmpty() {
			return false
		}
	}

	return true
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells []Mark
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("could not decode board: %w", err)
	}

	if len(cells) != BoardSize {
		return fmt.Errorf("%w: board has %d cells", apperror.ErrInvalidSnapshot, len(cells))
	}

	copy(that[:], cells)

	return nil
}

// PlayerForMove - X moves on even move numbers, O on odd.
func PlayerForMove(move int) Mark {
	if move%2 == 0 {
		return PlayerX
	}

	return PlayerO
}

// Status describes the current board: either a winner or whose turn it is.
// A full board without a winner still reports the next player.
type Status struct {
	Winner Mark
	Next   Mark
}

func (that Status) HasWinner() bool {
	return !that.Winner.IsEmpty()
}

func (that Status) String() string {
	if that.HasWinner() {
		return "Winner: " + string(that.Winner)
	}

	return "Next player: " + string(that.Next)
}
