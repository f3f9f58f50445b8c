package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// GameController owns the move history and the position currently shown.
// It is not safe for concurrent use.
type GameController struct {
	history     []entity.Board
	currentMove int
}

func NewGameController() *GameController {
	return &GameController{
		history: []entity.Board{{}},
	}
}

// Play - places the next player's mark at cell. Moves on an occupied cell, out of
// range, or on a board that already has a winner are ignored and report false.
// Any history after the current move is discarded.
func (that *GameController) Play(cell int) bool {
	current := that.CurrentBoard()

	if cell < 0 || cell >= entity.BoardSize {
		return false
	}

	if !current[cell].IsEmpty() || !current.Winner().IsEmpty() {
		return false
	}

	next, err := current.Place(cell, that.NextPlayer())
	if err != nil {
		return false
	}

	history := make([]entity.Board, that.currentMove+1, that.currentMove+2)
	copy(history, that.history[:that.currentMove+1])

	that.history = append(history, next)
	that.currentMove = len(that.history) - 1

	return true
}

// JumpTo - moves the current position without touching the history.
func (that *GameController) JumpTo(move int) error {
	if move < 0 || move >= len(that.history) {
		return fmt.Errorf("%w: move %d, history length %d", apperror.ErrMoveOutOfRange, move, len(that.history))
	}

	that.currentMove = move

	return nil
}

func (that *GameController) NextPlayer() entity.Mark {
	return entity.PlayerForMove(that.currentMove)
}

func (that *GameController) Status() entity.Status {
	if winner := that.CurrentBoard().Winner(); !winner.IsEmpty() {
		return entity.Status{Winner: winner}
	}

	return entity.Status{Next: that.NextPlayer()}
}

func (that *GameController) CurrentBoard() entity.Board {
	return that.history[that.currentMove]
}

func (that *GameController) CurrentMove() int {
	return that.currentMove
}

// History - returns a copy of the history log.
func (that *GameController) History() []entity.Board {
	history := make([]entity.Board, len(that.history))
	copy(history, that.history)

	return history
}

// Snapshot - captures the history and current move for persistence.
func (that *GameController) Snapshot(savedAt string) *entity.Snapshot {
	return &entity.Snapshot{
		History:     that.History(),
		CurrentMove: that.currentMove,
		SavedAt:     savedAt,
	}
}

// Restore - replaces history and current move with the snapshot's.
// The snapshot is validated first; on error the controller is left unchanged.
func (that *GameController) Restore(snapshot *entity.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("could not restore game: %w", err)
	}

	history := make([]entity.Board, len(snapshot.History))
	copy(history, snapshot.History)

	that.history = history
	that.currentMove = snapshot.CurrentMove

	return nil
}
