package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
)

// Snapshot is the persisted record of a game. The JSON shape is shared with
// saves written by the browser version of the game and must not change.
type Snapshot struct {
	History     []Board `json:"history"`
	CurrentMove int     `json:"currentMove"`
	SavedAt     string  `json:"savedAt"`
}

// Validate - checks that the snapshot describes a history reachable by legal play.
func (that *Snapshot) Validate() error {
	if len(that.History) == 0 {
		return fmt.Errorf("%w: history is empty", apperror.ErrInvalidSnapshot)
	}

	if !that.History[0].IsEmpty() {
		return fmt.Errorf("%w: history does not start from an empty board", apperror.ErrInvalidSnapshot)
	}

	for move := 1; move < len(that.History); move++ {
		if err := validateTransition(that.History[move-1], that.History[move], PlayerForMove(move-1)); err != nil {
			return fmt.Errorf("%w: move %d: %w", apperror.ErrInvalidSnapshot, move, err)
		}
	}

	if that.CurrentMove < 0 || that.CurrentMove >= len(that.History) {
		return fmt.Errorf("%w: current move %d outside history of %d", apperror.ErrInvalidSnapshot, that.CurrentMove, len(that.History))
	}

	return nil
}

func validateTransition(prev, next Board, mark Mark) error {
	changed := -1

	for cell := range prev {
		if prev[cell] == next[cell] {
			continue
		}

		if changed != -1 {
			return fmt.Errorf("cells %d and %d both changed", changed, cell)
		}

		changed = cell
	}

	switch {
	case changed == -1:
		return errors.New("board did not change")
	case !prev[changed].IsEmpty():
		return fmt.Errorf("cell %d was already occupied", changed)
	case next[changed] != mark:
		return fmt.Errorf("cell %d holds %q, expected %q", changed, next[changed], mark)
	}

	return nil
}
