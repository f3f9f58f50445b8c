package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func playAll(t *testing.T, controller *GameController, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.True(t, controller.Play(cell), "move at cell %d was ignored", cell)
	}
}

func TestNewGameController(t *testing.T) {
	// Given: a new controller
	controller := NewGameController()

	// Then: the history holds only the empty board and X moves first
	assert.Equal(t, []entity.Board{{}}, controller.History())
	assert.Equal(t, 0, controller.CurrentMove())
	assert.Equal(t, entity.PlayerX, controller.NextPlayer())
	assert.Equal(t, "Next player: X", controller.Status().String())
}

func TestGameController_Play(t *testing.T) {
	t.Run("Places marks alternately and appends to history", func(t *testing.T) {
		// Given: a new controller
		controller := NewGameController()

		// When: two moves are played
		playAll(t, controller, 4, 0)

		// Then: the history has three boards and X is next again
		history := controller.History()
		require.Len(t, history, 3)
		assert.Equal(t, entity.Board{e, e, e, e, x, e, e, e, e}, history[1])
		assert.Equal(t, entity.Board{o, e, e, e, x, e, e, e, e}, history[2])
		assert.Equal(t, 2, controller.CurrentMove())
		assert.Equal(t, entity.PlayerX, controller.NextPlayer())
	})

	t.Run("Ignores a move on an occupied cell", func(t *testing.T) {
		// Given: a game where cell 0 is taken
		controller := NewGameController()
		playAll(t, controller, 0)
		before := controller.History()

		// When: O tries the same cell
		accepted := controller.Play(0)

		// Then: nothing changes
		assert.False(t, accepted)
		assert.Equal(t, before, controller.History())
		assert.Equal(t, 1, controller.CurrentMove())
	})

	t.Run("Ignores out of range cells", func(t *testing.T) {
		controller := NewGameController()

		assert.False(t, controller.Play(-1))
		assert.False(t, controller.Play(9))
		assert.Equal(t, 0, controller.CurrentMove())
	})

	t.Run("Ignores moves after a win", func(t *testing.T) {
		// Given: X completes the left column
		controller := NewGameController()
		playAll(t, controller, 0, 1, 3, 4, 6)

		// Then: X is reported as winner
		status := controller.Status()
		require.True(t, status.HasWinner())
		assert.Equal(t, entity.PlayerX, status.Winner)
		assert.Equal(t, "Winner: X", status.String())

		// When: O tries another move
		board := controller.CurrentBoard()
		accepted := controller.Play(2)

		// Then: the move is ignored
		assert.False(t, accepted)
		assert.Equal(t, board, controller.CurrentBoard())
		assert.Len(t, controller.History(), 6)
	})

	t.Run("A full board without a winner reports the next player", func(t *testing.T) {
		// Given: nine moves ending in a draw
		controller := NewGameController()
		playAll(t, controller, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: there is no winner and the status still names a next player
		assert.Len(t, controller.History(), 10)
		assert.Equal(t, 9, controller.CurrentMove())
		assert.False(t, controller.Status().HasWinner())
		assert.Equal(t, "Next player: O", controller.Status().String())

		// And: no further moves are possible
		for cell := 0; cell < entity.BoardSize; cell++ {
			assert.False(t, controller.Play(cell))
		}
	})

	t.Run("Does not mutate earlier boards", func(t *testing.T) {
		controller := NewGameController()
		playAll(t, controller, 0)
		first := controller.History()

		playAll(t, controller, 1)

		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, first[1])
		assert.Equal(t, entity.Board{}, controller.History()[0])
	})
}

func TestGameController_JumpTo(t *testing.T) {
	t.Run("Moves the current position without changing history", func(t *testing.T) {
		// Given: three moves
		controller := NewGameController()
		playAll(t, controller, 0, 4, 8)

		// When: jumping back to move 1
		err := controller.JumpTo(1)

		// Then: the board of move 1 is current and O is next
		require.NoError(t, err)
		assert.Equal(t, 1, controller.CurrentMove())
		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, controller.CurrentBoard())
		assert.Equal(t, entity.PlayerO, controller.NextPlayer())
		assert.Len(t, controller.History(), 4)
	})

	t.Run("Rejects positions outside the history", func(t *testing.T) {
		controller := NewGameController()
		playAll(t, controller, 0)

		assert.ErrorIs(t, controller.JumpTo(-1), apperror.ErrMoveOutOfRange)
		assert.ErrorIs(t, controller.JumpTo(2), apperror.ErrMoveOutOfRange)
		assert.Equal(t, 1, controller.CurrentMove())
	})

	t.Run("Playing after a jump discards the future", func(t *testing.T) {
		// Given: a game jumped back to the start
		controller := NewGameController()
		playAll(t, controller, 0, 4, 8)
		require.NoError(t, controller.JumpTo(0))

		// When: a new first move is played
		playAll(t, controller, 2)

		// Then: it matches a fresh game's first move and the old future is gone
		fresh := NewGameController()
		playAll(t, fresh, 2)

		assert.Equal(t, fresh.History(), controller.History())
		assert.Equal(t, fresh.CurrentMove(), controller.CurrentMove())
	})

	t.Run("Jumping to a position before the win resumes play", func(t *testing.T) {
		controller := NewGameController()
		playAll(t, controller, 0, 1, 3, 4, 6)

		require.NoError(t, controller.JumpTo(4))

		assert.False(t, controller.Status().HasWinner())
		assert.True(t, controller.Play(2))
		assert.Len(t, controller.History(), 6)
	})
}

func TestGameController_SnapshotRestore(t *testing.T) {
	t.Run("Restore of a snapshot reproduces the game", func(t *testing.T) {
		// Given: a played and rewound game
		controller := NewGameController()
		playAll(t, controller, 0, 4, 8)
		require.NoError(t, controller.JumpTo(2))

		// When: it is snapshotted and restored into another controller
		snapshot := controller.Snapshot("2025/10/14 12:00:00")
		restored := NewGameController()
		err := restored.Restore(snapshot)

		// Then: history and position match
		require.NoError(t, err)
		assert.Equal(t, controller.History(), restored.History())
		assert.Equal(t, 2, restored.CurrentMove())
		assert.Equal(t, "2025/10/14 12:00:00", snapshot.SavedAt)
	})

	t.Run("Snapshot is detached from the controller", func(t *testing.T) {
		controller := NewGameController()
		playAll(t, controller, 0)
		snapshot := controller.Snapshot("")

		require.NoError(t, controller.JumpTo(0))
		playAll(t, controller, 5)

		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, snapshot.History[1])
	})

	t.Run("Invalid snapshot leaves the controller unchanged", func(t *testing.T) {
		// Given: a controller with one move
		controller := NewGameController()
		playAll(t, controller, 0)

		// When: restoring a snapshot whose current move is out of range
		err := controller.Restore(&entity.Snapshot{History: []entity.Board{{}}, CurrentMove: 3})

		// Then: an error is reported and the state is kept
		require.ErrorIs(t, err, apperror.ErrInvalidSnapshot)
		assert.Len(t, controller.History(), 2)
		assert.Equal(t, 1, controller.CurrentMove())
	})
}
