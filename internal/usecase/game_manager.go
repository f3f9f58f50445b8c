package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const (
	NoticeRestart = "Starting the game. Decide who plays 'O' and who plays 'X'."
	NoticeSaved   = "Game saved!"
	NoticeLoaded  = "Saved game loaded!"
	NoticeNoSave  = "No saved game found."
)

type snapshotRepo interface {
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	Load(ctx context.Context) (*entity.Snapshot, error)
}

// GameManager serialises access to a single game and connects it to the save slot.
type GameManager struct {
	logger       *slog.Logger
	snapshotRepo snapshotRepo

	mu         sync.Mutex
	controller *tictactoe.GameController

	saving          atomic.Bool
	saveDelay       time.Duration
	timestampLayout string
	now             func() time.Time
}

func NewGameManager(logger *slog.Logger, snapshotRepo snapshotRepo, controller *tictactoe.GameController, conf config.Game) *GameManager {
	return &GameManager{
		logger:       logger.With("component", "game_manager"),
		snapshotRepo: snapshotRepo,

		controller: controller,

		saveDelay:       conf.SaveDelay,
		timestampLayout: conf.TimestampLayout,
		now:             time.Now,
	}
}

func (that *GameManager) State(_ context.Context) *entity.GameView {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.view("")
}

// Play - forwards a cell click to the controller. Ignored moves are not errors.
func (that *GameManager) Play(_ context.Context, cell int) (*entity.GameView, error) {
	log := that.logger.With("method", "Play", "cell", cell)

	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.controller.Play(cell) {
		log.Debug("move ignored", "current_move", that.controller.CurrentMove())
		return that.view(""), nil
	}

	log.Info("move accepted", "current_move", that.controller.CurrentMove(), "status", that.controller.Status().String())

	return that.view(""), nil
}

func (that *GameManager) JumpTo(_ context.Context, move int) (*entity.GameView, error) {
	log := that.logger.With("method", "JumpTo", "move", move)

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.controller.JumpTo(move); err != nil {
		return nil, fmt.Errorf("failed to jump: %w", err)
	}

	log.Info("jumped in history")

	if move == 0 {
		return that.view(NoticeRestart), nil
	}

	return that.view(""), nil
}

// Save - writes the game as it was when Save was called. The write happens
// after the configured delay, during which Saving reports true.
func (that *GameManager) Save(ctx context.Context) (*entity.GameView, error) {
	log := that.logger.With("method", "Save")

	if !that.saving.CompareAndSwap(false, true) {
		return nil, apperror.ErrSaveInProgress
	}

	that.mu.Lock()
	snapshot := that.controller.Snapshot("")
	that.mu.Unlock()

	err := that.commit(ctx, snapshot)
	that.saving.Store(false)

	if err != nil {
		log.Error("could not save game", "error", err)
		return nil, err
	}

	log.Info("game saved", "current_move", snapshot.CurrentMove, "saved_at", snapshot.SavedAt)

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.view(NoticeSaved), nil
}

// Load - replaces the game with the saved one. A missing save only produces a notice.
func (that *GameManager) Load(ctx context.Context) (*entity.GameView, error) {
	log := that.logger.With("method", "Load")

	snapshot, err := that.snapshotRepo.Load(ctx)
	if errors.Is(err, repository.ErrSnapshotNotFound) {
		log.Info("nothing to load")

		that.mu.Lock()
		defer that.mu.Unlock()

		return that.view(NoticeNoSave), nil
	}

	if err != nil {
		log.Error("could not load game", "error", err)
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.controller.Restore(snapshot); err != nil {
		log.Error("could not restore game", "error", err)
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	log.Info("game loaded", "current_move", snapshot.CurrentMove, "saved_at", snapshot.SavedAt)

	return that.view(NoticeLoaded), nil
}

func (that *GameManager) Saving() bool {
	return that.saving.Load()
}

func (that *GameManager) commit(ctx context.Context, snapshot *entity.Snapshot) error {
	if that.saveDelay > 0 {
		timer := time.NewTimer(that.saveDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return fmt.Errorf("save interrupted: %w", ctx.Err())
		case <-timer.C:
		}
	}

	snapshot.SavedAt = that.now().Format(that.timestampLayout)

	if err := that.snapshotRepo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// view must be called with mu held.
func (that *GameManager) view(notice string) *entity.GameView {
	history := that.controller.History()
	entries := make([]entity.HistoryEntry, len(history))

	for move, board := range history {
		entries[move] = entity.HistoryEntry{
			Move:        move,
			Description: entity.DescribeMove(move),
			Board:       board,
		}
	}

	status := that.controller.Status()

	return &entity.GameView{
		Board:       that.controller.CurrentBoard(),
		History:     entries,
		CurrentMove: that.controller.CurrentMove(),
		Status:      status.String(),
		Winner:      status.Winner,
		NextPlayer:  status.Next,
		Saving:      that.saving.Load(),
		Notice:      notice,
	}
}
