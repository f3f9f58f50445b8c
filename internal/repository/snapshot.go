package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository/storage"
)

var ErrSnapshotNotFound = errors.New("saved game not found")

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	Load(ctx context.Context) (*entity.Snapshot, error)
}

type keyValueStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// dbSnapshot keeps the single save slot under one fixed key.
type dbSnapshot struct {
	storage keyValueStorage
	key     string
}

func NewSnapshotRepository(storage keyValueStorage, key string) SnapshotRepository {
	return &dbSnapshot{
		storage: storage,
		key:     key,
	}
}

func (that *dbSnapshot) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.storage.Set(ctx, that.key, snapshotJSON); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (that *dbSnapshot) Load(ctx context.Context) (*entity.Snapshot, error) {
	response, err := that.storage.Get(ctx, that.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal(response, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidSnapshot, err)
	}

	if err = snapshot.Validate(); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
