package apperror

import "errors"

var (
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrInvalidMark     = errors.New("invalid mark")
	ErrMoveOutOfRange  = errors.New("move is out of history range")
	ErrSaveInProgress  = errors.New("save is already in progress")
	ErrInvalidSnapshot = errors.New("saved game is invalid")
	ErrUnknownStorage  = errors.New("unknown storage driver")
	ErrUnknownRunMode  = errors.New("unknown run mode")
)
