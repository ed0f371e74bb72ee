package apperror

import "errors"

var (
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrOutOfBounds       = errors.New("move out of bounds")
	ErrNoNextPlayer      = errors.New("no next player assigned")
	ErrCellOccupied      = errors.New("cell is already occupied")

	ErrGameNotFound      = errors.New("game not found")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrMissingGameID     = errors.New("game must have an id")
)
