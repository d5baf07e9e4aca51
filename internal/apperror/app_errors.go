package apperror

import "errors"

var (
	ErrMalformedBoard = errors.New("malformed board")
	ErrNoActiveGame   = errors.New("no active game")
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrNameRequired   = errors.New("player name is required")
	ErrGameInProgress = errors.New("game is still in progress")
)
