package game

import (
	"errors"

	"github.com/plus3/blockquiz/grid"
)

// Every error below rejects the requested operation and leaves the session unchanged.
var (
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrUnknownPiece     = errors.New("unknown piece")
	ErrInvalidPhase     = errors.New("operation not allowed in current phase")
	ErrOutOfRange       = grid.ErrOutOfRange
)
