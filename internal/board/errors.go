package board

import "errors"

var (
	// ErrTileCount is returned when the tile list is not exactly NumTiles long
	// or a tile sits at the wrong index.
	ErrTileCount = errors.New("board: tile list does not match the 19-tile layout")
	// ErrPoolSize is returned when an objective pool has the wrong size.
	ErrPoolSize = errors.New("board: objective pool has the wrong size")
	// ErrTopology is returned when the sweep cannot satisfy its postconditions.
	ErrTopology = errors.New("board: topology sweep failed")
	// ErrOutOfRange is returned for tile or objective numbers off the board.
	ErrOutOfRange = errors.New("board: number out of range")

	// ErrAlreadyClaimed is returned when claiming an owned objective.
	ErrAlreadyClaimed = errors.New("board: objective already claimed")
	// ErrNoPlayer is returned when claiming on behalf of NoPlayer.
	ErrNoPlayer = errors.New("board: no player given")
	// ErrNotImprovable is returned when an objective cannot be raised a level.
	ErrNotImprovable = errors.New("board: objective cannot be improved")
)
