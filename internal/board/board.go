package board

import (
	"fmt"
	"log/slog"
)

// NoGeese marks a board with the geese off every tile.
const NoGeese = -1

// Board is the full topology of one game: tiles, criterions and goals in flat
// arrays, linked by index.
type Board struct {
	tiles      []Tile
	criterions []Objective
	goals      []Objective
	geese      int
}

// New builds the board topology for an ordered tile list. The tiles are
// copied; tile i must carry index i. The pool must be fresh and is owned by
// the board afterwards. Any failure aborts construction.
func New(tiles []Tile, pool *Pool, geese int) (*Board, error) {
	if len(tiles) != NumTiles {
		return nil, fmt.Errorf("got %d tiles: %w", len(tiles), ErrTileCount)
	}
	for i := range tiles {
		if tiles[i].Index != i {
			return nil, fmt.Errorf("tile at position %d has index %d: %w", i, tiles[i].Index, ErrTileCount)
		}
	}
	if pool == nil || len(pool.Criterions) != NumCriterions || len(pool.Goals) != NumGoals {
		return nil, ErrPoolSize
	}
	if err := pool.checkFresh(); err != nil {
		return nil, err
	}
	if geese != NoGeese && (geese < 0 || geese >= NumTiles) {
		return nil, fmt.Errorf("geese tile %d: %w", geese, ErrOutOfRange)
	}

	s := newSweep(pool)
	if err := s.run(); err != nil {
		return nil, err
	}

	b := &Board{
		tiles:      make([]Tile, NumTiles),
		criterions: pool.Criterions,
		goals:      pool.Goals,
		geese:      geese,
	}
	copy(b.tiles, tiles)
	for i := range b.tiles {
		if err := canonicalize(&b.tiles[i], s.rawCriterions[i], s.rawGoals[i]); err != nil {
			return nil, err
		}
	}

	slog.Debug("board topology built",
		"tiles", len(b.tiles),
		"criterions", len(b.criterions),
		"goals", len(b.goals),
	)
	return b, nil
}

// Build is New with a fresh pool.
func Build(tiles []Tile, geese int) (*Board, error) {
	return New(tiles, NewPool(), geese)
}

// TileAt returns the tile at a layout index.
func (b *Board) TileAt(index int) (*Tile, error) {
	if index < 0 || index >= len(b.tiles) {
		return nil, fmt.Errorf("tile %d: %w", index, ErrOutOfRange)
	}
	return &b.tiles[index], nil
}

// CriterionAt returns the criterion with the given number.
func (b *Board) CriterionAt(number int) (*Objective, error) {
	if number < 0 || number >= len(b.criterions) {
		return nil, fmt.Errorf("criterion %d: %w", number, ErrOutOfRange)
	}
	return &b.criterions[number], nil
}

// GoalAt returns the goal with the given number.
func (b *Board) GoalAt(number int) (*Objective, error) {
	if number < 0 || number >= len(b.goals) {
		return nil, fmt.Errorf("goal %d: %w", number, ErrOutOfRange)
	}
	return &b.goals[number], nil
}

// Tiles returns the tiles in layout order.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// Criterions returns every criterion; the slice is shared with the board.
func (b *Board) Criterions() []Objective { return b.criterions }

// Goals returns every goal; the slice is shared with the board.
func (b *Board) Goals() []Objective { return b.goals }

// Geese returns the tile index holding the geese, or NoGeese.
func (b *Board) Geese() int {
	return b.geese
}

// MoveGeese places the geese on a tile.
func (b *Board) MoveGeese(tile int) error {
	if tile < 0 || tile >= len(b.tiles) {
		return fmt.Errorf("geese tile %d: %w", tile, ErrOutOfRange)
	}
	b.geese = tile
	return nil
}

// TilesWithValue returns the tiles producing on a dice total.
func (b *Board) TilesWithValue(value int) []int {
	var out []int
	for i := range b.tiles {
		if b.tiles[i].Resource != ResourceNetflix && b.tiles[i].Value == value {
			out = append(out, i)
		}
	}
	return out
}
