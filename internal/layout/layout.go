// Package layout produces the ordered tile list a board is built from:
// seeded generation, board files, and checks on resource and value counts.
package layout

import (
	"fmt"

	"github.com/talgya/watan/internal/board"
)

// Layout is the tile content of one board plus the starting geese tile.
// Tile order is all the topology needs.
type Layout struct {
	Tiles []board.Tile
	Geese int
}

// Build validates the layout and constructs its board.
func (l Layout) Build() (*board.Board, error) {
	if err := Validate(l.Tiles); err != nil {
		return nil, err
	}
	b, err := board.Build(l.Tiles, l.Geese)
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}
	return b, nil
}

// FromBoard recovers the layout of a built board.
func FromBoard(b *board.Board) Layout {
	l := Layout{Tiles: make([]board.Tile, board.NumTiles), Geese: b.Geese()}
	for i, t := range b.Tiles() {
		l.Tiles[i] = board.NewTile(t.Index, t.Resource, t.Value)
	}
	return l
}

// Standard tile mix.
var (
	resourceCounts = [board.NumResources]int{
		board.ResourceCaffeine: 4,
		board.ResourceLab:      4,
		board.ResourceLecture:  4,
		board.ResourceStudy:    3,
		board.ResourceTutorial: 3,
		board.ResourceNetflix:  1,
	}
	// Values for the 18 producing tiles; Netflix always holds NetflixValue.
	valueCounts = map[int]int{
		2: 1, 3: 2, 4: 2, 5: 2, 6: 2,
		8: 2, 9: 2, 10: 2, 11: 2, 12: 1,
	}
)

// Validate checks a tile list against the standard mix.
func Validate(tiles []board.Tile) error {
	if len(tiles) != board.NumTiles {
		return fmt.Errorf("layout has %d tiles, want %d: %w", len(tiles), board.NumTiles, ErrInvalidLayout)
	}
	var resources [board.NumResources]int
	values := make(map[int]int)
	for i, t := range tiles {
		if t.Index != i {
			return fmt.Errorf("tile %d carries index %d: %w", i, t.Index, ErrInvalidLayout)
		}
		if int(t.Resource) >= board.NumResources {
			return fmt.Errorf("tile %d: %s: %w", i, t.Resource, ErrInvalidLayout)
		}
		resources[t.Resource]++
		if t.Resource == board.ResourceNetflix {
			if t.Value != board.NetflixValue {
				return fmt.Errorf("netflix tile %d has value %d: %w", i, t.Value, ErrInvalidLayout)
			}
			continue
		}
		values[t.Value]++
	}
	for r, want := range resourceCounts {
		if resources[r] != want {
			return fmt.Errorf("%d %s tiles, want %d: %w", resources[r], board.Resource(r), want, ErrInvalidLayout)
		}
	}
	for v, n := range values {
		if valueCounts[v] != n {
			return fmt.Errorf("%d tiles with value %d, want %d: %w", n, v, valueCounts[v], ErrInvalidLayout)
		}
	}
	return nil
}
