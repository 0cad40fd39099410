package board

import "fmt"

// Sweep geometry. The board is walked as 5 tile columns over 21 rows; each
// tile spans 4 rows of its column (cursor 0..3) and shares its cursor-0 row
// with the tile above it.
const (
	sweepHeight  = 21
	sweepColumns = 5
	centerColumn = 2
	noTile       = -1
)

// New objectives introduced per row by a tile with no active neighbour
// columns. Only the top two and bottom two rows are ever reached that way.
var (
	criterionsPerRow = [sweepHeight]int{2, 0, 4, 0, 6, 0, 6, 0, 6, 0, 6, 0, 6, 0, 6, 0, 6, 0, 4, 0, 2}
	goalsPerRow      = [sweepHeight]int{1, 2, 2, 4, 3, 6, 2, 6, 3, 6, 2, 6, 3, 6, 2, 6, 3, 4, 2, 2, 1}
)

// columnTiles lists each column's tiles top to bottom.
var columnTiles = [sweepColumns][]int{
	{3, 8, 13},
	{1, 6, 11, 16},
	{0, 4, 9, 14, 18},
	{2, 7, 12, 17},
	{5, 10, 15},
}

// columnStartCursor staggers the columns: a column's first tile becomes
// active when its cursor first reaches 0.
var columnStartCursor = [sweepColumns]int{-4, -2, 0, -2, -4}

// columnFloorRow is the row holding the bottom side of a column's last tile.
// From this row on the column no longer advances, and past it the column
// is retired.
var columnFloorRow = [sweepColumns]int{16, 18, 20, 18, 16}

// tileAbove maps each tile to the tile directly above it in its column.
var tileAbove = func() [NumTiles]int {
	var above [NumTiles]int
	for i := range above {
		above[i] = noTile
	}
	for _, col := range columnTiles {
		for j := 1; j < len(col); j++ {
			above[col[j]] = col[j-1]
		}
	}
	return above
}()

// sweep is the state of one topology pass. It is not reusable.
type sweep struct {
	pool *Pool

	cursor [sweepColumns]int
	active [sweepColumns]int // position in columnTiles, or noTile

	nextCriterion int
	nextGoal      int

	// Slot lists in visiting order, before canonicalization.
	rawCriterions [NumTiles][]int
	rawGoals      [NumTiles][]int
}

func newSweep(pool *Pool) *sweep {
	s := &sweep{pool: pool, cursor: columnStartCursor}
	for c := range s.active {
		s.active[c] = noTile
	}
	s.active[centerColumn] = 0
	return s
}

// run numbers every objective and links it to its tiles.
func (s *sweep) run() error {
	for row := 0; row < sweepHeight; row++ {
		for col := 0; col < sweepColumns; col++ {
			if tile := s.activeTile(col); tile != noTile {
				if err := s.visit(col, row, tile); err != nil {
					return err
				}
			}
		}
		s.advance(row + 1)
	}
	return s.check()
}

func (s *sweep) activeTile(col int) int {
	if col < 0 || col >= sweepColumns || s.active[col] == noTile {
		return noTile
	}
	return columnTiles[col][s.active[col]]
}

// rightOpen reports whether nothing is active to the right of col, in which
// case the objectives closing this row are not shared and must be issued now.
func (s *sweep) rightOpen(col int) bool {
	return s.activeTile(col+1) == noTile
}

// advance moves every column cursor to the given row.
func (s *sweep) advance(row int) {
	for col := 0; col < sweepColumns; col++ {
		if row > columnFloorRow[col] {
			s.active[col] = noTile
			continue
		}
		if s.cursor[col] >= 0 {
			s.cursor[col] = (s.cursor[col] + 1) % 4
		} else {
			s.cursor[col]++
		}
		if s.cursor[col] != 0 || row >= columnFloorRow[col] {
			continue
		}
		if s.active[col] == noTile {
			s.active[col] = 0
		} else if s.active[col]+1 < len(columnTiles[col]) {
			s.active[col]++
		}
	}
}

func (s *sweep) visit(col, row, tile int) error {
	lone := col > 0 && col < sweepColumns-1 &&
		s.activeTile(col-1) == noTile && s.activeTile(col+1) == noTile

	switch cur := s.cursor[col]; {
	case lone:
		for i := 0; i < criterionsPerRow[row]; i++ {
			if err := s.linkCriterion(s.nextCriterion, tile); err != nil {
				return err
			}
			s.nextCriterion++
		}
		for i := 0; i < goalsPerRow[row]; i++ {
			if err := s.linkGoal(s.nextGoal, tile); err != nil {
				return err
			}
			s.nextGoal++
		}

	case cur == 0:
		// Side shared with the tile above, unless this is the bottom of the
		// column's last tile.
		top := noTile
		if row < columnFloorRow[col] {
			top = tileAbove[tile]
		}
		for _, t := range []int{top, tile} {
			if t == noTile {
				continue
			}
			for i := 0; i < 2; i++ {
				if err := s.linkCriterion(s.nextCriterion+i, t); err != nil {
					return err
				}
			}
			if err := s.linkGoal(s.nextGoal, t); err != nil {
				return err
			}
		}
		// The right corner is reused by the next column unless it is empty.
		s.nextCriterion++
		if s.rightOpen(col) {
			s.nextCriterion++
		}
		s.nextGoal++

	case cur == 2:
		for i := 0; i < 2; i++ {
			if err := s.linkCriterion(s.nextCriterion+i, tile); err != nil {
				return err
			}
		}
		s.nextCriterion++
		if s.rightOpen(col) {
			s.nextCriterion++
		}

	default:
		for i := 0; i < 2; i++ {
			if err := s.linkGoal(s.nextGoal+i, tile); err != nil {
				return err
			}
		}
		s.nextGoal++
		if s.rightOpen(col) {
			s.nextGoal++
		}
	}
	return nil
}

func (s *sweep) linkCriterion(n, tile int) error {
	if n >= len(s.pool.Criterions) {
		return fmt.Errorf("criterion %d issued for tile %d: %w", n, tile, ErrTopology)
	}
	s.pool.Criterions[n].addTile(tile)
	s.rawCriterions[tile] = append(s.rawCriterions[tile], n)
	return nil
}

func (s *sweep) linkGoal(n, tile int) error {
	if n >= len(s.pool.Goals) {
		return fmt.Errorf("goal %d issued for tile %d: %w", n, tile, ErrTopology)
	}
	s.pool.Goals[n].addTile(tile)
	s.rawGoals[tile] = append(s.rawGoals[tile], n)
	return nil
}

// check verifies the sweep's postconditions.
func (s *sweep) check() error {
	if s.nextCriterion != NumCriterions || s.nextGoal != NumGoals {
		return fmt.Errorf("issued %d criterions and %d goals: %w", s.nextCriterion, s.nextGoal, ErrTopology)
	}
	for t := 0; t < NumTiles; t++ {
		if len(s.rawCriterions[t]) != 6 || len(s.rawGoals[t]) != 6 {
			return fmt.Errorf("tile %d has %d criterions and %d goals: %w",
				t, len(s.rawCriterions[t]), len(s.rawGoals[t]), ErrTopology)
		}
	}
	for i := range s.pool.Criterions {
		if len(s.pool.Criterions[i].tiles) == 0 {
			return fmt.Errorf("criterion %d has no tile: %w", i, ErrTopology)
		}
	}
	for i := range s.pool.Goals {
		if len(s.pool.Goals[i].tiles) == 0 {
			return fmt.Errorf("goal %d has no tile: %w", i, ErrTopology)
		}
	}
	return nil
}
