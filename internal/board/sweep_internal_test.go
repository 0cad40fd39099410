package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSweep(t *testing.T) *sweep {
	t.Helper()
	s := newSweep(NewPool())
	require.NoError(t, s.run())
	return s
}

func TestSweep_RawOrder(t *testing.T) {
	s := runSweep(t)
	assert.Equal(t, []int{0, 1, 3, 4, 8, 9}, s.rawCriterions[0])
	assert.Equal(t, []int{0, 1, 2, 6, 7, 10}, s.rawGoals[0])
	assert.Equal(t, []int{6, 7, 12, 13, 18, 19}, s.rawCriterions[3])
	assert.Equal(t, []int{9, 12, 13, 20, 21, 26}, s.rawGoals[3])
	assert.Equal(t, []int{44, 45, 49, 50, 52, 53}, s.rawCriterions[18])
	assert.Equal(t, []int{61, 64, 65, 69, 70, 71}, s.rawGoals[18])
}

// Numbers are issued in order of first encounter, so each tile's raw list is
// ascending and every number's first owner is reached in row order.
func TestSweep_AscendingIssue(t *testing.T) {
	s := runSweep(t)
	for tile := 0; tile < NumTiles; tile++ {
		assert.IsIncreasing(t, s.rawCriterions[tile], "tile %d criterions", tile)
		assert.IsIncreasing(t, s.rawGoals[tile], "tile %d goals", tile)
	}
	assert.Equal(t, NumCriterions, s.nextCriterion)
	assert.Equal(t, NumGoals, s.nextGoal)
}

func TestSweep_ColumnsRetire(t *testing.T) {
	s := runSweep(t)
	for col := 0; col < sweepColumns; col++ {
		assert.Equal(t, noTile, s.activeTile(col), "column %d", col)
	}
}

func TestTileAbove(t *testing.T) {
	assert.Equal(t, noTile, tileAbove[0])
	assert.Equal(t, 0, tileAbove[4])
	assert.Equal(t, 14, tileAbove[18])
	assert.Equal(t, 3, tileAbove[8])
	assert.Equal(t, noTile, tileAbove[5])
	assert.Equal(t, 10, tileAbove[15])

	// Tiles above sit one step up in the layout.
	for tile, above := range tileAbove {
		if above == noTile {
			continue
		}
		assert.Equal(t, HexCoord{Q: tileCoords[tile].Q, R: tileCoords[tile].R - 1}, tileCoords[above], "tile %d", tile)
	}
}

func TestCanonicalize_WrongLength(t *testing.T) {
	tile := NewTile(0, ResourceLab, 8)
	err := canonicalize(&tile, []int{1, 2, 3}, []int{1, 2, 3, 4, 5, 6})
	assert.ErrorIs(t, err, ErrTopology)
}

func TestLinkBeyondPool(t *testing.T) {
	s := newSweep(NewPool())
	assert.ErrorIs(t, s.linkCriterion(NumCriterions, 0), ErrTopology)
	assert.ErrorIs(t, s.linkGoal(NumGoals, 0), ErrTopology)
}

func TestSweep_IncompleteFailsCheck(t *testing.T) {
	s := newSweep(NewPool())
	assert.ErrorIs(t, s.check(), ErrTopology)
}

func TestQueryOnUnlinkedObjectivePanics(t *testing.T) {
	b := &Board{
		tiles:      make([]Tile, NumTiles),
		criterions: NewPool().Criterions,
		goals:      NewPool().Goals,
	}
	assert.Panics(t, func() { _, _ = b.AdjacentCriterions(0) })
	assert.Panics(t, func() { _, _ = b.AdjacentCriterionsToGoal(0) })
}

func TestDedup(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, dedup([]int{3, 1, 3, 2, 1}))
	assert.Empty(t, dedup(nil))
}
