package board

import "fmt"

// The sweep meets a tile's corners as top pair, middle pair, bottom pair and
// its sides as top, upper pair, lower pair, bottom, each pair left to right.
// These permutations turn that into clockwise order from the top-left corner
// and the top side.
var (
	criterionCircularOrder = [6]int{0, 1, 3, 5, 4, 2}
	goalCircularOrder      = [6]int{0, 2, 4, 5, 3, 1}
)

// canonicalize writes the circular slot order of one tile from its raw
// sweep lists.
func canonicalize(t *Tile, rawCriterions, rawGoals []int) error {
	if len(rawCriterions) != 6 || len(rawGoals) != 6 {
		return fmt.Errorf("tile %d: %d criterions, %d goals: %w",
			t.Index, len(rawCriterions), len(rawGoals), ErrTopology)
	}
	for i, src := range criterionCircularOrder {
		t.criterions[i] = rawCriterions[src]
	}
	for i, src := range goalCircularOrder {
		t.goals[i] = rawGoals[src]
	}
	return nil
}
