package board

import (
	"fmt"
	"strings"
)

// Resource is the resource type produced by a tile.
type Resource uint8

const (
	ResourceCaffeine Resource = iota
	ResourceLab
	ResourceLecture
	ResourceStudy
	ResourceTutorial
	ResourceNetflix // Produces nothing and carries no dice number
)

// NumResources counts every resource kind, Netflix included.
const NumResources = 6

// NetflixValue is the value recorded for the Netflix tile.
// Seven is never paid out, so it doubles as the "no number" sentinel.
const NetflixValue = 7

var resourceNames = [NumResources]string{
	"CAFFEINE", "LAB", "LECTURE", "STUDY", "TUTORIAL", "NETFLIX",
}

func (r Resource) String() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return fmt.Sprintf("Resource(%d)", uint8(r))
}

// ParseResource accepts a resource name in any case.
func ParseResource(s string) (Resource, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range resourceNames {
		if name == upper {
			return Resource(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource %q", s)
}

// Tile is one hex of the board. Its slot arrays are written once during
// board construction and never change afterwards.
type Tile struct {
	Index    int      `json:"index"`
	Resource Resource `json:"resource"`
	Value    int      `json:"value"`

	// Canonical circular order, clockwise from the top.
	criterions [6]int
	goals      [6]int
}

// NewTile creates a tile at a fixed layout index. Slots are empty until the
// tile is passed to New.
func NewTile(index int, resource Resource, value int) Tile {
	return Tile{Index: index, Resource: resource, Value: value}
}

// Coord returns the tile's layout position.
func (t *Tile) Coord() HexCoord {
	c, _ := CoordOf(t.Index)
	return c
}

// CriterionSlots returns the tile's criterions in circular order.
// Slot i and i+1 (mod 6) are neighbouring corners.
func (t *Tile) CriterionSlots() [6]int {
	return t.criterions
}

// GoalSlots returns the tile's goals in circular order. The goal in slot i
// runs between the criterions in slots i and i+1.
func (t *Tile) GoalSlots() [6]int {
	return t.goals
}

// Pips returns how many of the 36 two-dice outcomes roll the tile's value.
func (t *Tile) Pips() int {
	if t.Resource == ResourceNetflix || t.Value < 2 || t.Value > 12 {
		return 0
	}
	return 6 - abs(7-t.Value)
}

func (t *Tile) String() string {
	if t.Resource == ResourceNetflix {
		return fmt.Sprintf("tile %d (%s)", t.Index, t.Resource)
	}
	return fmt.Sprintf("tile %d (%s %d)", t.Index, t.Resource, t.Value)
}

func slotIndex(slots *[6]int, n int) int {
	for i, v := range slots {
		if v == n {
			return i
		}
	}
	return -1
}
