package board

import "fmt"

// Adjacency is answered from slot positions alone: on each owning tile the
// neighbours of slot i sit at i-1 and i+1, and goal i runs between
// criterions i and i+1. No graph is stored.

// AdjacentCriterions returns the criterions one side away from criterion c.
// A rim corner has 2, every other corner 3.
func (b *Board) AdjacentCriterions(c int) ([]int, error) {
	crit, err := b.CriterionAt(c)
	if err != nil {
		return nil, err
	}
	var out []int
	for _, t := range b.owningTiles(crit) {
		slots := &b.tiles[t].criterions
		i := b.slotOf(slots, crit, t)
		out = append(out, slots[prevSlot(i)], slots[nextSlot(i)])
	}
	return dedup(out), nil
}

// AdjacentGoals returns the goals sharing a criterion with goal g.
func (b *Board) AdjacentGoals(g int) ([]int, error) {
	ends, err := b.AdjacentCriterionsToGoal(g)
	if err != nil {
		return nil, err
	}
	var out []int
	for _, c := range ends {
		goals, err := b.AdjacentGoalsToCriterion(c)
		if err != nil {
			return nil, err
		}
		for _, n := range goals {
			if n != g {
				out = append(out, n)
			}
		}
	}
	return dedup(out), nil
}

// AdjacentCriterionsToGoal returns the two criterions at the ends of goal g.
func (b *Board) AdjacentCriterionsToGoal(g int) ([]int, error) {
	goal, err := b.GoalAt(g)
	if err != nil {
		return nil, err
	}
	var out []int
	for _, t := range b.owningTiles(goal) {
		tile := &b.tiles[t]
		i := b.slotOf(&tile.goals, goal, t)
		out = append(out, tile.criterions[i], tile.criterions[nextSlot(i)])
	}
	return dedup(out), nil
}

// AdjacentGoalsToCriterion returns the goals meeting at criterion c.
func (b *Board) AdjacentGoalsToCriterion(c int) ([]int, error) {
	crit, err := b.CriterionAt(c)
	if err != nil {
		return nil, err
	}
	var out []int
	for _, t := range b.owningTiles(crit) {
		tile := &b.tiles[t]
		i := b.slotOf(&tile.criterions, crit, t)
		out = append(out, tile.goals[prevSlot(i)], tile.goals[i])
	}
	return dedup(out), nil
}

// TileHasCriterionOwnedBy reports whether the player owns a criterion on the
// tile's perimeter.
func (b *Board) TileHasCriterionOwnedBy(tile int, p Player) (bool, error) {
	if tile < 0 || tile >= len(b.tiles) {
		return false, fmt.Errorf("tile %d: %w", tile, ErrOutOfRange)
	}
	if p == NoPlayer {
		return false, nil
	}
	for i := range b.criterions {
		if b.criterions[i].Owner != p {
			continue
		}
		for _, t := range b.criterions[i].tiles {
			if t == tile {
				return true, nil
			}
		}
	}
	return false, nil
}

// owningTiles panics on an unlinked objective: New never returns one.
func (b *Board) owningTiles(o *Objective) []int {
	if len(o.tiles) == 0 {
		panic(fmt.Sprintf("board: %s %d has no owning tile", o.Kind, o.Number))
	}
	return o.tiles
}

func (b *Board) slotOf(slots *[6]int, o *Objective, tile int) int {
	i := slotIndex(slots, o.Number)
	if i < 0 {
		panic(fmt.Sprintf("board: %s %d missing from tile %d slots", o.Kind, o.Number, tile))
	}
	return i
}

func prevSlot(i int) int { return (i + 5) % 6 }
func nextSlot(i int) int { return (i + 1) % 6 }

// dedup drops repeats, keeping first-seen order.
func dedup(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := in[:0]
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
