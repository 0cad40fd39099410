package board

import "fmt"

// Fixed sizes of the 19-tile board.
const (
	NumTiles      = 19
	NumCriterions = 54
	NumGoals      = 72
)

// Pool holds every criterion and goal of one board, indexed by number.
type Pool struct {
	Criterions []Objective
	Goals      []Objective
}

// NewPool allocates an unowned pool sized for the 19-tile board.
func NewPool() *Pool {
	p := &Pool{
		Criterions: make([]Objective, NumCriterions),
		Goals:      make([]Objective, NumGoals),
	}
	for i := range p.Criterions {
		p.Criterions[i] = Objective{Kind: KindCriterion, Number: i}
	}
	for i := range p.Goals {
		p.Goals[i] = Objective{Kind: KindGoal, Number: i}
	}
	return p
}

// checkFresh rejects pools that are misnumbered or already linked to tiles.
func (p *Pool) checkFresh() error {
	for i := range p.Criterions {
		o := &p.Criterions[i]
		if o.Kind != KindCriterion || o.Number != i || len(o.tiles) != 0 {
			return fmt.Errorf("criterion slot %d is not fresh: %w", i, ErrPoolSize)
		}
	}
	for i := range p.Goals {
		o := &p.Goals[i]
		if o.Kind != KindGoal || o.Number != i || len(o.tiles) != 0 {
			return fmt.Errorf("goal slot %d is not fresh: %w", i, ErrPoolSize)
		}
	}
	return nil
}
