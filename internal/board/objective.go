package board

import "fmt"

// Kind tells criterions and goals apart.
type Kind uint8

const (
	KindCriterion Kind = iota // A tile corner
	KindGoal                  // A tile side, between two criterions
)

func (k Kind) String() string {
	switch k {
	case KindCriterion:
		return "criterion"
	case KindGoal:
		return "goal"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Player identifies who claimed an objective.
type Player uint8

const (
	NoPlayer Player = iota
	PlayerBlue
	PlayerRed
	PlayerOrange
	PlayerYellow
)

// NumPlayers is the number of seats at the table.
const NumPlayers = 4

// AllPlayers lists the seats in turn order.
var AllPlayers = [NumPlayers]Player{PlayerBlue, PlayerRed, PlayerOrange, PlayerYellow}

var playerNames = [...]string{"NONE", "BLUE", "RED", "ORANGE", "YELLOW"}

func (p Player) String() string {
	if int(p) < len(playerNames) {
		return playerNames[p]
	}
	return fmt.Sprintf("Player(%d)", uint8(p))
}

// Level is the completion level of a criterion.
type Level uint8

const (
	LevelNone Level = iota
	LevelAssignment
	LevelMidterm
	LevelExam
)

var levelNames = [...]string{"NONE", "ASSIGNMENT", "MIDTERM", "EXAM"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// Objective is a criterion or a goal. Ownership and level change during play;
// the owning tiles are fixed once the board is built.
type Objective struct {
	Kind   Kind   `json:"kind"`
	Number int    `json:"number"`
	Owner  Player `json:"owner"`
	Level  Level  `json:"level"` // Always LevelNone for goals

	tiles []int
}

// kindRule holds the per-kind behaviour applied to objectives.
type kindRule struct {
	// onClaim runs after the owner is set.
	onClaim func(o *Objective)
	// maxLevel is the highest level the kind can reach.
	maxLevel Level
}

var kindRules = [...]kindRule{
	KindCriterion: {
		onClaim:  func(o *Objective) { o.Level = LevelAssignment },
		maxLevel: LevelExam,
	},
	KindGoal: {
		onClaim:  func(o *Objective) {},
		maxLevel: LevelNone,
	},
}

// Tiles returns the indices of the tiles whose perimeter holds the objective.
func (o *Objective) Tiles() []int {
	out := make([]int, len(o.tiles))
	copy(out, o.tiles)
	return out
}

// Claimed reports whether a player owns the objective.
func (o *Objective) Claimed() bool {
	return o.Owner != NoPlayer
}

// Claim gives the objective to a player. Whether the player may build here
// is decided by the caller.
func (o *Objective) Claim(p Player) error {
	if p == NoPlayer {
		return ErrNoPlayer
	}
	if o.Claimed() {
		return fmt.Errorf("%s %d owned by %s: %w", o.Kind, o.Number, o.Owner, ErrAlreadyClaimed)
	}
	o.Owner = p
	kindRules[o.Kind].onClaim(o)
	return nil
}

// Improve raises a claimed criterion one completion level.
func (o *Objective) Improve() error {
	if !o.Claimed() || o.Level >= kindRules[o.Kind].maxLevel {
		return fmt.Errorf("%s %d at %s: %w", o.Kind, o.Number, o.Level, ErrNotImprovable)
	}
	o.Level++
	return nil
}

// Restore overlays saved ownership onto a freshly built objective.
func (o *Objective) Restore(p Player, level Level) error {
	if level > kindRules[o.Kind].maxLevel {
		return fmt.Errorf("%s %d cannot hold %s: %w", o.Kind, o.Number, level, ErrNotImprovable)
	}
	if err := o.Claim(p); err != nil {
		return err
	}
	if o.Kind == KindCriterion && level > LevelNone {
		o.Level = level
	}
	return nil
}

func (o *Objective) addTile(tile int) {
	o.tiles = append(o.tiles, tile)
}
