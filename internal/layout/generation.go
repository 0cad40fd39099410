// Seeded tile generation. Randomness comes only from the seed in GenConfig.
package layout

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/watan/internal/board"
)

// Style selects how resources are spread over the board.
type Style string

const (
	StyleRandom    Style = "random"    // Uniform shuffle of the standard mix
	StyleClustered Style = "clustered" // Like resources grouped along a noise field
)

// ParseStyle accepts "random" or "clustered".
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleRandom, StyleClustered:
		return Style(s), nil
	}
	return "", fmt.Errorf("unknown layout style %q", s)
}

// GenConfig holds layout generation parameters.
type GenConfig struct {
	Seed       int64
	Style      Style
	NoiseScale float64 // Sampling frequency for StyleClustered
}

// DefaultGenConfig returns a random layout with seed 0.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Style:      StyleRandom,
		NoiseScale: 0.35,
	}
}

// Generate deals the standard tile mix onto the 19 positions and places
// the geese. The same config always yields the same layout.
func Generate(cfg GenConfig) Layout {
	rng := rand.New(rand.NewSource(cfg.Seed))

	resources := resourceBag()
	order := make([]int, board.NumTiles)
	for i := range order {
		order[i] = i
	}

	switch cfg.Style {
	case StyleClustered:
		// Walk tiles from low to high noise and hand out the bag grouped by
		// resource, so neighbours in the field tend to share a resource.
		field := noiseField(cfg.Seed, cfg.NoiseScale)
		sort.SliceStable(order, func(i, j int) bool {
			return field[order[i]] < field[order[j]]
		})
	default:
		rng.Shuffle(len(resources), func(i, j int) {
			resources[i], resources[j] = resources[j], resources[i]
		})
	}

	values := valueBag()
	rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	tiles := make([]board.Tile, board.NumTiles)
	next := 0
	for k, tile := range order {
		res := resources[k]
		value := board.NetflixValue
		if res != board.ResourceNetflix {
			value = values[next]
			next++
		}
		tiles[tile] = board.NewTile(tile, res, value)
	}

	geese := rng.Intn(board.NumTiles)
	slog.Debug("layout generated", "seed", cfg.Seed, "style", cfg.Style, "geese", geese)
	return Layout{Tiles: tiles, Geese: geese}
}

// resourceBag lists the standard resources grouped by kind.
func resourceBag() []board.Resource {
	bag := make([]board.Resource, 0, board.NumTiles)
	for r, n := range resourceCounts {
		for i := 0; i < n; i++ {
			bag = append(bag, board.Resource(r))
		}
	}
	return bag
}

// valueBag lists the values of the producing tiles in ascending order.
func valueBag() []int {
	bag := make([]int, 0, board.NumTiles-1)
	for v := 2; v <= 12; v++ {
		for i := 0; i < valueCounts[v]; i++ {
			bag = append(bag, v)
		}
	}
	return bag
}

// noiseField samples simplex noise at every tile centre.
func noiseField(seed int64, scale float64) [board.NumTiles]float64 {
	noise := opensimplex.NewNormalized(seed)
	var field [board.NumTiles]float64
	for i := range field {
		c, _ := board.CoordOf(i)
		// Axial → cartesian for flat-topped hexes.
		x := 1.5 * float64(c.Q)
		y := math.Sqrt(3.0) * (float64(c.R) + float64(c.Q)/2)
		field[i] = octaveNoise(noise, x, y, 3, scale, 0.5)
	}
	return field
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
