// Package board provides the 19-tile hex board, its objective topology and the
// adjacency queries built on it.
// Tile positions use axial coordinates (q, r) with tile 9 at the origin.
package board

// HexCoord represents a tile position using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates.
var HexNeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return result
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b HexCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	// Max of the three absolute differences in cube coordinates.
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// BoardRadius is the hex radius of the 19-tile layout.
const BoardRadius = 2

// tileCoords is the fixed position of every tile index. Tile numbers run
// row by row on the printed board, so columns read top to bottom as
// {3,8,13}, {1,6,11,16}, {0,4,9,14,18}, {2,7,12,17}, {5,10,15}.
var tileCoords = [NumTiles]HexCoord{
	{Q: 0, R: -2},  // 0
	{Q: -1, R: -1}, // 1
	{Q: 1, R: -2},  // 2
	{Q: -2, R: 0},  // 3
	{Q: 0, R: -1},  // 4
	{Q: 2, R: -2},  // 5
	{Q: -1, R: 0},  // 6
	{Q: 1, R: -1},  // 7
	{Q: -2, R: 1},  // 8
	{Q: 0, R: 0},   // 9
	{Q: 2, R: -1},  // 10
	{Q: -1, R: 1},  // 11
	{Q: 1, R: 0},   // 12
	{Q: -2, R: 2},  // 13
	{Q: 0, R: 1},   // 14
	{Q: 2, R: 0},   // 15
	{Q: -1, R: 2},  // 16
	{Q: 1, R: 1},   // 17
	{Q: 0, R: 2},   // 18
}

// CoordOf returns the layout position of a tile index.
// The second result is false when the index is off the board.
func CoordOf(tile int) (HexCoord, bool) {
	if tile < 0 || tile >= NumTiles {
		return HexCoord{}, false
	}
	return tileCoords[tile], true
}

// TileAtCoord returns the tile index at a coordinate, or -1 if none.
func TileAtCoord(c HexCoord) int {
	for i, tc := range tileCoords {
		if tc == c {
			return i
		}
	}
	return -1
}

// NeighborTiles returns the indices of the tiles bordering the given tile.
func NeighborTiles(tile int) []int {
	c, ok := CoordOf(tile)
	if !ok {
		return nil
	}
	var out []int
	for _, n := range c.Neighbors() {
		if idx := TileAtCoord(n); idx >= 0 {
			out = append(out, idx)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
