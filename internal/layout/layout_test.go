package layout_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/watan/internal/board"
	"github.com/talgya/watan/internal/layout"
)

func TestReadFile(t *testing.T) {
	l, err := layout.ReadFile("testdata/board.txt")
	require.NoError(t, err)
	require.Len(t, l.Tiles, board.NumTiles)
	assert.Equal(t, 9, l.Geese)
	assert.Equal(t, board.NewTile(0, board.ResourceTutorial, 3), l.Tiles[0])
	assert.Equal(t, board.NewTile(9, board.ResourceNetflix, board.NetflixValue), l.Tiles[9])
	require.NoError(t, layout.Validate(l.Tiles))
}

func TestReadYAMLMatchesText(t *testing.T) {
	text, err := layout.LoadFile("testdata/board.txt")
	require.NoError(t, err)
	yml, err := layout.LoadFile("testdata/board.yaml")
	require.NoError(t, err)
	assert.Equal(t, text, yml)
}

func TestWriteRead(t *testing.T) {
	l := layout.Generate(layout.GenConfig{Seed: 7, Style: layout.StyleRandom})

	var buf bytes.Buffer
	require.NoError(t, layout.Write(&buf, l))
	back, err := layout.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, l, back)

	buf.Reset()
	require.NoError(t, layout.WriteYAML(&buf, l))
	back, err = layout.ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, l, back)
}

func TestSaveFileLoadFile(t *testing.T) {
	l := layout.Generate(layout.GenConfig{Seed: 11, Style: layout.StyleClustered, NoiseScale: 0.35})
	dir := t.TempDir()

	for _, name := range []string{"board.txt", "board.yaml", "board.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, layout.SaveFile(path, l))
			back, err := layout.LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, l, back)
		})
	}

	err := layout.SaveFile(filepath.Join(dir, "missing", "board.txt"), l)
	assert.Error(t, err)
}

func TestRead_NoGeese(t *testing.T) {
	l, err := layout.ReadFile("testdata/board.txt")
	require.NoError(t, err)
	l.Geese = board.NoGeese

	var buf bytes.Buffer
	require.NoError(t, layout.Write(&buf, l))
	back, err := layout.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, board.NoGeese, back.Geese)
}

func TestRead_Malformed(t *testing.T) {
	cases := map[string]string{
		"TooShort":    "1 2 3",
		"NotNumbers":  strings.Repeat("lab 4 ", 19),
		"BadResource": "9 4" + strings.Repeat(" 1 4", 18),
		"TooLong":     strings.Repeat("1 4 ", 20),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := layout.Read(strings.NewReader(in))
			assert.ErrorIs(t, err, layout.ErrMalformed)
		})
	}

	_, err := layout.ReadYAML(strings.NewReader("tiles:\n  - {resource: wood, value: 3}\n"))
	assert.ErrorIs(t, err, layout.ErrMalformed)
	_, err = layout.ReadYAML(strings.NewReader("tiles: [oops"))
	assert.ErrorIs(t, err, layout.ErrMalformed)
}

func TestGenerate(t *testing.T) {
	for _, style := range []layout.Style{layout.StyleRandom, layout.StyleClustered} {
		t.Run(string(style), func(t *testing.T) {
			cfg := layout.DefaultGenConfig()
			cfg.Style = style
			for seed := int64(1); seed <= 20; seed++ {
				cfg.Seed = seed
				l := layout.Generate(cfg)
				require.NoError(t, layout.Validate(l.Tiles), "seed %d", seed)
				assert.GreaterOrEqual(t, l.Geese, 0)
				assert.Less(t, l.Geese, board.NumTiles)

				_, err := l.Build()
				require.NoError(t, err)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := layout.GenConfig{Seed: 42, Style: layout.StyleClustered, NoiseScale: 0.35}
	assert.Equal(t, layout.Generate(cfg), layout.Generate(cfg))

	a := layout.Generate(layout.GenConfig{Seed: 1, Style: layout.StyleRandom})
	b := layout.Generate(layout.GenConfig{Seed: 2, Style: layout.StyleRandom})
	assert.NotEqual(t, a.Tiles, b.Tiles)
}

func TestValidate(t *testing.T) {
	good, err := layout.ReadFile("testdata/board.txt")
	require.NoError(t, err)

	mutate := func(f func([]board.Tile) []board.Tile) []board.Tile {
		tiles := make([]board.Tile, len(good.Tiles))
		copy(tiles, good.Tiles)
		return f(tiles)
	}
	cases := map[string][]board.Tile{
		"Short": mutate(func(ts []board.Tile) []board.Tile { return ts[:18] }),
		"SevenOnProducer": mutate(func(ts []board.Tile) []board.Tile {
			ts[0].Value = 7
			return ts
		}),
		"NetflixValue": mutate(func(ts []board.Tile) []board.Tile {
			ts[9].Value = 8
			return ts
		}),
		"ResourceMix": mutate(func(ts []board.Tile) []board.Tile {
			ts[0].Resource = board.ResourceLab
			return ts
		}),
		"Index": mutate(func(ts []board.Tile) []board.Tile {
			ts[3].Index = 4
			return ts
		}),
	}
	for name, tiles := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, layout.Validate(tiles), layout.ErrInvalidLayout)
		})
	}
}

func TestBuildAndFromBoard(t *testing.T) {
	l, err := layout.ReadFile("testdata/board.txt")
	require.NoError(t, err)
	b, err := l.Build()
	require.NoError(t, err)
	assert.Equal(t, l, layout.FromBoard(b))

	l.Geese = 30
	_, err = l.Build()
	assert.ErrorIs(t, err, board.ErrOutOfRange)
}

func TestParseStyle(t *testing.T) {
	s, err := layout.ParseStyle("clustered")
	require.NoError(t, err)
	assert.Equal(t, layout.StyleClustered, s)
	_, err = layout.ParseStyle("spiral")
	assert.Error(t, err)
}
