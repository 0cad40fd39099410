package layout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/watan/internal/board"
)

// Read parses the plain board format: 19 "resource value" integer pairs in
// tile order, optionally followed by the geese tile. Resources are numbered
// as board.Resource.
func Read(r io.Reader) (Layout, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var nums []int
	for sc.Scan() {
		n, err := strconv.Atoi(sc.Text())
		if err != nil {
			return Layout{}, fmt.Errorf("token %q: %w", sc.Text(), ErrMalformed)
		}
		nums = append(nums, n)
	}
	if err := sc.Err(); err != nil {
		return Layout{}, fmt.Errorf("read board: %w", err)
	}

	want := 2 * board.NumTiles
	if len(nums) != want && len(nums) != want+1 {
		return Layout{}, fmt.Errorf("got %d numbers, want %d or %d: %w", len(nums), want, want+1, ErrMalformed)
	}

	l := Layout{Tiles: make([]board.Tile, board.NumTiles), Geese: board.NoGeese}
	for i := 0; i < board.NumTiles; i++ {
		res, value := nums[2*i], nums[2*i+1]
		if res < 0 || res >= board.NumResources {
			return Layout{}, fmt.Errorf("tile %d resource %d: %w", i, res, ErrMalformed)
		}
		l.Tiles[i] = board.NewTile(i, board.Resource(res), value)
	}
	if len(nums) == want+1 {
		l.Geese = nums[want]
	}
	return l, nil
}

// ReadFile reads a plain board file from disk.
func ReadFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, err
	}
	defer f.Close()
	return Read(f)
}

// Write emits the plain board format, tiles on one line and the geese on
// the next.
func Write(w io.Writer, l Layout) error {
	var sb strings.Builder
	for i, t := range l.Tiles {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d %d", t.Resource, t.Value)
	}
	sb.WriteByte('\n')
	if l.Geese != board.NoGeese {
		fmt.Fprintf(&sb, "%d\n", l.Geese)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// yamlLayout is the YAML form of a layout, with resources by name.
type yamlLayout struct {
	Geese *int       `yaml:"geese,omitempty"`
	Tiles []yamlTile `yaml:"tiles"`
}

type yamlTile struct {
	Resource string `yaml:"resource"`
	Value    int    `yaml:"value,omitempty"`
}

// ReadYAML parses a YAML layout:
//
//	geese: 9
//	tiles:
//	  - {resource: lab, value: 4}
//	  - {resource: netflix}
func ReadYAML(r io.Reader) (Layout, error) {
	var doc yamlLayout
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return Layout{}, fmt.Errorf("decode yaml: %v: %w", err, ErrMalformed)
	}
	if len(doc.Tiles) != board.NumTiles {
		return Layout{}, fmt.Errorf("got %d tiles: %w", len(doc.Tiles), ErrMalformed)
	}
	l := Layout{Tiles: make([]board.Tile, board.NumTiles), Geese: board.NoGeese}
	for i, yt := range doc.Tiles {
		res, err := board.ParseResource(yt.Resource)
		if err != nil {
			return Layout{}, fmt.Errorf("tile %d: %v: %w", i, err, ErrMalformed)
		}
		value := yt.Value
		if res == board.ResourceNetflix && value == 0 {
			value = board.NetflixValue
		}
		l.Tiles[i] = board.NewTile(i, res, value)
	}
	if doc.Geese != nil {
		l.Geese = *doc.Geese
	}
	return l, nil
}

// WriteYAML emits a layout in the form ReadYAML accepts.
func WriteYAML(w io.Writer, l Layout) error {
	doc := yamlLayout{Tiles: make([]yamlTile, len(l.Tiles))}
	for i, t := range l.Tiles {
		doc.Tiles[i] = yamlTile{Resource: strings.ToLower(t.Resource.String())}
		if t.Resource != board.ResourceNetflix {
			doc.Tiles[i].Value = t.Value
		}
	}
	if l.Geese != board.NoGeese {
		g := l.Geese
		doc.Geese = &g
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// LoadFile reads a layout from disk, choosing the format by extension.
func LoadFile(path string) (Layout, error) {
	if isYAML(path) {
		f, err := os.Open(path)
		if err != nil {
			return Layout{}, err
		}
		defer f.Close()
		return ReadYAML(f)
	}
	return ReadFile(path)
}

// SaveFile writes a layout to disk, choosing the format by extension.
func SaveFile(path string, l Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if isYAML(path) {
		err = WriteYAML(f, l)
	} else {
		err = Write(f, l)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func isYAML(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
