package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/talgya/watan/internal/api"
	"github.com/talgya/watan/internal/board"
	"github.com/talgya/watan/internal/entropy"
	"github.com/talgya/watan/internal/layout"
	"github.com/talgya/watan/internal/persistence"
)

// boardSource says where a command's board comes from. The first of game,
// layout file and generation that is set wins.
type boardSource struct {
	GameID     string
	LayoutPath string
	Seed       int64 // 0 draws a seed
	Style      string
	DBPath     string
	RandomKey  string
}

func sourceFromFlags() boardSource {
	return boardSource{
		GameID:     gameID,
		LayoutPath: layoutPath,
		Seed:       seed,
		Style:      style,
		DBPath:     dbPath,
		RandomKey:  os.Getenv("RANDOM_ORG_API_KEY"),
	}
}

// loadBoard resolves a board source. The returned game has a nil ID unless it
// came from the database.
func loadBoard(ctx context.Context, src boardSource) (*persistence.Game, layout.Layout, string, error) {
	switch {
	case src.GameID != "":
		id, err := uuid.Parse(src.GameID)
		if err != nil {
			return nil, layout.Layout{}, "", fmt.Errorf("game id %q: %w", src.GameID, err)
		}
		db, err := openDB(src.DBPath)
		if err != nil {
			return nil, layout.Layout{}, "", err
		}
		defer db.Close()
		g, err := db.LoadGame(ctx, id)
		if err != nil {
			return nil, layout.Layout{}, "", err
		}
		return g, layout.FromBoard(g.Board), "game " + id.String(), nil

	case src.LayoutPath != "":
		l, err := layout.LoadFile(src.LayoutPath)
		if err != nil {
			return nil, layout.Layout{}, "", fmt.Errorf("read layout: %w", err)
		}
		b, err := l.Build()
		if err != nil {
			return nil, layout.Layout{}, "", err
		}
		return &persistence.Game{Turn: board.PlayerBlue, Board: b}, l, "layout " + src.LayoutPath, nil

	default:
		st, err := layout.ParseStyle(src.Style)
		if err != nil {
			return nil, layout.Layout{}, "", err
		}
		s := src.Seed
		if s == 0 {
			s = entropy.Seed(ctx, entropy.NewClient(src.RandomKey))
		}
		cfg := layout.DefaultGenConfig()
		cfg.Seed = s
		cfg.Style = st
		l := layout.Generate(cfg)
		b, err := l.Build()
		if err != nil {
			return nil, layout.Layout{}, "", err
		}
		return &persistence.Game{Turn: board.PlayerBlue, Board: b}, l, fmt.Sprintf("seed %d (%s)", s, st), nil
	}
}

func openDB(path string) (*persistence.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	return persistence.Open(path)
}

func runNew(cmd *cobra.Command, args []string) error {
	return newBoard(cmd.Context(), cmd.OutOrStdout(), sourceFromFlags(), save, writePath)
}

func newBoard(ctx context.Context, w io.Writer, src boardSource, saveGame bool, write string) error {
	g, l, desc, err := loadBoard(ctx, src)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "board from %s\n", desc)
	printBoard(w, g.Board)

	if write != "" {
		if err := layout.SaveFile(write, l); err != nil {
			return fmt.Errorf("write layout: %w", err)
		}
		fmt.Fprintf(w, "layout written to %s\n", write)
	}

	if saveGame {
		db, err := openDB(src.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		id, err := db.SaveGame(ctx, g)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "saved game %s\n", id)
	}
	return nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	src := sourceFromFlags()
	src.GameID = args[0]
	return loadSummary(cmd.Context(), cmd.OutOrStdout(), src)
}

func loadSummary(ctx context.Context, w io.Writer, src boardSource) error {
	g, _, _, err := loadBoard(ctx, src)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "game %s, created %s, %s to play\n", g.ID, humanize.Time(g.CreatedAt), g.Turn)
	printBoard(w, g.Board)
	return printOwnership(w, g.Board)
}

func runGames(cmd *cobra.Command, args []string) error {
	return listGames(cmd.Context(), cmd.OutOrStdout(), dbPath)
}

func listGames(ctx context.Context, w io.Writer, path string) error {
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	games, err := db.ListGames(ctx)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(w, "no saved games")
		return nil
	}
	for _, g := range games {
		fmt.Fprintf(w, "%s  %-16s %-7s %d claims\n", g.ID, humanize.Time(g.CreatedAt), g.Turn, g.Claims)
	}
	return nil
}

func runAdj(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%s number %q: %w", args[0], args[1], err)
	}
	g, _, _, err := loadBoard(cmd.Context(), sourceFromFlags())
	if err != nil {
		return err
	}
	return printAdjacency(cmd.OutOrStdout(), g.Board, args[0], n)
}

func printAdjacency(w io.Writer, b *board.Board, kind string, n int) error {
	switch kind {
	case "criterion", "c":
		c, err := b.CriterionAt(n)
		if err != nil {
			return err
		}
		crits, err := b.AdjacentCriterions(n)
		if err != nil {
			return err
		}
		goals, err := b.AdjacentGoalsToCriterion(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "criterion %d on tiles %v, owner %s\n", n, c.Tiles(), c.Owner)
		fmt.Fprintf(w, "  adjacent criterions: %v\n", crits)
		fmt.Fprintf(w, "  adjacent goals:      %v\n", goals)
	case "goal", "g":
		g, err := b.GoalAt(n)
		if err != nil {
			return err
		}
		goals, err := b.AdjacentGoals(n)
		if err != nil {
			return err
		}
		crits, err := b.AdjacentCriterionsToGoal(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "goal %d on tiles %v, owner %s\n", n, g.Tiles(), g.Owner)
		fmt.Fprintf(w, "  adjacent criterions: %v\n", crits)
		fmt.Fprintf(w, "  adjacent goals:      %v\n", goals)
	default:
		return fmt.Errorf("unknown objective kind %q (want criterion or goal)", kind)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := sourceFromFlags()
	g, _, desc, err := loadBoard(ctx, src)
	if err != nil {
		return err
	}

	srv := &api.Server{
		Board:    g.Board,
		GameID:   g.ID,
		Turn:     g.Turn,
		Port:     port,
		AdminKey: os.Getenv("WATAN_ADMIN_KEY"),
	}
	db, err := openDB(src.DBPath)
	if err != nil {
		slog.Warn("database unavailable, serving without saved games", "error", err)
	} else {
		defer db.Close()
		srv.DB = db
	}

	slog.Info("serving board", "source", desc, "port", port)
	return srv.Start(ctx)
}

func printBoard(w io.Writer, b *board.Board) {
	fmt.Fprintf(w, "%4s  %-9s %5s %4s  %s\n", "tile", "resource", "value", "pips", "coord")
	for _, t := range b.Tiles() {
		value := strconv.Itoa(t.Value)
		if t.Resource == board.ResourceNetflix {
			value = "-"
		}
		c := t.Coord()
		line := fmt.Sprintf("%4d  %-9s %5s %4d  (%d,%d)", t.Index, t.Resource, value, t.Pips(), c.Q, c.R)
		if t.Index == b.Geese() {
			line += "  geese"
		}
		fmt.Fprintln(w, line)
	}
}

// printOwnership lists what each seat holds and which tiles pay it.
func printOwnership(w io.Writer, b *board.Board) error {
	for seat, p := range board.AllPlayers {
		crits, goals := 0, 0
		for _, o := range b.Criterions() {
			if o.Owner == p {
				crits++
			}
		}
		for _, o := range b.Goals() {
			if o.Owner == p {
				goals++
			}
		}
		var paying []int
		for i := 0; i < board.NumTiles; i++ {
			ok, err := b.TileHasCriterionOwnedBy(i, p)
			if err != nil {
				return err
			}
			if ok {
				paying = append(paying, i)
			}
		}
		fmt.Fprintf(w, "%s seat %-6s %d criterions, %d goals, tiles %v\n",
			humanize.Ordinal(seat+1), p, crits, goals, paying)
	}
	return nil
}
