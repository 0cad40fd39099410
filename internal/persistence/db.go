// Package persistence provides SQLite-based storage for saved games.
// Only tile content, the geese, the turn and objective ownership are stored;
// topology is rebuilt from tile order on load.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/watan/internal/board"
	"github.com/talgya/watan/internal/layout"
)

// ErrGameNotFound is returned when no saved game has the requested id.
var ErrGameNotFound = errors.New("persistence: game not found")

// DB wraps a SQLite connection for saved games.
type DB struct {
	conn *sqlx.DB
}

// Game is a board plus the state saved alongside it.
type Game struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Turn      board.Player
	Board     *board.Board
}

// GameSummary describes a saved game without rebuilding its board.
type GameSummary struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Turn      string    `json:"turn"`
	Claims    int       `json:"claims"`
}

type gameRow struct {
	ID        string `db:"id"`
	CreatedAt int64  `db:"created_at"`
	Turn      int    `db:"turn"`
	Geese     int    `db:"geese"`
}

type tileRow struct {
	Index    int `db:"idx"`
	Resource int `db:"resource"`
	Value    int `db:"value"`
}

type claimRow struct {
	Kind   int `db:"kind"`
	Number int `db:"number"`
	Owner  int `db:"owner"`
	Level  int `db:"level"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		turn INTEGER NOT NULL,
		geese INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tiles (
		game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		resource INTEGER NOT NULL,
		value INTEGER NOT NULL,
		PRIMARY KEY (game_id, idx)
	);

	CREATE TABLE IF NOT EXISTS claims (
		game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		kind INTEGER NOT NULL,
		number INTEGER NOT NULL,
		owner INTEGER NOT NULL,
		level INTEGER NOT NULL,
		PRIMARY KEY (game_id, kind, number)
	);

	CREATE INDEX IF NOT EXISTS idx_games_created ON games(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveGame writes a game (full replace), assigning an id to new games.
func (db *DB) SaveGame(ctx context.Context, g *Game) (uuid.UUID, error) {
	if g.Board == nil {
		return uuid.Nil, errors.New("save game: no board")
	}
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	id := g.ID.String()

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	for _, table := range []string{"claims", "tiles", "games"} {
		col := "game_id"
		if table == "games" {
			col = "id"
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+col+" = ?", id); err != nil {
			return uuid.Nil, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO games (id, created_at, turn, geese) VALUES (?, ?, ?, ?)",
		id, g.CreatedAt.Unix(), int(g.Turn), g.Board.Geese(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert game: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, "INSERT INTO tiles (game_id, idx, resource, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return uuid.Nil, err
	}
	defer stmt.Close()
	for _, t := range g.Board.Tiles() {
		if _, err := stmt.ExecContext(ctx, id, t.Index, int(t.Resource), t.Value); err != nil {
			return uuid.Nil, fmt.Errorf("insert tile %d: %w", t.Index, err)
		}
	}

	claims := 0
	for _, objs := range [][]board.Objective{g.Board.Criterions(), g.Board.Goals()} {
		for _, o := range objs {
			if !o.Claimed() {
				continue
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO claims (game_id, kind, number, owner, level) VALUES (?, ?, ?, ?, ?)",
				id, int(o.Kind), o.Number, int(o.Owner), int(o.Level),
			)
			if err != nil {
				return uuid.Nil, fmt.Errorf("insert %s %d: %w", o.Kind, o.Number, err)
			}
			claims++
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	slog.Info("game saved", "id", id, "claims", claims)
	return g.ID, nil
}

// LoadGame rebuilds a saved game: the board is reconstructed from its tiles
// and ownership is laid over it.
func (db *DB) LoadGame(ctx context.Context, id uuid.UUID) (*Game, error) {
	var gr gameRow
	err := db.conn.GetContext(ctx, &gr, "SELECT id, created_at, turn, geese FROM games WHERE id = ?", id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", id, ErrGameNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}

	var tiles []tileRow
	if err := db.conn.SelectContext(ctx, &tiles,
		"SELECT idx, resource, value FROM tiles WHERE game_id = ? ORDER BY idx", gr.ID); err != nil {
		return nil, fmt.Errorf("load tiles: %w", err)
	}
	l := layout.Layout{Geese: gr.Geese}
	for _, t := range tiles {
		l.Tiles = append(l.Tiles, board.NewTile(t.Index, board.Resource(t.Resource), t.Value))
	}
	b, err := l.Build()
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", id, err)
	}

	var claims []claimRow
	if err := db.conn.SelectContext(ctx, &claims,
		"SELECT kind, number, owner, level FROM claims WHERE game_id = ?", gr.ID); err != nil {
		return nil, fmt.Errorf("load claims: %w", err)
	}
	for _, c := range claims {
		var o *board.Objective
		if board.Kind(c.Kind) == board.KindCriterion {
			o, err = b.CriterionAt(c.Number)
		} else {
			o, err = b.GoalAt(c.Number)
		}
		if err != nil {
			return nil, fmt.Errorf("game %s claim: %w", id, err)
		}
		if err := o.Restore(board.Player(c.Owner), board.Level(c.Level)); err != nil {
			return nil, fmt.Errorf("game %s claim: %w", id, err)
		}
	}

	return &Game{
		ID:        id,
		CreatedAt: time.Unix(gr.CreatedAt, 0),
		Turn:      board.Player(gr.Turn),
		Board:     b,
	}, nil
}

// ListGames returns saved games, newest first.
func (db *DB) ListGames(ctx context.Context) ([]GameSummary, error) {
	type row struct {
		gameRow
		Claims int `db:"claims"`
	}
	var rows []row
	err := db.conn.SelectContext(ctx, &rows, `
		SELECT g.id, g.created_at, g.turn, g.geese,
			(SELECT COUNT(*) FROM claims c WHERE c.game_id = g.id) AS claims
		FROM games g ORDER BY g.created_at DESC, g.id`)
	if err != nil {
		return nil, err
	}

	out := make([]GameSummary, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("game id %q: %w", r.ID, err)
		}
		out = append(out, GameSummary{
			ID:        id,
			CreatedAt: time.Unix(r.CreatedAt, 0),
			Turn:      board.Player(r.Turn).String(),
			Claims:    r.Claims,
		})
	}
	return out, nil
}

// DeleteGame removes a saved game.
func (db *DB) DeleteGame(ctx context.Context, id uuid.UUID) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("game %s: %w", id, ErrGameNotFound)
	}
	for _, table := range []string{"tiles", "claims"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE game_id = ?", id.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}
