package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/watan/internal/board"
	"github.com/talgya/watan/internal/layout"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "watan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	cfg := layout.DefaultGenConfig()
	cfg.Seed = seed
	b, err := layout.Generate(cfg).Build()
	require.NoError(t, err)
	return &Game{Turn: board.PlayerBlue, Board: b}
}

func claim(t *testing.T, b *board.Board, kind board.Kind, n int, p board.Player) *board.Objective {
	t.Helper()
	var (
		o   *board.Objective
		err error
	)
	if kind == board.KindCriterion {
		o, err = b.CriterionAt(n)
	} else {
		o, err = b.GoalAt(n)
	}
	require.NoError(t, err)
	require.NoError(t, o.Claim(p))
	return o
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	g := newGame(t, 42)
	g.Turn = board.PlayerOrange
	c := claim(t, g.Board, board.KindCriterion, 20, board.PlayerRed)
	require.NoError(t, c.Improve())
	claim(t, g.Board, board.KindCriterion, 53, board.PlayerYellow)
	claim(t, g.Board, board.KindGoal, 27, board.PlayerRed)
	require.NoError(t, g.Board.MoveGeese(3))

	id, err := db.SaveGame(ctx, g)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, id, g.ID)

	got, err := db.LoadGame(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, board.PlayerOrange, got.Turn)
	assert.Equal(t, g.CreatedAt.Unix(), got.CreatedAt.Unix())
	assert.Equal(t, 3, got.Board.Geese())
	assert.Equal(t, g.Board.Tiles(), got.Board.Tiles())

	c20, err := got.Board.CriterionAt(20)
	require.NoError(t, err)
	assert.Equal(t, board.PlayerRed, c20.Owner)
	assert.Equal(t, board.LevelMidterm, c20.Level)

	c53, err := got.Board.CriterionAt(53)
	require.NoError(t, err)
	assert.Equal(t, board.PlayerYellow, c53.Owner)
	assert.Equal(t, board.LevelAssignment, c53.Level)

	g27, err := got.Board.GoalAt(27)
	require.NoError(t, err)
	assert.Equal(t, board.PlayerRed, g27.Owner)
	assert.Equal(t, board.LevelNone, g27.Level)

	claimed := 0
	for _, o := range got.Board.Criterions() {
		if o.Claimed() {
			claimed++
		}
	}
	for _, o := range got.Board.Goals() {
		if o.Claimed() {
			claimed++
		}
	}
	assert.Equal(t, 3, claimed)
}

func TestLoadRebuildsTopology(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	g := newGame(t, 7)
	id, err := db.SaveGame(ctx, g)
	require.NoError(t, err)

	got, err := db.LoadGame(ctx, id)
	require.NoError(t, err)

	for i := 0; i < board.NumTiles; i++ {
		want, err := g.Board.TileAt(i)
		require.NoError(t, err)
		have, err := got.Board.TileAt(i)
		require.NoError(t, err)
		assert.Equal(t, want.CriterionSlots(), have.CriterionSlots(), "tile %d", i)
		assert.Equal(t, want.GoalSlots(), have.GoalSlots(), "tile %d", i)
	}
}

func TestSaveGameReplaces(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	g := newGame(t, 3)
	claim(t, g.Board, board.KindGoal, 0, board.PlayerBlue)
	id, err := db.SaveGame(ctx, g)
	require.NoError(t, err)

	// Save again under the same id from a fresh board: the old claim must go.
	fresh := newGame(t, 3)
	fresh.ID = id
	fresh.Turn = board.PlayerRed
	again, err := db.SaveGame(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	got, err := db.LoadGame(ctx, id)
	require.NoError(t, err)
	g0, err := got.Board.GoalAt(0)
	require.NoError(t, err)
	assert.False(t, g0.Claimed())
	assert.Equal(t, board.PlayerRed, got.Turn)

	games, err := db.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestSaveGameWithoutBoard(t *testing.T) {
	db := openTestDB(t)
	_, err := db.SaveGame(context.Background(), &Game{})
	assert.Error(t, err)
}

func TestLoadGameNotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadGame(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestListGames(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	games, err := db.ListGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)

	older := newGame(t, 1)
	older.CreatedAt = time.Now().Add(-2 * time.Hour)
	claim(t, older.Board, board.KindCriterion, 0, board.PlayerBlue)
	claim(t, older.Board, board.KindGoal, 0, board.PlayerBlue)
	olderID, err := db.SaveGame(ctx, older)
	require.NoError(t, err)

	newer := newGame(t, 2)
	newer.Turn = board.PlayerYellow
	newerID, err := db.SaveGame(ctx, newer)
	require.NoError(t, err)

	games, err = db.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, newerID, games[0].ID)
	assert.Equal(t, "YELLOW", games[0].Turn)
	assert.Equal(t, 0, games[0].Claims)

	assert.Equal(t, olderID, games[1].ID)
	assert.Equal(t, "BLUE", games[1].Turn)
	assert.Equal(t, 2, games[1].Claims)
}

func TestDeleteGame(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.SaveGame(ctx, newGame(t, 5))
	require.NoError(t, err)

	require.NoError(t, db.DeleteGame(ctx, id))
	_, err = db.LoadGame(ctx, id)
	assert.ErrorIs(t, err, ErrGameNotFound)

	assert.ErrorIs(t, db.DeleteGame(ctx, id), ErrGameNotFound)
}
