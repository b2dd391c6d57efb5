package handlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardhouse/holdem/internal/game"
)

func TestJournalRoundTrip(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "hands.db"))
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	playedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for hand := 1; hand <= 3; hand++ {
		err := j.Record(ctx, Entry{
			RoomID:   "7h3qk2mx",
			HandNum:  hand,
			Board:    []string{"A♠", "K♥", "2♦", "9♣", "9♠"},
			Results:  []game.Result{{Seat: 0, Amount: 60, Hand: "Two Pair"}},
			PlayedAt: playedAt,
		})
		require.NoError(t, err)
	}

	entries, err := j.Recent(ctx, "7h3qk2mx", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].HandNum, "most recent first")
	assert.Equal(t, 2, entries[1].HandNum)
	assert.Equal(t, []string{"A♠", "K♥", "2♦", "9♣", "9♠"}, entries[0].Board)
	assert.Equal(t, []game.Result{{Seat: 0, Amount: 60, Hand: "Two Pair"}}, entries[0].Results)
	assert.Equal(t, playedAt, entries[0].PlayedAt)

	entries, err = j.Recent(ctx, "nosuchrm", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalRerecordOverwrites(t *testing.T) {
	j, err := Open(":memory:")
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	require.NoError(t, j.Record(ctx, Entry{RoomID: "r", HandNum: 1, Results: []game.Result{{Seat: 0, Amount: 30}}}))
	require.NoError(t, j.Record(ctx, Entry{RoomID: "r", HandNum: 1, Results: []game.Result{{Seat: 1, Amount: 40}}}))

	entries, err := j.Recent(ctx, "r", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []game.Result{{Seat: 1, Amount: 40}}, entries[0].Results)
}

func TestNilJournalDisabled(t *testing.T) {
	var j *Journal
	require.NoError(t, j.Record(context.Background(), Entry{RoomID: "r", HandNum: 1}))
	entries, err := j.Recent(context.Background(), "r", 5)
	require.NoError(t, err)
	assert.Nil(t, entries)
	require.NoError(t, j.Close())
}
