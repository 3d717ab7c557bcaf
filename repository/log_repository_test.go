package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/repository/testutil"
)

func TestLogRepository_Sync(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, NewSessionRepository(testDB.DB).Save(ctx, testutil.CreateTestSession("s1")))
	repo := NewLogRepository(testDB.DB)

	idxs := func() []int {
		entries, err := repo.GetBySession(ctx, "s1")
		require.NoError(t, err)
		out := make([]int, len(entries))
		for i, e := range entries {
			out[i] = e.Idx
		}
		return out
	}

	t.Run("empty log", func(t *testing.T) {
		entries, err := repo.GetBySession(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("appends new entries", func(t *testing.T) {
		entries := testutil.CreateTestLogEntries(1, 3)
		require.NoError(t, repo.Sync(ctx, "s1", entries))
		assert.Equal(t, []int{1, 2, 3}, idxs())

		entries = append(entries, testutil.CreateTestSplitEntry(4))
		require.NoError(t, repo.Sync(ctx, "s1", entries))
		assert.Equal(t, []int{1, 2, 3, 4}, idxs())

		stored, err := repo.GetBySession(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, entries, stored)
	})

	t.Run("undo removes newer rows", func(t *testing.T) {
		require.NoError(t, repo.Sync(ctx, "s1", testutil.CreateTestLogEntries(1, 2)))
		assert.Equal(t, []int{1, 2}, idxs())

		replacement := testutil.CreateTestLogEntries(1, 3)
		replacement[2].Outcome = "BLACK"
		require.NoError(t, repo.Sync(ctx, "s1", replacement))

		stored, err := repo.GetBySession(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, stored, 3)
		assert.Equal(t, "BLACK", stored[2].Outcome)
	})

	t.Run("trims rows before the retained tail", func(t *testing.T) {
		require.NoError(t, repo.Sync(ctx, "s1", testutil.CreateTestLogEntries(2, 4)))
		assert.Equal(t, []int{2, 3, 4, 5}, idxs())
	})

	t.Run("empty entries clear the log", func(t *testing.T) {
		require.NoError(t, repo.Sync(ctx, "s1", nil))
		assert.Empty(t, idxs())
	})
}
