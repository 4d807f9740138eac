package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/kasuboski/renamez/pkg/storage"
	"github.com/kasuboski/renamez/pkg/storage/sqlite/schema/gen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	store := initSqlite(t, context.Background())
	assert.NotNil(t, store)
}

func TestRenameStorage(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)

	renames, err := store.ListRenames(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, renames)

	create := model.Rename{
		SessionID: "session-1",
		Source:    storage.SourceTransmission,
		EntryID:   "7",
		FromName:  "The.Matrix.1999.1080p.BluRay.mkv",
		ToName:    "The Matrix (1999) - 1080p.mkv",
	}

	before := time.Now().UTC().Add(-time.Minute)
	id, err := store.CreateRename(ctx, create)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := store.GetRename(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int32(1), got.ID)
	assert.Equal(t, create.SessionID, got.SessionID)
	assert.Equal(t, create.Source, got.Source)
	assert.Equal(t, create.EntryID, got.EntryID)
	assert.Equal(t, create.FromName, got.FromName)
	assert.Equal(t, create.ToName, got.ToName)
	assert.False(t, got.Edited)
	require.NotNil(t, got.CreatedAt)
	assert.True(t, got.CreatedAt.After(before))

	renames, err = store.ListRenames(ctx, 0)
	require.NoError(t, err)
	require.Len(t, renames, 1)
	assert.Equal(t, got, renames[0])
}

func TestGetRename_NotFound(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)

	_, err := store.GetRename(ctx, 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListRenames(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)

	for i, r := range []model.Rename{
		{SessionID: "a", Source: storage.SourceTransmission, EntryID: "1", FromName: "one.2001.mkv", ToName: "one (2001).mkv"},
		{SessionID: "a", Source: storage.SourceTransmission, EntryID: "2", FromName: "two.2002.mkv", ToName: "Two (2002).mkv", Edited: true},
		{SessionID: "b", Source: storage.SourceLibrary, EntryID: "three.2003.mkv", FromName: "three.2003.mkv", ToName: "three (2003).mkv"},
	} {
		id, err := store.CreateRename(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	t.Run("newest first", func(t *testing.T) {
		renames, err := store.ListRenames(ctx, 0)
		require.NoError(t, err)
		require.Len(t, renames, 3)
		assert.Equal(t, int32(3), renames[0].ID)
		assert.Equal(t, int32(2), renames[1].ID)
		assert.Equal(t, int32(1), renames[2].ID)
		assert.True(t, renames[1].Edited)
	})

	t.Run("limit", func(t *testing.T) {
		renames, err := store.ListRenames(ctx, 2)
		require.NoError(t, err)
		require.Len(t, renames, 2)
		assert.Equal(t, int32(3), renames[0].ID)
	})

	t.Run("by session", func(t *testing.T) {
		renames, err := store.ListRenamesBySession(ctx, "a")
		require.NoError(t, err)
		require.Len(t, renames, 2)
		assert.Equal(t, "1", renames[0].EntryID)
		assert.Equal(t, "2", renames[1].EntryID)

		renames, err = store.ListRenamesBySession(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, renames)
	})
}

func initSqlite(t *testing.T, ctx context.Context) storage.Storage {
	store, err := New(ctx, ":memory:")
	require.NoError(t, err)

	err = store.RunMigrations(ctx)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
