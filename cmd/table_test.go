package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kasuboski/renamez/pkg/download"
	"github.com/kasuboski/renamez/pkg/storage/mocks"
	"github.com/kasuboski/renamez/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/renamez/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRenderTable(t *testing.T) {
	assert.Empty(t, renderTable(nil, nil, nil))

	got := renderTable([]string{"A", "B"}, [][]string{{"1"}, {"2", "3"}}, []columnAlignment{alignRight})
	assert.Contains(t, got, "╭")
	assert.Contains(t, got, "│ A │ B │")
	assert.Contains(t, got, "│ 1 │   │")
}

func TestRenderEntries(t *testing.T) {
	got := renderEntries([]download.Status{
		{ID: "1", Name: "The.Matrix.1999.1080p.BluRay.mkv", Size: 1500000},
		{ID: "2", Name: "Random.Clip.mp4", Size: 2048, AddedAt: time.Now().Add(-2 * time.Hour)},
	})

	assert.Contains(t, got, "The Matrix (1999) - 1080p.mkv")
	assert.Contains(t, got, "1.5 MB")
	assert.Contains(t, got, "2.0 kB")
	assert.Contains(t, got, "2 hours ago")
}

func TestRenderProposals(t *testing.T) {
	got := renderProposals([]workflow.Proposal{
		workflow.Propose(download.Status{ID: "1", Name: "The.Matrix.1999.1080p.BluRay.mkv"}),
		workflow.Propose(download.Status{ID: "2", Name: "Heat (1995) - Remux.mkv"}),
		workflow.Propose(download.Status{ID: "3", Name: "Random.Clip.mp4"}),
	})

	assert.Contains(t, got, "rename")
	assert.Contains(t, got, "unchanged")
	assert.Contains(t, got, "unparseable")
}

func TestPrintHistory(t *testing.T) {
	ctx := context.Background()
	created := time.Now().Add(-time.Hour)

	t.Run("latest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStorage(ctrl)
		store.EXPECT().ListRenames(ctx, 5).Return([]*model.Rename{
			{ID: 12, Source: "library", FromName: "a.2020.mkv", ToName: "Custom.mkv", Edited: true, CreatedAt: &created},
		}, nil)

		out := new(bytes.Buffer)
		require.NoError(t, printHistory(ctx, out, store, 5, ""))

		assert.Contains(t, out.String(), "12")
		assert.Contains(t, out.String(), "Custom.mkv")
		assert.Contains(t, out.String(), "yes")
		assert.Contains(t, out.String(), "1 hour ago")
	})

	t.Run("session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStorage(ctrl)
		store.EXPECT().ListRenamesBySession(ctx, "abc").Return(nil, nil)

		out := new(bytes.Buffer)
		require.NoError(t, printHistory(ctx, out, store, 5, "abc"))
		assert.Equal(t, "No renames recorded\n", out.String())
	})

	t.Run("failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStorage(ctrl)
		store.EXPECT().ListRenames(ctx, 0).Return(nil, errors.New("disk I/O error"))

		err := printHistory(ctx, new(bytes.Buffer), store, 0, "")
		assert.ErrorContains(t, err, "disk I/O error")
	})
}
