package sqlite

import (
	"context"
	"errors"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/renamez/pkg/storage"
	"github.com/kasuboski/renamez/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/renamez/pkg/storage/sqlite/schema/gen/table"
)

// CreateRename records an applied rename. created_at is filled in by the database.
func (s *SQLite) CreateRename(ctx context.Context, rename model.Rename) (int64, error) {
	stmt := table.Rename.
		INSERT(table.Rename.MutableColumns.Except(table.Rename.CreatedAt)).
		MODEL(rename).
		RETURNING(table.Rename.ID)

	result, err := s.handleInsert(ctx, stmt)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// GetRename gets a recorded rename given an id
func (s *SQLite) GetRename(ctx context.Context, id int64) (*model.Rename, error) {
	stmt := table.Rename.
		SELECT(table.Rename.AllColumns).
		FROM(table.Rename).
		WHERE(table.Rename.ID.EQ(sqlite.Int64(id)))

	var result model.Rename
	err := stmt.QueryContext(ctx, s.db, &result)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return &result, nil
}

// ListRenames lists recorded renames, newest first. A limit <= 0 returns all of them.
func (s *SQLite) ListRenames(ctx context.Context, limit int) ([]*model.Rename, error) {
	items := make([]*model.Rename, 0)

	stmt := table.Rename.
		SELECT(table.Rename.AllColumns).
		FROM(table.Rename).
		ORDER_BY(table.Rename.ID.DESC())

	if limit > 0 {
		stmt = stmt.LIMIT(int64(limit))
	}

	err := stmt.QueryContext(ctx, s.db, &items)
	return items, err
}

// ListRenamesBySession lists the renames applied in one session in the order they were applied
func (s *SQLite) ListRenamesBySession(ctx context.Context, sessionID string) ([]*model.Rename, error) {
	items := make([]*model.Rename, 0)

	stmt := table.Rename.
		SELECT(table.Rename.AllColumns).
		FROM(table.Rename).
		WHERE(table.Rename.SessionID.EQ(sqlite.String(sessionID))).
		ORDER_BY(table.Rename.ID.ASC())

	err := stmt.QueryContext(ctx, s.db, &items)
	return items, err
}
