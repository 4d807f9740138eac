package storage

import (
	"context"
	"errors"

	"github.com/kasuboski/renamez/pkg/storage/sqlite/schema/gen/model"
)

//go:generate mockgen -package mocks -destination mocks/storage.go github.com/kasuboski/renamez/pkg/storage Storage

var ErrNotFound = errors.New("not found in storage")

type Storage interface {
	RunMigrations(ctx context.Context) error
	Close() error
	RenameStorage
}

// RenameStorage is the journal of applied renames
type RenameStorage interface {
	CreateRename(ctx context.Context, rename model.Rename) (int64, error)
	GetRename(ctx context.Context, id int64) (*model.Rename, error)
	ListRenames(ctx context.Context, limit int) ([]*model.Rename, error)
	ListRenamesBySession(ctx context.Context, sessionID string) ([]*model.Rename, error)
}

const (
	SourceTransmission = "transmission"
	SourceLibrary      = "library"
)
