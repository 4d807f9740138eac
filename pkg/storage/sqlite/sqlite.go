package sqlite

import (
	"context"
	"database/sql"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/renamez/pkg/logger"
	"github.com/kasuboski/renamez/pkg/storage"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type SQLite struct {
	db *sql.DB
}

// New creates a new sqlite database given a path to the database file
func New(ctx context.Context, filePath string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}

	// a single connection keeps :memory: databases alive between statements
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{
		db: db,
	}, nil
}

// RunMigrations brings the schema up to date
func (s *SQLite) RunMigrations(ctx context.Context) error {
	logger.FromCtx(ctx).Debug("running history migrations")
	return runMigrations(s.db)
}

// Close releases the underlying database handle
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) handleInsert(ctx context.Context, stmt sqlite.InsertStatement) (sql.Result, error) {
	return s.handleStatement(ctx, stmt)
}

func (s *SQLite) handleStatement(ctx context.Context, stmt sqlite.Statement) (sql.Result, error) {
	log := logger.FromCtx(ctx)
	var result sql.Result

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Debug("failed to init transaction", zap.Error(err))
		return result, err
	}

	result, err = stmt.ExecContext(ctx, tx)
	if err != nil {
		log.Debug("failed to execute statement", zap.String("query", stmt.DebugSql()), zap.Error(err))
		tx.Rollback()
		return result, err
	}

	return result, tx.Commit()
}
