// Package sqlite provides an embedded SQLite table store, the default backend
// for local development.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"aisumo/internal/infra/persistence/sqlstore"
	"aisumo/internal/schema"
	"aisumo/pkg/domain"
)

var _ domain.TableStore = (*Store)(nil)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "aisumo.db"

// Store persists catalog tables to a single SQLite file.
type Store struct {
	*sqlstore.Store
	path string
}

// NewStore opens (creating if needed) the SQLite database at path and applies
// the catalog DDL.
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	if err := sqlstore.ApplyDDL(ctx, db, schema.SQLite()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{Store: sqlstore.New(db, sqlstore.SQLite), path: path}, nil
}

// Path returns the filesystem path of the database.
func (s *Store) Path() string { return s.path }
