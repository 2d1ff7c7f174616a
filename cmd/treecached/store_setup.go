package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sagan-labs/treecache/internal/config"
	"github.com/sagan-labs/treecache/internal/store"
)

// openStore opens the SQLite database named by cfg.DatabasePath and runs the
// embedded schema migration. ":memory:" is accepted for ephemeral runs.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	db, err := sql.Open("sqlite3", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", cfg.DatabasePath, err)
	}

	s, err := store.NewSqlite(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
