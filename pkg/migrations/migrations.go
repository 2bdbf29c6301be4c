package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// OpenDB opens (creating if needed) a local sqlite database at `path`.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	_, err = db.Exec("PRAGMA foreign_keys=ON")
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	return db, nil
}

// Migrate applies `schema` to the database, the schema is expected to be
// idempotent (`create table if not exists ...`).
func Migrate(ctx context.Context, db *sql.DB, schema string) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	return nil
}

func OpenAndMigrateDB(ctx context.Context, schema, path string) (*sql.DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	err = Migrate(ctx, db, schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
