package configlibsql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"coursecatalog-backend/pkg/migrations"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Struct selects where the course database lives. `Url` takes priority, it points
// at a remote libsql server (libsql://, https:// or wss://). Otherwise `File` is a
// local sqlite file.
type Struct struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (config Struct) dsn() (string, error) {
	parsed, err := url.Parse(config.Url)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	if config.AuthToken != "" {
		query := parsed.Query()
		query.Set("authToken", config.AuthToken)
		parsed.RawQuery = query.Encode()
	}
	return parsed.String(), nil
}

// OpenDB opens the configured database and applies `schema` to it.
func (config Struct) OpenDB(ctx context.Context, schema string) (*sql.DB, error) {
	if config.Url == "" {
		if config.File == "" {
			return nil, fmt.Errorf("a path was not specified")
		}
		return migrations.OpenAndMigrateDB(ctx, schema, config.File)
	}

	dsn, err := config.dsn()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, err
	}
	err = migrations.Migrate(ctx, db, schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
