package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"coursecatalog-backend/internal/components/db"
	"coursecatalog-backend/pkg/migrations"
)

const stateDir = "dev/.state"

const localConfig = `{
    database: {
        file: "dev/.state/wesmaps.db",
    },
    output: "dev/.state/wesmaps_courses.json",
    concurrency: 4,
    requests_per_second: 2,
}
`

func create(ctx context.Context, recreate bool) error {
	_, err := os.Stat("go.mod")
	if os.IsNotExist(err) {
		return fmt.Errorf("the dev environment must be created in the repository root (the same directory as the 'go.mod' file)")
	}

	if recreate {
		err = os.RemoveAll(stateDir)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	err = os.MkdirAll(stateDir, 0777)
	if err != nil && !os.IsExist(err) {
		return err
	}

	dbPath := filepath.Join(stateDir, "wesmaps.db")
	sqlDB, err := migrations.OpenAndMigrateDB(ctx, db.Schema, dbPath)
	if err != nil {
		return err
	}
	sqlDB.Close()

	_, err = os.Stat("config.local.json5")
	if os.IsNotExist(err) {
		err = os.WriteFile("config.local.json5", []byte(localConfig), 0666)
		if err != nil {
			return err
		}
		slog.Info("wrote local config", "path", "config.local.json5")
	}

	slog.Info("dev database", "path", dbPath)
	return nil
}

func main() {
	recreate := flag.Bool("recreate", false, "recreate the dev environment from scratch")
	flag.Parse()

	err := create(context.Background(), *recreate)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}

	slog.Info("dev environment created sucessfully!")
}
