package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/novatale/armory/internal/config"
	"github.com/novatale/armory/internal/database/migrations"
)

// runMigrations applies goose migrations using the embedded SQL scripts
func runMigrations(cfg *config.Config, command string) error {
	db, err := sql.Open("pgx", cfg.GetDBConnString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.Up(db, ".")
	case "down":
		return goose.Down(db, ".")
	case "status":
		return goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
}
