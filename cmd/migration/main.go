package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fadedpez/tucotrainer/pkg/db/migrations"
	_ "github.com/mattn/go-sqlite3"
)

type CLI struct {
	Create  CreateCmd  `cmd:"" help:"Create a new migration file"`
	Migrate MigrateCmd `cmd:"" help:"Apply pending migrations"`
	Status  StatusCmd  `cmd:"" help:"List migrations and whether they are applied"`
}

type CreateCmd struct {
	Description string `arg:"" help:"What the migration does, e.g. \"add wallet tables\""`
	Dir         string `default:"pkg/db/migrations/sql" help:"Directory to store migrations"`
}

func (c *CreateCmd) Run() error {
	filePath, err := migrations.CreateMigration(c.Dir, c.Description)
	if err != nil {
		return fmt.Errorf("error creating migration: %w", err)
	}
	if err := addSQLiteExamples(filePath); err != nil {
		return err
	}

	fmt.Printf("Created migration file: %s\n", filePath)
	fmt.Println("Edit this file to add your database schema changes.")
	return nil
}

type MigrateCmd struct {
	DB  string `default:"data/tucotrainer.db" help:"Path to SQLite database"`
	Dir string `help:"Directory containing migrations; defaults to the embedded set"`
}

func (c *MigrateCmd) Run() error {
	db, err := openDB(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := migrations.NewMigrator(db, migrationFiles(c.Dir)).MigrateUp()
	if err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	fmt.Printf("Migrations applied successfully! (%d new)\n", applied)
	return nil
}

type StatusCmd struct {
	DB  string `default:"data/tucotrainer.db" help:"Path to SQLite database"`
	Dir string `help:"Directory containing migrations; defaults to the embedded set"`
}

func (c *StatusCmd) Run() error {
	db, err := openDB(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	migrator := migrations.NewMigrator(db, migrationFiles(c.Dir))
	if err := migrator.Initialize(); err != nil {
		return err
	}
	applied, err := migrator.GetAppliedMigrations()
	if err != nil {
		return err
	}
	all, err := migrator.LoadMigrations()
	if err != nil {
		return err
	}

	for _, m := range all {
		mark := " "
		if applied[m.Version] {
			mark = "x"
		}
		fmt.Printf("[%s] %s %s\n", mark, m.Version, m.Description)
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("migration"),
		kong.Description("Manage the SQLite schema."),
		kong.UsageOnError())
	ctx.FatalIfErrorf(ctx.Run())
}

func openDB(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return db, nil
}

func migrationFiles(dir string) fs.FS {
	if dir == "" {
		return migrations.Embedded()
	}
	return os.DirFS(dir)
}

func addSQLiteExamples(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading migration file: %w", err)
	}

	examples := `
-- SQLite Examples:

-- Create a new table
-- CREATE TABLE IF NOT EXISTS table_name (
--   id TEXT PRIMARY KEY,
--   player_id TEXT NOT NULL,
--   amount INTEGER NOT NULL DEFAULT 0,
--   created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
-- );

-- Add a column to existing table
-- ALTER TABLE table_name ADD COLUMN new_column TEXT;

-- Create an index
-- CREATE INDEX IF NOT EXISTS idx_table_column ON table_name(column_name);

-- Your migration SQL goes below this line:

`
	if err := os.WriteFile(filePath, append(content, examples...), 0644); err != nil {
		return fmt.Errorf("error writing to migration file: %w", err)
	}
	return nil
}
