package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationsFS embed.FS

// Dialect maps a database/sql driver name onto the goose dialect and the
// embedded directory holding its migrations.
func Dialect(driver string) (dialect string, dir string, err error) {
	switch driver {
	case "sqlite":
		return "sqlite3", "sqlite", nil
	case "pgx":
		return "postgres", "postgres", nil
	}
	return "", "", fmt.Errorf("no migrations for driver %q", driver)
}

func Migrate(db *sql.DB, driver string) error {
	return Run(db, driver, "up")
}

// Run executes a goose command (up, down, status) against db.
func Run(db *sql.DB, driver string, command string) error {
	dialect, dir, err := Dialect(driver)
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	switch command {
	case "up":
		return goose.Up(db, dir)
	case "down":
		return goose.Down(db, dir)
	case "status":
		return goose.Status(db, dir)
	}
	return fmt.Errorf("unknown migration command %q", command)
}
