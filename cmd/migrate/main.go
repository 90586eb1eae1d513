package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/matthiasBT/library/internal/infra/config"
	"github.com/matthiasBT/library/internal/infra/logging"
	"github.com/matthiasBT/library/internal/infra/migrations"
	"github.com/matthiasBT/library/internal/server/adapters"
)

func envOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logger := logging.SetupLogger()
	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	}

	var (
		command = flag.String("command", "up", "Migration command: up, down, status")
		driver  = flag.String("t", envOr("DATABASE_DRIVER", config.DefaultDatabaseDriver), "Database driver: sqlite or pgx")
		dsn     = flag.String("d", envOr("DATABASE_DSN", config.DefaultDatabaseDSN), "Database DSN or SQLite file path")
	)
	flag.Parse()

	db, err := adapters.OpenDB(context.Background(), *driver, *dsn)
	if err != nil {
		logger.Fatal(err)
	}
	defer db.Close()

	if err := migrations.Run(db.DB, *driver, *command); err != nil {
		logger.Fatal(err)
	}
	logger.Infof("Migration command %q done", *command)
}
