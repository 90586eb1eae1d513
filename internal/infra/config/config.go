package config

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

const (
	DefaultServerAddr      = ":3000"
	DefaultDatabaseDriver  = "sqlite"
	DefaultDatabaseDSN     = "./library.db"
	DefaultPasswordHashing = "plain"
	DefaultLogLevel        = "info"

	ShutdownTimeout = 10 * time.Second
)

type Config struct {
	ServerAddr      string `env:"RUN_ADDRESS"`
	DatabaseDriver  string `env:"DATABASE_DRIVER"`
	DatabaseDSN     string `env:"DATABASE_DSN"`
	PasswordHashing string `env:"PASSWORD_HASHING"`
	AutoMigrate     bool   `env:"AUTO_MIGRATE"`
	LogLevel        string `env:"LOG_LEVEL"`
	MemorySeed      string `env:"MEMORY_SEED"`
}

// Read loads .env (if any), then the environment, then falls back to flags.
// Environment values take precedence over flags.
func Read() (*Config, error) {
	return ReadFrom(flag.CommandLine, os.Args[1:], ".env")
}

func ReadFrom(fs *flag.FlagSet, args []string, dotenv string) (*Config, error) {
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	conf := new(Config)
	if err := env.Parse(conf); err != nil {
		return nil, err
	}
	flagServerAddr := fs.String("a", DefaultServerAddr, "Server address. Usage: -a=host:port")
	flagDBDriver := fs.String("t", DefaultDatabaseDriver, "Database driver: sqlite, pgx or memory")
	flagDBDSN := fs.String("d", DefaultDatabaseDSN, "Database DSN or SQLite file path")
	flagHashing := fs.String("p", DefaultPasswordHashing, "Password storage: plain or bcrypt")
	flagMigrate := fs.Bool("m", false, "Apply schema migrations on startup")
	flagLogLevel := fs.String("l", DefaultLogLevel, "Log level")
	flagMemorySeed := fs.String("s", "", "JSON file with books for the memory driver")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if conf.ServerAddr == "" {
		conf.ServerAddr = *flagServerAddr
	}
	if conf.DatabaseDriver == "" {
		conf.DatabaseDriver = *flagDBDriver
	}
	if conf.DatabaseDSN == "" {
		conf.DatabaseDSN = *flagDBDSN
	}
	if conf.PasswordHashing == "" {
		conf.PasswordHashing = *flagHashing
	}
	if value, ok := os.LookupEnv("AUTO_MIGRATE"); !ok || value == "" {
		conf.AutoMigrate = *flagMigrate
	}
	if conf.LogLevel == "" {
		conf.LogLevel = *flagLogLevel
	}
	if conf.MemorySeed == "" {
		conf.MemorySeed = *flagMemorySeed
	}
	return conf, nil
}
