package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/matthiasBT/library/internal/infra/config"
	"github.com/matthiasBT/library/internal/infra/logging"
	"github.com/matthiasBT/library/internal/infra/migrations"
	"github.com/matthiasBT/library/internal/server/adapters"
	"github.com/matthiasBT/library/internal/server/adapters/memory"
	"github.com/matthiasBT/library/internal/server/adapters/repositories"
	"github.com/matthiasBT/library/internal/server/entities"
	"github.com/matthiasBT/library/internal/server/usecases"
)

func setupServer(logger logging.ILogger, controller *usecases.BaseController) *chi.Mux {
	r := chi.NewRouter()
	r.Use(logging.Middleware(logger))
	r.Mount("/", controller.Route())
	return r
}

// setupRepos never fails on an unreachable store: the error is logged and
// every request then fails on its own.
func setupRepos(
	ctx context.Context, logger logging.ILogger, conf *config.Config, crypto entities.ICryptoProvider,
) (entities.BookRepo, entities.UserRepo, func()) {
	if conf.DatabaseDriver == "memory" {
		store, err := memory.NewStore(logger, crypto)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Infoln("Using the in-memory store")
		if conf.MemorySeed != "" {
			if _, err := store.LoadBooksFile(conf.MemorySeed); err != nil {
				logger.Errorf("Failed to load books from %s: %v", conf.MemorySeed, err)
			}
		}
		return store, store, func() {}
	}
	db, err := adapters.OpenDB(ctx, conf.DatabaseDriver, conf.DatabaseDSN)
	if db == nil {
		logger.Fatal(err)
	}
	if err != nil {
		logger.Errorf("Error opening database: %v", err)
	} else {
		logger.Infof("Connected to the %s database", conf.DatabaseDriver)
		if conf.AutoMigrate {
			if err := migrations.Migrate(db.DB, conf.DatabaseDriver); err != nil {
				logger.Errorf("Failed to apply migrations: %v", err)
			}
		}
	}
	storage := adapters.NewSQLStorage(logger, db)
	books := repositories.NewSQLBookRepo(logger, storage)
	users := repositories.NewSQLUserRepo(logger, storage, crypto)
	return books, users, func() { db.Close() }
}

func main() {
	logger := logging.SetupLogger()
	conf, err := config.Read()
	if err != nil {
		logger.Fatal(err)
	}
	logging.SetLevel(logger, conf.LogLevel)
	logger.Infof(
		"Config. Server address: %s. Database driver: %s. Database DSN: %s. Password hashing: %s",
		conf.ServerAddr,
		conf.DatabaseDriver,
		conf.DatabaseDSN,
		conf.PasswordHashing,
	)
	crypto, err := adapters.NewCryptoProvider(logger, conf.PasswordHashing)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	books, users, closeStore := setupRepos(ctx, logger, conf, crypto)
	defer closeStore()
	controller := usecases.NewBaseController(logger, books, users)
	r := setupServer(logger, controller)

	srv := http.Server{Addr: conf.ServerAddr, Handler: r}
	go func() {
		<-ctx.Done()
		logger.Infoln("Shutting down the server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Graceful shutdown failed: %v", err)
		}
	}()
	logger.Infof("Server running at %s", conf.ServerAddr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(err)
	}
}
