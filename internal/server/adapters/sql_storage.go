package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/matthiasBT/library/internal/infra/logging"
	"github.com/matthiasBT/library/internal/server/entities"
	_ "modernc.org/sqlite"
)

// SQLStorage is the query layer over a process-wide *sqlx.DB. Queries use '?'
// placeholders and are rebound for the driver in use.
type SQLStorage struct {
	logger logging.ILogger
	db     *sqlx.DB
}

func NewSQLStorage(logger logging.ILogger, db *sqlx.DB) *SQLStorage {
	return &SQLStorage{logger: logger, db: db}
}

// OpenDB opens the store and checks that it answers. The handle is returned
// even when the ping fails so that the caller may keep serving and let each
// request fail on its own.
func OpenDB(ctx context.Context, driver string, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite", "pgx":
	default:
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownDriver, driver)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		return db, fmt.Errorf("ping %s store: %w", driver, err)
	}
	return db, nil
}

func (st *SQLStorage) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	if err := st.db.SelectContext(ctx, dest, st.db.Rebind(query), args...); err != nil {
		st.logFailure(query, err)
		return err
	}
	return nil
}

func (st *SQLStorage) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	if err := st.db.GetContext(ctx, dest, st.db.Rebind(query), args...); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			st.logFailure(query, err)
		}
		return err
	}
	return nil
}

// InsertContext expects the query to end with "returning id".
func (st *SQLStorage) InsertContext(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	if err := st.db.GetContext(ctx, &id, st.db.Rebind(query), args...); err != nil {
		st.logFailure(query, err)
		return 0, err
	}
	return id, nil
}

func (st *SQLStorage) logFailure(query string, err error) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := "query failed"
		if pgerrcode.IsConnectionException(pgErr.Code) {
			kind = "store unavailable"
		}
		st.logger.Errorf("%s (SQLSTATE %s): %s. Query: %s", kind, pgErr.Code, pgErr.Message, query)
		return
	}
	st.logger.Errorf("Query failed: %s. Query: %s", err.Error(), query)
}
