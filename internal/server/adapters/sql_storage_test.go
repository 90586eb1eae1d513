package adapters

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthiasBT/library/internal/infra/migrations"
	"github.com/matthiasBT/library/internal/server/entities"
)

func newTestStorage(t *testing.T) *SQLStorage {
	t.Helper()
	db, err := OpenDB(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Migrate(db.DB, "sqlite"))
	return NewSQLStorage(quietLogger(), db)
}

func TestSQLStorageRoundTrips(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	id, err := st.InsertContext(ctx, "insert into users(username, password) values (?, ?) returning id", "ann", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	id, err = st.InsertContext(ctx, "insert into users(username, password) values (?, ?) returning id", "ann", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	var users []entities.User
	require.NoError(t, st.SelectContext(ctx, &users, "select id, username, password from users where username = ?", "ann"))
	assert.Len(t, users, 2)

	var user entities.User
	err = st.GetContext(ctx, &user, "select id, username, password from users where username = ?", "bob")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSQLStorageFailure(t *testing.T) {
	st := newTestStorage(t)
	var books []entities.Book
	err := st.SelectContext(context.Background(), &books, "select * from missing_table")
	assert.Error(t, err)
}

func TestOpenDBUnknownDriver(t *testing.T) {
	_, err := OpenDB(context.Background(), "oracle", "")
	assert.ErrorIs(t, err, entities.ErrUnknownDriver)
}
