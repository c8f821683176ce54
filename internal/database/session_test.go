package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T) (*SessionProvider, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSessionProvider(db), db, mock
}

func TestWithSession_Commit(t *testing.T) {
	p, db, mock := newProvider(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO contact").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := p.WithSession(context.Background(), func(ctx context.Context) error {
		conn := Conn(ctx, db)
		_, isTx := conn.(*sql.Tx)
		assert.True(t, isTx, "session must be bound to the context")
		_, err := conn.ExecContext(ctx, "INSERT INTO contact (name) VALUES ($1)", "Alice")
		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSession_RollbackOnError(t *testing.T) {
	p, _, mock := newProvider(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := p.WithSession(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSession_RollbackFailureIsReported(t *testing.T) {
	p, _, mock := newProvider(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("conn lost"))

	err := p.WithSession(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "rollback: conn lost")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSession_RollbackOnPanic(t *testing.T) {
	p, _, mock := newProvider(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = p.WithSession(context.Background(), func(ctx context.Context) error {
			panic("handler blew up")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSession_BeginError(t *testing.T) {
	p, _, mock := newProvider(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	called := false
	err := p.WithSession(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorContains(t, err, "begin session: pool exhausted")
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSession_CommitError(t *testing.T) {
	p, _, mock := newProvider(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := p.WithSession(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorContains(t, err, "commit session: serialization failure")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSession_SessionsAreNotShared(t *testing.T) {
	p, db, mock := newProvider(t)

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	var first, second DBTX
	require.NoError(t, p.WithSession(context.Background(), func(ctx context.Context) error {
		first = Conn(ctx, db)
		return nil
	}))
	require.NoError(t, p.WithSession(context.Background(), func(ctx context.Context) error {
		second = Conn(ctx, db)
		return nil
	}))

	assert.NotSame(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConn_FallsBackToPool(t *testing.T) {
	_, db, _ := newProvider(t)
	assert.Same(t, db, Conn(context.Background(), db))
}
