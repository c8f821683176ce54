package database

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UnitOfWork runs fn inside a session that is committed on success and
// released on every other exit path.
type UnitOfWork interface {
	WithSession(ctx context.Context, fn func(ctx context.Context) error) error
}

type sessionKey struct{}

// SessionProvider hands out transaction-backed sessions drawn from the pool.
// Sessions are never shared: every call to Acquire or WithSession begins a new one.
type SessionProvider struct {
	db *sql.DB
}

// NewSessionProvider creates a SessionProvider over the given pool.
func NewSessionProvider(db *sql.DB) *SessionProvider {
	return &SessionProvider{db: db}
}

var _ UnitOfWork = (*SessionProvider)(nil)

// Acquire begins a new session. Writes are invisible to other sessions until
// the caller commits; the caller must Commit or Rollback.
func (p *SessionProvider) Acquire(ctx context.Context) (*sql.Tx, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	return tx, nil
}

// WithSession acquires a session, binds it to the context handed to fn and
// commits it when fn returns nil. A failing or panicking fn rolls it back.
func (p *SessionProvider) WithSession(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := p.Acquire(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && err != nil {
			err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
	}()

	if err = fn(context.WithValue(ctx, sessionKey{}, tx)); err != nil {
		return err
	}

	committed = true
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Conn returns the session bound to ctx, or fallback when there is none.
func Conn(ctx context.Context, fallback DBTX) DBTX {
	if tx, ok := ctx.Value(sessionKey{}).(*sql.Tx); ok {
		return tx
	}
	return fallback
}
