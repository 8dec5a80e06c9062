package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lanternsec/keygate/internal/auth/store"
)

// txStore scopes the repos to a single *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Users() store.Users { return &usersRepo{db: t.tx} }
func (t *txStore) Roles() store.Roles { return &rolesRepo{db: t.tx} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Tx on an open transaction returns the transaction itself. SQLite has no
// nested transactions, so the outermost caller owns commit/rollback.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return t, nil
}

// WithTx on an open transaction runs fn directly against it without
// committing. The outermost WithTx/Commit decides the outcome.
func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return fn(t)
}

func (t *txStore) ApplyMigrations() error {
	return errors.New("sqlite: cannot migrate inside a transaction")
}

func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }
