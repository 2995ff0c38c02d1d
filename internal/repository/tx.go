package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// withTx runs fn inside a transaction. Any error from fn rolls the
// transaction back; otherwise it is committed and a commit failure is
// returned to the caller. fn must only use tx: with SQLite the pool
// holds a single connection and touching the *sqlx.DB would block.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}

// Option configures a repository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the source of "now" when shows are
// split into past and upcoming.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
