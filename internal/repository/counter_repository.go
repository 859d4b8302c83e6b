package repository

import (
	"context"
	"database/sql"
)

// counterSeedBase is where a repaired counter restarts. Identifiers below
// this value are assumed to have been issued by the legacy scheme, so a
// corrupt counter must never be reseeded lower.
const counterSeedBase = 100000

// sqlExecer is the slice of *sql.DB the counter repository needs. The
// repair-and-retry logic lives above SQL, so it is written against this
// seam rather than the full pool handle.
type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CounterRepo provides the named sequence counters backing identifier
// allocation. Each increment is a single statement so two concurrent
// callers can never observe the same post-increment value; correctness
// does not depend on any application-side locking.
type CounterRepo struct{ DB sqlExecer }

func NewCounterRepo(db *sql.DB) *CounterRepo { return &CounterRepo{DB: db} }

// Increment atomically bumps the named counter and returns the new value.
// A missing row is created with value 1 (upsert semantics). The
// LAST_INSERT_ID(expr) form makes the post-increment value readable from
// the statement result without a second round trip, which is what keeps
// the operation atomic under concurrent callers.
//
// A row whose seq column is NULL (corrupt or legacy state) yields no usable
// value; in that case one repair pass force-sets the counter to the seed
// base and the increment is retried once. A second failure is reported as
// ErrCounterCorrupt.
func (r *CounterRepo) Increment(ctx context.Context, name string) (int64, error) {
	v, err := r.incrementOnce(ctx, name)
	if err != nil {
		return 0, err
	}
	if v > 0 {
		return v, nil
	}
	// Repair pass: seed the counter, then retry exactly once.
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE counters SET seq = ? WHERE name = ?", counterSeedBase, name); err != nil {
		return 0, err
	}
	v, err = r.incrementOnce(ctx, name)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, ErrCounterCorrupt
	}
	return v, nil
}

func (r *CounterRepo) incrementOnce(ctx context.Context, name string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO counters (name, seq) VALUES (?, LAST_INSERT_ID(1))
		 ON DUPLICATE KEY UPDATE seq = LAST_INSERT_ID(seq + 1)`,
		name)
	if err != nil {
		return 0, err
	}
	// LastInsertId carries LAST_INSERT_ID() from this statement's
	// connection; it is 0 when seq was NULL.
	return res.LastInsertId()
}
