package sqlite

import (
	"context"
	"time"
)

type consumedTokensRepo struct {
	q queryer
}

// MarkConsumed relies on the primary key: of any number of concurrent
// inserts for the same jti, exactly one affects a row.
func (r *consumedTokensRepo) MarkConsumed(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO consumed_refresh_tokens (jti, expires_at) VALUES (?, ?)`,
		jti, expiresAt.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *consumedTokensRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM consumed_refresh_tokens WHERE expires_at <= ?`, now.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
