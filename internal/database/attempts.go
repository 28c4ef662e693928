package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/models"
)

func (d *Database) RecordAttempt(ctx context.Context, outcome models.AttemptOutcome, counter *int64, at time.Time) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		_, err := d.DB.ExecContext(ctx,
			"INSERT INTO attempts (outcome, counter, created_at) VALUES (?, ?, ?)",
			string(outcome), toNullableArg(counter), at.UnixMilli())
		return wrapErr(EntityAttempt, "record", 0, err)
	})
}

// RecentAttempts returns up to limit attempts, newest first.
func (d *Database) RecentAttempts(ctx context.Context, limit int) ([]models.Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Attempt, error) {
		rows, err := d.DB.QueryContext(ctx, `
			SELECT id, outcome, counter, created_at
			FROM attempts
			ORDER BY created_at DESC, id DESC
			LIMIT ?`, limit)
		if err != nil {
			return nil, wrapErr(EntityAttempt, "list", 0, err)
		}
		defer rows.Close()

		var attempts []models.Attempt
		for rows.Next() {
			var a models.Attempt
			var outcome string
			var counter sql.NullInt64
			var createdAt int64
			if err := rows.Scan(&a.ID, &outcome, &counter, &createdAt); err != nil {
				return nil, wrapErr(EntityAttempt, "list", 0, err)
			}
			a.Outcome = models.AttemptOutcome(outcome)
			if counter.Valid {
				v := counter.Int64
				a.Counter = &v
			}
			a.CreatedAt = time.UnixMilli(createdAt)
			attempts = append(attempts, a)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntityAttempt, "list", 0, err)
		}
		return attempts, nil
	})
}
