package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/models"
	"github.com/google/uuid"
)

const settingDeviceID = "device_id"

// EnsureDeviceID returns this device's identifier, creating one on first use.
func (d *Database) EnsureDeviceID(ctx context.Context) (string, error) {
	return d.EnsureSetting(ctx, settingDeviceID, uuid.NewString)
}

func (d *Database) LoadEntitlementState(ctx context.Context) (models.EntitlementState, error) {
	deviceID, err := d.EnsureDeviceID(ctx)
	if err != nil {
		return models.EntitlementState{}, err
	}
	return withDBContextResult(d, ctx, func(ctx context.Context) (models.EntitlementState, error) {
		state := models.EntitlementState{DeviceID: deviceID}
		var expiresAt, lockoutUntil sql.NullInt64
		err := d.DB.QueryRowContext(ctx, `
			SELECT expires_at, failed_attempts, lockouts, lockout_until, highest_counter
			FROM entitlement WHERE id = 1`).Scan(&expiresAt, &state.FailedAttempts, &state.Lockouts, &lockoutUntil, &state.HighestCounter)
		if errors.Is(err, sql.ErrNoRows) {
			return state, wrapErr(EntityEntitlement, "load", 0, ErrNotFound)
		}
		if err != nil {
			return state, wrapErr(EntityEntitlement, "load", 0, err)
		}
		state.ExpiresAt = fromNullableUnixMilli(expiresAt)
		state.LockoutUntil = fromNullableUnixMilli(lockoutUntil)
		return state, nil
	})
}

func (d *Database) SaveEntitlementState(ctx context.Context, state models.EntitlementState) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		return wrapErr(EntityEntitlement, "save", 0, saveState(ctx, d.DB, state))
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveState(ctx context.Context, db execer, state models.EntitlementState) error {
	_, err := db.ExecContext(ctx, `
		UPDATE entitlement
		SET expires_at = ?, failed_attempts = ?, lockouts = ?, lockout_until = ?, highest_counter = ?
		WHERE id = 1`,
		nullableUnixMilli(state.ExpiresAt), state.FailedAttempts, state.Lockouts,
		nullableUnixMilli(state.LockoutUntil), state.HighestCounter)
	return err
}

// RedeemCode marks counter as used and saves state in one transaction.
// A counter that is already recorded returns ErrCodeRedeemed.
func (d *Database) RedeemCode(ctx context.Context, counter int64, usedAt time.Time, state models.EntitlementState) error {
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO used_codes (counter, used_at) VALUES (?, ?)", counter, usedAt.UnixMilli())
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrCodeRedeemed
		}
		return saveState(ctx, tx, state)
	})
	return wrapErr(EntityCode, "redeem", counter, err)
}

// UsedCounters returns every redeemed HOTP counter.
func (d *Database) UsedCounters(ctx context.Context) (map[int64]bool, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (map[int64]bool, error) {
		rows, err := d.DB.QueryContext(ctx, "SELECT counter FROM used_codes")
		if err != nil {
			return nil, wrapErr(EntityCode, "list", 0, err)
		}
		defer rows.Close()

		used := make(map[int64]bool)
		for rows.Next() {
			var counter int64
			if err := rows.Scan(&counter); err != nil {
				return nil, wrapErr(EntityCode, "list", 0, err)
			}
			used[counter] = true
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntityCode, "list", 0, err)
		}
		return used, nil
	})
}

func (d *Database) GetUsedCodes(ctx context.Context) ([]models.UsedCode, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.UsedCode, error) {
		rows, err := d.DB.QueryContext(ctx, "SELECT counter, used_at FROM used_codes ORDER BY counter ASC")
		if err != nil {
			return nil, wrapErr(EntityCode, "list", 0, err)
		}
		defer rows.Close()

		var codes []models.UsedCode
		for rows.Next() {
			var c models.UsedCode
			var usedAt int64
			if err := rows.Scan(&c.Counter, &usedAt); err != nil {
				return nil, wrapErr(EntityCode, "list", 0, err)
			}
			c.UsedAt = time.UnixMilli(usedAt)
			codes = append(codes, c)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntityCode, "list", 0, err)
		}
		return codes, nil
	})
}
