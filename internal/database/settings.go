package database

import (
	"context"
	"database/sql"
	"errors"
)

func (d *Database) GetSetting(ctx context.Context, key string) (string, bool) {
	value, err := withDBContextResult(d, ctx, func(ctx context.Context) (sql.NullString, error) {
		var value sql.NullString
		err := d.DB.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
		return value, err
	})
	if err != nil || !value.Valid {
		return "", false
	}
	return value.String, true
}

func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		_, err := d.DB.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value)
		return wrapErr(EntitySetting, "set", 0, err)
	})
}

// EnsureSetting returns the stored value for key, storing generate() first
// when the key is missing.
func (d *Database) EnsureSetting(ctx context.Context, key string, generate func() string) (string, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (string, error) {
		var value string
		err := d.DB.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
		if err == nil && value != "" {
			return value, nil
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return "", wrapErr(EntitySetting, "get", 0, err)
		}
		value = generate()
		if _, err := d.DB.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value); err != nil {
			return "", wrapErr(EntitySetting, "set", 0, err)
		}
		return value, nil
	})
}
