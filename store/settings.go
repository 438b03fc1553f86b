// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/axljndotdev/manito-manita/auth"
	"github.com/axljndotdev/manito-manita/models"
)

// ensureSettings creates the singleton row if it is missing. Concurrent
// callers are safe: the insert is a no-op once the row exists.
func (q *Queries) ensureSettings(ctx context.Context) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO admin_settings (id, draw_enabled, admin_pin, updated_at)
		VALUES ($1, FALSE, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`, models.SettingsID, q.adminPin, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}

func (q *Queries) selectSettings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	err := q.q.QueryRowContext(ctx, `
		SELECT id, draw_enabled, admin_pin, updated_at FROM admin_settings WHERE id = $1
	`, models.SettingsID).Scan(&s.ID, &s.DrawEnabled, &s.AdminPin, &s.UpdatedAt)
	return s, err
}

// GetSettings returns the singleton settings row. Only the first call on an
// empty database writes.
func (q *Queries) GetSettings(ctx context.Context) (models.Settings, error) {
	s, err := q.selectSettings(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		if err := q.ensureSettings(ctx); err != nil {
			return models.Settings{}, err
		}
		s, err = q.selectSettings(ctx)
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to query settings: %w", err)
	}
	return s, nil
}

// ToggleDrawEnabled flips drawEnabled in one statement and returns the new value
func (q *Queries) ToggleDrawEnabled(ctx context.Context) (bool, error) {
	if err := q.ensureSettings(ctx); err != nil {
		return false, err
	}

	var enabled bool
	err := q.q.QueryRowContext(ctx, `
		UPDATE admin_settings
		SET draw_enabled = NOT draw_enabled, updated_at = $2
		WHERE id = $1
		RETURNING draw_enabled
	`, models.SettingsID, time.Now().UTC()).Scan(&enabled)
	if err != nil {
		return false, fmt.Errorf("failed to toggle draw: %w", err)
	}
	return enabled, nil
}

// VerifyAdminPin reports whether pin matches the stored admin PIN
func (q *Queries) VerifyAdminPin(ctx context.Context, pin string) (bool, error) {
	s, err := q.GetSettings(ctx)
	if err != nil {
		return false, err
	}
	return auth.VerifyAdminPin(pin, s.AdminPin), nil
}
