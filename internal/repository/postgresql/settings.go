package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meridianhr/payroll-backend-go/internal/domain/settings"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context, key string) (settings.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT key, value, version, updated_by, updated_at
		FROM system_settings
		WHERE key = $1
	`

	var s settings.Setting
	err := q.QueryRow(ctx, query, key).Scan(&s.Key, &s.Value, &s.Version, &s.UpdatedBy, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.Setting{}, settings.ErrSettingNotFound
		}
		return settings.Setting{}, fmt.Errorf("failed to get setting: %w", err)
	}

	return s, nil
}

// List implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) List(ctx context.Context) ([]settings.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT key, value, version, updated_by, updated_at
		FROM system_settings
		ORDER BY key ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var result []settings.Setting
	for rows.Next() {
		var s settings.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.Version, &s.UpdatedBy, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}

	return result, nil
}

// Upsert implements settings.SettingsRepository. The setting write and the
// history append happen in one transaction.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.Setting, h settings.HistoryEntry) (settings.Setting, error) {
	var saved settings.Setting

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		upsertQuery := `
			INSERT INTO system_settings (key, value, version, updated_by, updated_at)
			VALUES ($1, $2, 1, $3, NOW())
			ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value,
				version = system_settings.version + 1,
				updated_by = EXCLUDED.updated_by,
				updated_at = NOW()
			RETURNING key, value, version, updated_by, updated_at
		`

		err := q.QueryRow(txCtx, upsertQuery, s.Key, s.Value, s.UpdatedBy).Scan(
			&saved.Key, &saved.Value, &saved.Version, &saved.UpdatedBy, &saved.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert setting: %w", err)
		}

		historyQuery := `
			INSERT INTO system_setting_history (id, key, updated_by, reason, changes_summary, previous_value, new_value)
			VALUES (uuidv7(), $1, $2, $3, $4, $5, $6)
		`

		_, err = q.Exec(txCtx, historyQuery,
			h.Key,
			h.UpdatedBy,
			h.Reason,
			h.ChangesSummary,
			h.PreviousValue,
			h.NewValue,
		)
		if err != nil {
			return fmt.Errorf("failed to append setting history: %w", err)
		}

		return nil
	})
	if err != nil {
		return settings.Setting{}, err
	}

	return saved, nil
}

// History implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) History(ctx context.Context, key string) ([]settings.HistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, key, updated_by, reason, changes_summary, previous_value, new_value, updated_at
		FROM system_setting_history
		WHERE key = $1
		ORDER BY updated_at DESC
	`

	rows, err := q.Query(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get setting history: %w", err)
	}
	defer rows.Close()

	var entries []settings.HistoryEntry
	for rows.Next() {
		var h settings.HistoryEntry
		err := rows.Scan(
			&h.ID,
			&h.Key,
			&h.UpdatedBy,
			&h.Reason,
			&h.ChangesSummary,
			&h.PreviousValue,
			&h.NewValue,
			&h.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan setting history entry: %w", err)
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate setting history: %w", err)
	}

	return entries, nil
}
