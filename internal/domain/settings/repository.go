package settings

import "context"

type SettingsRepository interface {
	Get(ctx context.Context, key string) (Setting, error)
	List(ctx context.Context) ([]Setting, error)
	// Upsert writes the setting and appends the history entry atomically.
	Upsert(ctx context.Context, s Setting, h HistoryEntry) (Setting, error)
	History(ctx context.Context, key string) ([]HistoryEntry, error)
}
