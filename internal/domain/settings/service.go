package settings

import "context"

type SettingsService interface {
	List(ctx context.Context) ([]SettingResponse, error)
	Get(ctx context.Context, key string) (SettingResponse, error)
	Update(ctx context.Context, req UpdateSettingRequest) (SettingResponse, error)
	Reset(ctx context.Context, key string, reason string) (SettingResponse, error)
	History(ctx context.Context, key string) ([]HistoryEntryResponse, error)
	ValidateFormula(ctx context.Context, req ValidateFormulaRequest) ValidateFormulaResponse
}
