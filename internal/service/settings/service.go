package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/meridianhr/payroll-backend-go/internal/domain/settings"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/formula"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/paycalc"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
)

type SettingsServiceImpl struct {
	db     *database.DB
	repo   settings.SettingsRepository
	engine *formula.Engine
}

func NewSettingsService(db *database.DB, repo settings.SettingsRepository, engine *formula.Engine) settings.SettingsService {
	return &SettingsServiceImpl{db: db, repo: repo, engine: engine}
}

func getUserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// List returns every known setting, filling in system defaults for keys
// never customized.
func (s *SettingsServiceImpl) List(ctx context.Context) ([]settings.SettingResponse, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	storedByKey := make(map[string]settings.Setting, len(stored))
	for _, setting := range stored {
		storedByKey[setting.Key] = setting
	}

	keys := []string{
		settings.KeyPAYEBrackets,
		settings.KeyTaxExemption,
		settings.KeyPensionRate,
		settings.KeyNHFRate,
		settings.KeyNSITFRate,
		settings.KeyITFRate,
		settings.KeyGrossFormula,
		settings.KeyTaxableFormula,
		settings.KeyUniversalComponents,
	}

	responses := make([]settings.SettingResponse, 0, len(keys))
	for _, key := range keys {
		if setting, ok := storedByKey[key]; ok {
			responses = append(responses, settings.ToResponse(setting))
			continue
		}
		responses = append(responses, settings.SettingResponse{
			Key:     key,
			Value:   settings.SystemDefaults[key],
			Version: 0,
		})
	}
	return responses, nil
}

func (s *SettingsServiceImpl) Get(ctx context.Context, key string) (settings.SettingResponse, error) {
	if !settings.IsKnownKey(key) {
		return settings.SettingResponse{}, settings.ErrUnknownKey
	}

	stored, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, settings.ErrSettingNotFound) {
			return settings.SettingResponse{
				Key:     key,
				Value:   settings.SystemDefaults[key],
				Version: 0,
			}, nil
		}
		return settings.SettingResponse{}, err
	}
	return settings.ToResponse(stored), nil
}

// Update writes a setting. Every write requires a reason and lands in the
// audit history alongside the previous value.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingRequest) (settings.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingResponse{}, err
	}

	if err := s.validateValue(req.Key, req.SettingValue); err != nil {
		return settings.SettingResponse{}, err
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return settings.SettingResponse{}, err
	}

	var previous json.RawMessage
	current, err := s.repo.Get(ctx, req.Key)
	switch {
	case err == nil:
		previous = current.Value
	case errors.Is(err, settings.ErrSettingNotFound):
		previous = settings.SystemDefaults[req.Key]
	default:
		return settings.SettingResponse{}, err
	}

	saved, err := s.repo.Upsert(ctx,
		settings.Setting{
			Key:       req.Key,
			Value:     req.SettingValue,
			UpdatedBy: userID,
		},
		settings.HistoryEntry{
			Key:            req.Key,
			UpdatedBy:      userID,
			Reason:         req.Reason,
			ChangesSummary: fmt.Sprintf("%s updated", req.Key),
			PreviousValue:  previous,
			NewValue:       req.SettingValue,
		},
	)
	if err != nil {
		return settings.SettingResponse{}, err
	}

	return settings.ToResponse(saved), nil
}

// Reset restores the system default for a key. It is an audited write like
// any other, so the reason is still required.
func (s *SettingsServiceImpl) Reset(ctx context.Context, key string, reason string) (settings.SettingResponse, error) {
	if !settings.IsKnownKey(key) {
		return settings.SettingResponse{}, settings.ErrUnknownKey
	}
	if validator.IsEmpty(reason) {
		return settings.SettingResponse{}, settings.ErrReasonRequired
	}

	return s.Update(ctx, settings.UpdateSettingRequest{
		Key:          key,
		SettingValue: settings.SystemDefaults[key],
		Reason:       reason,
	})
}

func (s *SettingsServiceImpl) History(ctx context.Context, key string) ([]settings.HistoryEntryResponse, error) {
	if !settings.IsKnownKey(key) {
		return nil, settings.ErrUnknownKey
	}

	entries, err := s.repo.History(ctx, key)
	if err != nil {
		return nil, err
	}

	responses := make([]settings.HistoryEntryResponse, 0, len(entries))
	for _, h := range entries {
		responses = append(responses, settings.HistoryEntryResponse{
			ID:             h.ID,
			Key:            h.Key,
			UpdatedBy:      h.UpdatedBy,
			Reason:         h.Reason,
			ChangesSummary: h.ChangesSummary,
			PreviousValue:  h.PreviousValue,
			NewValue:       h.NewValue,
			UpdatedAt:      h.UpdatedAt,
		})
	}
	return responses, nil
}

func (s *SettingsServiceImpl) ValidateFormula(ctx context.Context, req settings.ValidateFormulaRequest) settings.ValidateFormulaResponse {
	valid, message := s.engine.Validate(req.Formula)
	return settings.ValidateFormulaResponse{Valid: valid, Message: message}
}

// validateValue checks the payload shape per key before it is stored.
func (s *SettingsServiceImpl) validateValue(key string, value json.RawMessage) error {
	switch key {
	case settings.KeyPAYEBrackets:
		var brackets []paycalc.Bracket
		if err := json.Unmarshal(value, &brackets); err != nil || len(brackets) == 0 {
			return settings.ErrInvalidValue
		}
		// Bands must ascend, with at most one open-ended band, last.
		var lower decimal.Decimal
		for i, b := range brackets {
			if b.Rate.IsNegative() {
				return settings.ErrInvalidValue
			}
			if b.UpperBound == nil {
				if i != len(brackets)-1 {
					return settings.ErrInvalidValue
				}
				continue
			}
			if b.UpperBound.LessThanOrEqual(lower) {
				return settings.ErrInvalidValue
			}
			lower = *b.UpperBound
		}
	case settings.KeyTaxExemption:
		var exemption struct {
			Fixed     decimal.Decimal `json:"fixed"`
			GrossRate decimal.Decimal `json:"gross_rate"`
		}
		if err := json.Unmarshal(value, &exemption); err != nil {
			return settings.ErrInvalidValue
		}
		if exemption.Fixed.IsNegative() || exemption.GrossRate.IsNegative() {
			return settings.ErrInvalidValue
		}
	case settings.KeyPensionRate, settings.KeyNHFRate, settings.KeyNSITFRate, settings.KeyITFRate:
		var rate decimal.Decimal
		if err := json.Unmarshal(value, &rate); err != nil {
			return settings.ErrInvalidValue
		}
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return settings.ErrInvalidValue
		}
	case settings.KeyGrossFormula, settings.KeyTaxableFormula:
		var expr string
		if err := json.Unmarshal(value, &expr); err != nil {
			return settings.ErrInvalidValue
		}
		if expr == "" {
			return nil
		}
		if valid, _ := s.engine.Validate(expr); !valid {
			return settings.ErrInvalidValue
		}
	case settings.KeyUniversalComponents:
		var components []map[string]interface{}
		if err := json.Unmarshal(value, &components); err != nil || len(components) == 0 {
			return settings.ErrInvalidValue
		}
	default:
		return settings.ErrUnknownKey
	}
	return nil
}
