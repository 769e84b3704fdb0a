package settings

import (
	"encoding/json"
	"time"

	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
)

type UpdateSettingRequest struct {
	Key          string          `json:"-"`
	SettingValue json.RawMessage `json:"setting_value"`
	Reason       string          `json:"reason"`
}

func (r *UpdateSettingRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsKnownKey(r.Key) {
		errs = append(errs, validator.ValidationError{Field: "key", Message: "unknown setting key"})
	}
	if len(r.SettingValue) == 0 {
		errs = append(errs, validator.ValidationError{Field: "setting_value", Message: "is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "a change reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingResponse struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	Version   int             `json:"version"`
	UpdatedBy string          `json:"updated_by,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func ToResponse(s Setting) SettingResponse {
	return SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		Version:   s.Version,
		UpdatedBy: s.UpdatedBy,
		UpdatedAt: s.UpdatedAt,
	}
}

type HistoryEntryResponse struct {
	ID             string          `json:"id"`
	Key            string          `json:"key"`
	UpdatedBy      string          `json:"updated_by"`
	Reason         string          `json:"reason"`
	ChangesSummary string          `json:"changes_summary"`
	PreviousValue  json.RawMessage `json:"previous_value,omitempty"`
	NewValue       json.RawMessage `json:"new_value"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ValidateFormulaRequest struct {
	Formula string `json:"formula"`
}

type ValidateFormulaResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}
