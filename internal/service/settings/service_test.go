package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhr/payroll-backend-go/internal/domain/settings"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/formula"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
)

func newTestService(t *testing.T) *SettingsServiceImpl {
	t.Helper()
	engine, err := formula.NewEngine()
	require.NoError(t, err)
	return &SettingsServiceImpl{engine: engine}
}

func TestUpdateSettingRequestRequiresReason(t *testing.T) {
	req := settings.UpdateSettingRequest{
		Key:          settings.KeyPensionRate,
		SettingValue: json.RawMessage(`"8"`),
	}

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "reason", errs[0].Field)

	req.Reason = "regulatory update"
	assert.NoError(t, req.Validate())
}

func TestValidateValue(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"valid rate", settings.KeyPensionRate, `"8"`, nil},
		{"rate over 100", settings.KeyPensionRate, `"120"`, settings.ErrInvalidValue},
		{"negative rate", settings.KeyNHFRate, `"-1"`, settings.ErrInvalidValue},
		{"rate not a number", settings.KeyITFRate, `"abc"`, settings.ErrInvalidValue},
		{"valid exemption", settings.KeyTaxExemption, `{"fixed": "200000", "gross_rate": "20"}`, nil},
		{"negative exemption", settings.KeyTaxExemption, `{"fixed": "-1", "gross_rate": "20"}`, settings.ErrInvalidValue},
		{"valid brackets", settings.KeyPAYEBrackets, `[{"upper_bound": "300000", "rate": "7"}, {"upper_bound": null, "rate": "24"}]`, nil},
		{"brackets out of order", settings.KeyPAYEBrackets, `[{"upper_bound": "300000", "rate": "7"}, {"upper_bound": "100000", "rate": "11"}]`, settings.ErrInvalidValue},
		{"open band not last", settings.KeyPAYEBrackets, `[{"upper_bound": null, "rate": "7"}, {"upper_bound": "300000", "rate": "11"}]`, settings.ErrInvalidValue},
		{"empty brackets", settings.KeyPAYEBrackets, `[]`, settings.ErrInvalidValue},
		{"valid formula", settings.KeyTaxableFormula, `"gross - pension - nhf - exemption"`, nil},
		{"empty formula allowed", settings.KeyGrossFormula, `""`, nil},
		{"formula with unknown variable", settings.KeyTaxableFormula, `"gross - mystery"`, settings.ErrInvalidValue},
		{"unknown key", "NOT_A_KEY", `"1"`, settings.ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.validateValue(tt.key, json.RawMessage(tt.value))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestResetRequiresReason(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Reset(context.Background(), settings.KeyPensionRate, "")
	assert.ErrorIs(t, err, settings.ErrReasonRequired)

	_, err = svc.Reset(context.Background(), "NOT_A_KEY", "because")
	assert.ErrorIs(t, err, settings.ErrUnknownKey)
}
