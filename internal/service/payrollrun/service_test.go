package payrollrun

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/meridianhr/payroll-backend-go/internal/domain/emolument"
	"github.com/meridianhr/payroll-backend-go/internal/domain/paygrade"
)

func TestBuildCalcInput(t *testing.T) {
	components := map[string]emolument.Component{
		"BASIC":   {ComponentCode: "BASIC", Category: emolument.CategoryBasic, IsPensionable: true},
		"HOUSING": {ComponentCode: "HOUSING", Category: emolument.CategoryAllowance, IsPensionable: true},
		"MEAL":    {ComponentCode: "MEAL", Category: emolument.CategoryAllowance},
	}
	grade := paygrade.PayGrade{
		Emoluments: map[string]decimal.Decimal{
			"BASIC":   decimal.NewFromInt(100000),
			"HOUSING": decimal.NewFromInt(40000),
			"MEAL":    decimal.NewFromInt(10000),
			"UNKNOWN": decimal.NewFromInt(99999), // no metadata, excluded from bases
		},
	}

	input := buildCalcInput(grade, components, 20, 22)

	assert.True(t, input.Pensionable.Equal(decimal.NewFromInt(140000)))
	assert.True(t, input.Basic.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, 20, input.DaysPresent)
	assert.Equal(t, 22, input.PeriodDays)
	// Gross still sums every entry, metadata or not.
	assert.True(t, sumEmoluments(input.Emoluments).Equal(decimal.NewFromInt(249999)))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, daysInMonth(2026, 1))
	assert.Equal(t, 28, daysInMonth(2026, 2))
	assert.Equal(t, 29, daysInMonth(2028, 2))
	assert.Equal(t, 30, daysInMonth(2026, 4))
	assert.Equal(t, 31, daysInMonth(2026, 12))
}
