package paygrade

import (
	"testing"

	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUploadFile(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{"xlsx within limit", "grades.xlsx", 2_100_000, false},
		{"legacy xls rejected", "grades.xls", 1024, true},
		{"uppercase extension", "GRADES.XLSX", 1024, false},
		{"csv rejected", "grades.csv", 1024, true},
		{"no extension", "grades", 1024, true},
		{"over 5MB", "grades.xlsx", MaxUploadBytes + 1, true},
		{"exactly 5MB accepted", "grades.xlsx", MaxUploadBytes, false},
		{"empty file", "grades.xlsx", 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateUploadFile(c.filename, c.size)
			if c.wantErr {
				require.Error(t, err)
				var verrs validator.ValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.Contains(t, verrs.ToMap(), "file")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPayGradeTotalCompensation(t *testing.T) {
	p := PayGrade{Emoluments: map[string]decimal.Decimal{
		"BASIC":     decimal.NewFromInt(150000),
		"HOUSING":   decimal.NewFromInt(50000),
		"LUNCH_DED": decimal.NewFromInt(5000), // deductions count too: total is unconditional
	}}
	assert.True(t, p.TotalCompensation().Equal(decimal.NewFromInt(205000)))

	empty := PayGrade{}
	assert.True(t, empty.TotalCompensation().IsZero())
}

func TestPreviewRowTotal(t *testing.T) {
	row := PreviewRow{Emoluments: []PreviewEmolument{
		{ComponentCode: "BASIC", Amount: decimal.NewFromInt(150000)},
		{ComponentCode: "TRANSPORT", Amount: decimal.RequireFromString("25000.50")},
	}}
	assert.True(t, row.Total().Equal(decimal.RequireFromString("175000.50")))
	assert.True(t, PreviewRow{}.Total().IsZero())
}

func TestCreatePayGradeRequestValidate(t *testing.T) {
	valid := CreatePayGradeRequest{
		JobStructureID:   "js-1",
		GradeName:        "Grade 1",
		GradeCode:        "G1",
		PayStructureType: "monthly",
		Currency:         "NGN",
		Emoluments:       map[string]decimal.Decimal{"BASIC": decimal.NewFromInt(150000)},
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.GradeCode = "g-1"
	bad.Currency = "naira"
	bad.Emoluments = map[string]decimal.Decimal{"BASIC": decimal.NewFromInt(-1)}
	err := bad.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "grade_code")
	assert.Contains(t, m, "currency")
	assert.Contains(t, m, "emoluments.BASIC")
}

func TestBulkConfirmRequestValidate(t *testing.T) {
	req := BulkConfirmRequest{ClientID: "c-1", JobStructureID: "js-1"}
	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "preview_data")

	req.PreviewData = []PreviewRow{{GradeCode: "G1"}}
	require.NoError(t, req.Validate())
}
