package paygrade

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhr/payroll-backend-go/internal/domain/emolument"
	"github.com/meridianhr/payroll-backend-go/internal/domain/jobstructure"
	"github.com/meridianhr/payroll-backend-go/internal/domain/paygrade"
)

func testComponents() map[string]emolument.Component {
	return map[string]emolument.Component{
		"BASIC":   {ComponentCode: "BASIC", ComponentName: "Basic Salary", Category: emolument.CategoryBasic, IsPensionable: true},
		"HOUSING": {ComponentCode: "HOUSING", ComponentName: "Housing Allowance", Category: emolument.CategoryAllowance, IsPensionable: true},
		"MEAL":    {ComponentCode: "MEAL", ComponentName: "Meal Allowance", Category: emolument.CategoryAllowance},
	}
}

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"Grade Name", "Grade Code", "Pay Structure Type", "Currency", "BASIC", "HOUSING", "MEAL"},
		{"Officer Grade I", "GRD_01", "monthly", "NGN", "120000", "40000", "15000"},
		{"Officer Grade II", "GRD_02", "monthly", "NGN", "90,000", "30000", ""},
	}

	preview, errs := parseRows(rows, testComponents(), []string{"monthly", "annual"})
	require.Empty(t, errs)
	require.Len(t, preview, 2)

	first := preview[0]
	assert.Equal(t, "Officer Grade I", first.GradeName)
	assert.Equal(t, "GRD_01", first.GradeCode)
	assert.Equal(t, "monthly", first.PayStructureType)
	assert.Equal(t, "NGN", first.Currency)
	require.Len(t, first.Emoluments, 3)
	assert.True(t, first.Total().Equal(decimal.NewFromInt(175000)))

	// Thousands separators parse, blank cells are skipped.
	second := preview[1]
	require.Len(t, second.Emoluments, 2)
	assert.True(t, second.Total().Equal(decimal.NewFromInt(120000)))
}

func TestParseRowsFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		errKey  string
		wantMsg string
	}{
		{
			name:    "header only",
			rows:    [][]string{{"Grade Name", "Grade Code", "Pay Structure Type", "Currency"}},
			errKey:  "file",
			wantMsg: "the worksheet has no data rows",
		},
		{
			name: "missing fixed column",
			rows: [][]string{
				{"Grade Name", "Grade Code", "Currency"},
				{"Officer", "GRD_01", "NGN"},
			},
			errKey:  "file",
			wantMsg: "missing column: Pay Structure Type",
		},
		{
			name: "unknown component column",
			rows: [][]string{
				{"Grade Name", "Grade Code", "Pay Structure Type", "Currency", "DANGER"},
				{"Officer", "GRD_01", "monthly", "NGN", "10"},
			},
			errKey:  "file",
			wantMsg: "unknown column: DANGER",
		},
		{
			name: "bad amount",
			rows: [][]string{
				{"Grade Name", "Grade Code", "Pay Structure Type", "Currency", "BASIC"},
				{"Officer", "GRD_01", "monthly", "NGN", "abc"},
			},
			errKey:  "row_2",
			wantMsg: "BASIC is not a number: abc",
		},
		{
			name: "negative amount",
			rows: [][]string{
				{"Grade Name", "Grade Code", "Pay Structure Type", "Currency", "BASIC"},
				{"Officer", "GRD_01", "monthly", "NGN", "-5"},
			},
			errKey:  "row_2",
			wantMsg: "BASIC must be non-negative",
		},
		{
			name: "disallowed pay structure",
			rows: [][]string{
				{"Grade Name", "Grade Code", "Pay Structure Type", "Currency", "BASIC"},
				{"Officer", "GRD_01", "hourly", "NGN", "100"},
			},
			errKey:  "row_2",
			wantMsg: "pay structure type not allowed: hourly",
		},
		{
			name: "duplicate grade code",
			rows: [][]string{
				{"Grade Name", "Grade Code", "Pay Structure Type", "Currency", "BASIC"},
				{"Officer I", "GRD_01", "monthly", "NGN", "100"},
				{"Officer II", "GRD_01", "monthly", "NGN", "200"},
			},
			errKey:  "row_3",
			wantMsg: "duplicate grade code in file: GRD_01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preview, errs := parseRows(tt.rows, testComponents(), []string{"monthly", "annual"})
			assert.Nil(t, preview)
			require.Contains(t, errs, tt.errKey)
			assert.Contains(t, errs[tt.errKey], tt.wantMsg)
		})
	}
}

func TestParseRowsSkipsBlankRows(t *testing.T) {
	rows := [][]string{
		{"Grade Name", "Grade Code", "Pay Structure Type", "Currency", "BASIC"},
		{"", "", "", "", ""},
		{"Officer", "GRD_01", "monthly", "NGN", "100"},
	}

	preview, errs := parseRows(rows, testComponents(), []string{"monthly"})
	require.Empty(t, errs)
	require.Len(t, preview, 1)
	assert.Equal(t, "GRD_01", preview[0].GradeCode)
}

type fakeJobStructureRepo struct {
	jobstructure.JobStructureRepository

	job jobstructure.JobStructure
}

func (f *fakeJobStructureRepo) GetByID(ctx context.Context, id string) (jobstructure.JobStructure, error) {
	if id != f.job.ID {
		return jobstructure.JobStructure{}, jobstructure.ErrJobStructureNotFound
	}
	return f.job, nil
}

type fakeComponentRepo struct {
	emolument.ComponentRepository

	components []emolument.Component
}

func (f *fakeComponentRepo) ListForClient(ctx context.Context, clientID string) ([]emolument.Component, error) {
	return f.components, nil
}

func TestBuildTemplateFilenameUsesJobID(t *testing.T) {
	var components []emolument.Component
	for _, c := range testComponents() {
		components = append(components, c)
	}
	svc := &PayGradeServiceImpl{
		jobRepo: &fakeJobStructureRepo{job: jobstructure.JobStructure{
			ID:            "0192f1a2-job",
			ClientID:      "client-1",
			JobCode:       "OFFICERS",
			PayStructures: []string{"monthly"},
		}},
		componentRepo: &fakeComponentRepo{components: components},
	}

	file, filename, err := svc.BuildTemplate(context.Background(), "client-1", "0192f1a2-job")
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "PayGrades_JOB0192f1a2-job_Template.xlsx", filename)
}

func confirmRow(code string) paygrade.PreviewRow {
	return paygrade.PreviewRow{
		GradeName:        "Officer " + code,
		GradeCode:        code,
		PayStructureType: "monthly",
		Currency:         "NGN",
		Emoluments: []paygrade.PreviewEmolument{
			{ComponentCode: "BASIC", Amount: decimal.NewFromInt(120000)},
		},
	}
}

// A confirm payload is client-supplied, so the parse-time rules apply again
// even when the rows arrived from our own preview endpoint.
func TestValidateConfirmRows(t *testing.T) {
	allowed := []string{"monthly", "annual"}

	t.Run("clean rows pass", func(t *testing.T) {
		rows := []paygrade.PreviewRow{confirmRow("GRD_01"), confirmRow("GRD_02")}
		assert.Empty(t, validateConfirmRows(rows, testComponents(), allowed))
	})

	tamper := []struct {
		name    string
		mutate  func(*paygrade.PreviewRow)
		wantMsg string
	}{
		{
			name:    "missing grade name",
			mutate:  func(r *paygrade.PreviewRow) { r.GradeName = "" },
			wantMsg: "grade name is required",
		},
		{
			name:    "invalid grade code",
			mutate:  func(r *paygrade.PreviewRow) { r.GradeCode = "grd-01" },
			wantMsg: "grade code must be 2-20 uppercase letters, digits or underscores",
		},
		{
			name:    "disallowed pay structure",
			mutate:  func(r *paygrade.PreviewRow) { r.PayStructureType = "hourly" },
			wantMsg: "pay structure type not allowed: hourly",
		},
		{
			name:    "bad currency",
			mutate:  func(r *paygrade.PreviewRow) { r.Currency = "naira" },
			wantMsg: "currency must be a three-letter code",
		},
		{
			name: "unknown component",
			mutate: func(r *paygrade.PreviewRow) {
				r.Emoluments = append(r.Emoluments, paygrade.PreviewEmolument{ComponentCode: "GHOST", Amount: decimal.NewFromInt(10)})
			},
			wantMsg: "unknown component: GHOST",
		},
		{
			name: "negative amount",
			mutate: func(r *paygrade.PreviewRow) {
				r.Emoluments[0].Amount = decimal.NewFromInt(-1)
			},
			wantMsg: "BASIC must be non-negative",
		},
	}
	for _, tt := range tamper {
		t.Run(tt.name, func(t *testing.T) {
			row := confirmRow("GRD_01")
			tt.mutate(&row)
			errs := validateConfirmRows([]paygrade.PreviewRow{row}, testComponents(), allowed)
			require.NotEmpty(t, errs)
			m := errs.ToMap()
			require.Contains(t, m, "preview_data_0")
			assert.Contains(t, m["preview_data_0"], tt.wantMsg)
		})
	}

	t.Run("duplicate grade code", func(t *testing.T) {
		rows := []paygrade.PreviewRow{confirmRow("GRD_01"), confirmRow("GRD_01")}
		errs := validateConfirmRows(rows, testComponents(), allowed)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs.ToMap()["preview_data_1"], "duplicate grade code: GRD_01")
	})
}
