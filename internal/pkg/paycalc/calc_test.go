package paycalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

// Standard Nigerian PAYE bands, annual NGN.
func testBrackets() []Bracket {
	return []Bracket{
		{UpperBound: dp("300000"), Rate: d("7")},
		{UpperBound: dp("600000"), Rate: d("11")},
		{UpperBound: dp("1100000"), Rate: d("15")},
		{UpperBound: dp("1600000"), Rate: d("19")},
		{UpperBound: dp("3200000"), Rate: d("21")},
		{UpperBound: nil, Rate: d("24")},
	}
}

func TestProgressiveTax(t *testing.T) {
	cases := []struct {
		name    string
		taxable string
		want    string
	}{
		{"zero", "0", "0"},
		{"negative", "-100", "0"},
		{"first band only", "300000", "21000"},
		{"two bands", "600000", "54000"},
		{"mid third band", "1000000", "114000"},
		{"top open band", "4000000", "752000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ProgressiveTax(d(c.taxable), testBrackets())
			assert.True(t, got.Equal(d(c.want)), "got %s, want %s", got, c.want)
		})
	}
}

func TestProgressiveTax_NoBrackets(t *testing.T) {
	got := ProgressiveTax(d("500000"), nil)
	assert.True(t, got.IsZero())
}

func TestProrate(t *testing.T) {
	cases := []struct {
		name        string
		amount      string
		present     int
		periodDays  int
		want        string
	}{
		{"half month", "150000", 15, 30, "75000"},
		{"full attendance untouched", "150000", 30, 30, "150000"},
		{"over attendance untouched", "150000", 31, 30, "150000"},
		{"zero period untouched", "150000", 0, 0, "150000"},
		{"negative present clamps to zero", "150000", -3, 30, "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Prorate(d(c.amount), c.present, c.periodDays)
			assert.True(t, got.Equal(d(c.want)), "got %s, want %s", got, c.want)
		})
	}
}

func fullMonthInput() Input {
	return Input{
		Emoluments: map[string]decimal.Decimal{
			"BASIC":   d("100000"),
			"HOUSING": d("50000"),
		},
		Pensionable: d("100000"),
		Basic:       d("100000"),
		DaysPresent: 30,
		PeriodDays:  30,
	}
}

func statutorySettings() Settings {
	return Settings{
		Brackets:       testBrackets(),
		ExemptionFixed: d("200000"),
		ExemptionRate:  d("20"),
		PensionRate:    d("8"),
		NHFRate:        d("2.5"),
		NSITFRate:      d("1"),
	}
}

func TestCompute_FullMonth(t *testing.T) {
	res, err := Compute(fullMonthInput(), statutorySettings(), nil)
	require.NoError(t, err)

	assert.False(t, res.Prorated)
	assert.True(t, res.Gross.Equal(d("150000")), "gross = %s", res.Gross)
	assert.True(t, res.Pension.Equal(d("8000")), "pension = %s", res.Pension)
	assert.True(t, res.NHF.Equal(d("2500")), "nhf = %s", res.NHF)
	assert.True(t, res.NSITF.Equal(d("1500")), "nsitf = %s", res.NSITF)

	// annual gross 1,800,000; relief 560,000; pension 96,000; nhf 30,000
	// annual taxable 1,114,000 -> tax 131,660 -> 10,971.67/month
	assert.True(t, res.PAYE.Equal(d("10971.67")), "paye = %s", res.PAYE)
	assert.True(t, res.TotalDeduction.Equal(d("22971.67")), "deductions = %s", res.TotalDeduction)
	assert.True(t, res.Net.Equal(d("127028.33")), "net = %s", res.Net)
}

func TestCompute_GrossIsSumOfAllEmoluments(t *testing.T) {
	in := fullMonthInput()
	in.Emoluments["LUNCH_DED"] = d("5000") // category does not matter for gross
	res, err := Compute(in, statutorySettings(), nil)
	require.NoError(t, err)
	assert.True(t, res.Gross.Equal(d("155000")), "gross = %s", res.Gross)
}

func TestCompute_EmptyEmoluments(t *testing.T) {
	res, err := Compute(Input{DaysPresent: 30, PeriodDays: 30}, statutorySettings(), nil)
	require.NoError(t, err)
	assert.True(t, res.Gross.IsZero())
	assert.True(t, res.PAYE.IsZero())
	assert.True(t, res.Net.IsZero())
}

func TestCompute_Prorated(t *testing.T) {
	in := fullMonthInput()
	in.DaysPresent = 15
	res, err := Compute(in, statutorySettings(), nil)
	require.NoError(t, err)

	assert.True(t, res.Prorated)
	assert.True(t, res.Gross.Equal(d("75000")), "gross = %s", res.Gross)
	assert.True(t, res.Pension.Equal(d("4000")), "pension = %s", res.Pension)
}

func TestCompute_ReliefExceedsGross(t *testing.T) {
	in := Input{
		Emoluments:  map[string]decimal.Decimal{"BASIC": d("10000")},
		Pensionable: d("10000"),
		Basic:       d("10000"),
		DaysPresent: 30,
		PeriodDays:  30,
	}
	res, err := Compute(in, statutorySettings(), nil)
	require.NoError(t, err)
	// annual gross 120,000 < relief; taxable floors at zero
	assert.True(t, res.Taxable.IsZero())
	assert.True(t, res.PAYE.IsZero())
}

type fixedEvaluator struct {
	value float64
	vars  map[string]float64
}

func (f *fixedEvaluator) Evaluate(expr string, vars map[string]float64) (float64, error) {
	f.vars = vars
	return f.value, nil
}

func TestCompute_TaxableOverride(t *testing.T) {
	s := statutorySettings()
	s.TaxableOverride = "gross - pension - exemption"

	eval := &fixedEvaluator{value: 600000}
	res, err := Compute(fullMonthInput(), s, eval)
	require.NoError(t, err)

	// 600,000 annual taxable -> 54,000 annual -> 4,500/month
	assert.True(t, res.PAYE.Equal(d("4500")), "paye = %s", res.PAYE)
	assert.InDelta(t, 1800000, eval.vars["gross"], 0.01)
	assert.InDelta(t, 560000, eval.vars["exemption"], 0.01)
}

func TestCompute_TaxableOverrideWithoutEvaluator(t *testing.T) {
	s := statutorySettings()
	s.TaxableOverride = "gross"
	_, err := Compute(fullMonthInput(), s, nil)
	require.Error(t, err)
}
