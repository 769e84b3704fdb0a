package paycalc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one progressive tax band. A nil UpperBound marks the open-ended
// top band. Rate is a percentage (7 means 7%).
type Bracket struct {
	UpperBound *decimal.Decimal `json:"upper_bound"`
	Rate       decimal.Decimal  `json:"rate"`
}

// Settings carries the statutory parameters the calculator needs. Rates are
// percentages of their respective bases.
type Settings struct {
	Brackets        []Bracket
	ExemptionFixed  decimal.Decimal // annual fixed relief
	ExemptionRate   decimal.Decimal // % of annual gross added to relief
	PensionRate     decimal.Decimal // % of pensionable base
	NHFRate         decimal.Decimal // % of basic
	NSITFRate       decimal.Decimal // % of gross
	ITFRate         decimal.Decimal // % of gross (employer-side, reported only)
	TaxableOverride string          // optional CEL formula replacing the taxable base
}

// Input is one employee's month.
type Input struct {
	Emoluments  map[string]decimal.Decimal // component code -> monthly amount
	Pensionable decimal.Decimal            // sum of pensionable components
	Basic       decimal.Decimal            // sum of basic-category components
	DaysPresent int
	PeriodDays  int
}

// Result is the computed line for one employee.
type Result struct {
	Gross          decimal.Decimal
	Prorated       bool
	Pension        decimal.Decimal
	NHF            decimal.Decimal
	NSITF          decimal.Decimal
	Taxable        decimal.Decimal
	PAYE           decimal.Decimal
	TotalDeduction decimal.Decimal
	Net            decimal.Decimal
}

// Evaluator evaluates a taxable-base override formula against named variables.
// Satisfied by formula.Engine.
type Evaluator interface {
	Evaluate(expr string, vars map[string]float64) (float64, error)
}

var (
	hundred     = decimal.NewFromInt(100)
	twelve      = decimal.NewFromInt(12)
	moneyDigits = int32(2)
)

func pct(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(hundred)
}

// Prorate scales a monthly amount by attendance. Zero or full attendance and a
// zero period are the edge cases: a zero period means no proration data, so
// the amount passes through untouched.
func Prorate(amount decimal.Decimal, daysPresent, periodDays int) decimal.Decimal {
	if periodDays <= 0 || daysPresent >= periodDays {
		return amount
	}
	if daysPresent < 0 {
		daysPresent = 0
	}
	return amount.Mul(decimal.NewFromInt(int64(daysPresent))).
		Div(decimal.NewFromInt(int64(periodDays))).
		Round(moneyDigits)
}

// ProgressiveTax runs an annual taxable amount through the bracket table and
// returns the annual tax. Brackets must be ordered by ascending upper bound
// with the open-ended band last.
func ProgressiveTax(taxable decimal.Decimal, brackets []Bracket) decimal.Decimal {
	if taxable.LessThanOrEqual(decimal.Zero) || len(brackets) == 0 {
		return decimal.Zero
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		if b.UpperBound == nil {
			tax = tax.Add(pct(taxable.Sub(lower), b.Rate))
			return tax.Round(moneyDigits)
		}
		if taxable.LessThanOrEqual(*b.UpperBound) {
			tax = tax.Add(pct(taxable.Sub(lower), b.Rate))
			return tax.Round(moneyDigits)
		}
		tax = tax.Add(pct(b.UpperBound.Sub(lower), b.Rate))
		lower = *b.UpperBound
	}
	return tax.Round(moneyDigits)
}

// Compute produces one employee's payroll line. Gross is the unconditional sum
// of all emolument entries, prorated by attendance; pension applies to the
// pensionable base, NHF to basic, NSITF to gross. PAYE is computed on the
// annualized taxable base and divided back to a month.
func Compute(in Input, s Settings, eval Evaluator) (Result, error) {
	gross := decimal.Zero
	for _, amount := range in.Emoluments {
		gross = gross.Add(amount)
	}

	var res Result
	if in.PeriodDays > 0 && in.DaysPresent < in.PeriodDays {
		res.Prorated = true
	}
	gross = Prorate(gross, in.DaysPresent, in.PeriodDays)
	pensionable := Prorate(in.Pensionable, in.DaysPresent, in.PeriodDays)
	basic := Prorate(in.Basic, in.DaysPresent, in.PeriodDays)

	res.Gross = gross
	res.Pension = pct(pensionable, s.PensionRate).Round(moneyDigits)
	res.NHF = pct(basic, s.NHFRate).Round(moneyDigits)
	res.NSITF = pct(gross, s.NSITFRate).Round(moneyDigits)

	annualGross := gross.Mul(twelve)
	relief := s.ExemptionFixed.Add(pct(annualGross, s.ExemptionRate))
	annualTaxable := annualGross.
		Sub(res.Pension.Mul(twelve)).
		Sub(res.NHF.Mul(twelve)).
		Sub(relief)

	if s.TaxableOverride != "" {
		if eval == nil {
			return Result{}, fmt.Errorf("taxable formula configured but no evaluator provided")
		}
		v, err := eval.Evaluate(s.TaxableOverride, map[string]float64{
			"gross":       annualGross.InexactFloat64(),
			"basic":       basic.Mul(twelve).InexactFloat64(),
			"pensionable": pensionable.Mul(twelve).InexactFloat64(),
			"pension":     res.Pension.Mul(twelve).InexactFloat64(),
			"nhf":         res.NHF.Mul(twelve).InexactFloat64(),
			"exemption":   relief.InexactFloat64(),
		})
		if err != nil {
			return Result{}, fmt.Errorf("evaluate taxable formula: %w", err)
		}
		annualTaxable = decimal.NewFromFloat(v)
	}

	if annualTaxable.LessThan(decimal.Zero) {
		annualTaxable = decimal.Zero
	}
	res.Taxable = annualTaxable.Div(twelve).Round(moneyDigits)
	res.PAYE = ProgressiveTax(annualTaxable, s.Brackets).Div(twelve).Round(moneyDigits)

	res.TotalDeduction = res.Pension.Add(res.NHF).Add(res.NSITF).Add(res.PAYE)
	res.Net = res.Gross.Sub(res.TotalDeduction)
	return res, nil
}
