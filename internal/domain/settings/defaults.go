package settings

import "encoding/json"

// SystemDefaults are the values restored by the reset endpoint. Rates are
// percentages; PAYE brackets are annual NGN bands with a null upper bound on
// the open-ended top band.
var SystemDefaults = map[string]json.RawMessage{
	KeyPAYEBrackets: json.RawMessage(`[
		{"upper_bound": "300000", "rate": "7"},
		{"upper_bound": "600000", "rate": "11"},
		{"upper_bound": "1100000", "rate": "15"},
		{"upper_bound": "1600000", "rate": "19"},
		{"upper_bound": "3200000", "rate": "21"},
		{"upper_bound": null, "rate": "24"}
	]`),
	KeyTaxExemption:   json.RawMessage(`{"fixed": "200000", "gross_rate": "20"}`),
	KeyPensionRate:    json.RawMessage(`"8"`),
	KeyNHFRate:        json.RawMessage(`"2.5"`),
	KeyNSITFRate:      json.RawMessage(`"1"`),
	KeyITFRate:        json.RawMessage(`"1"`),
	KeyGrossFormula:   json.RawMessage(`""`),
	KeyTaxableFormula: json.RawMessage(`""`),
	KeyUniversalComponents: json.RawMessage(`[
		{"component_code": "BASIC", "component_name": "Basic Salary", "category": "basic", "is_pensionable": true, "is_taxable": true},
		{"component_code": "HOUSING", "component_name": "Housing Allowance", "category": "allowance", "is_pensionable": true, "is_taxable": true},
		{"component_code": "TRANSPORT", "component_name": "Transport Allowance", "category": "allowance", "is_pensionable": true, "is_taxable": true},
		{"component_code": "MEAL", "component_name": "Meal Allowance", "category": "allowance", "is_pensionable": false, "is_taxable": true},
		{"component_code": "UTILITY", "component_name": "Utility Allowance", "category": "allowance", "is_pensionable": false, "is_taxable": true},
		{"component_code": "LEAVE_ALLOW", "component_name": "Leave Allowance", "category": "allowance", "is_pensionable": false, "is_taxable": true},
		{"component_code": "THIRTEENTH", "component_name": "13th Month", "category": "benefit", "is_pensionable": false, "is_taxable": true},
		{"component_code": "OVERTIME", "component_name": "Overtime", "category": "allowance", "is_pensionable": false, "is_taxable": true},
		{"component_code": "PENSION_EE", "component_name": "Employee Pension", "category": "deduction", "is_pensionable": false, "is_taxable": false},
		{"component_code": "NHF", "component_name": "National Housing Fund", "category": "deduction", "is_pensionable": false, "is_taxable": false},
		{"component_code": "PAYE_TAX", "component_name": "PAYE Tax", "category": "deduction", "is_pensionable": false, "is_taxable": false}
	]`),
}

// IsKnownKey reports whether key has a system default.
func IsKnownKey(key string) bool {
	_, ok := SystemDefaults[key]
	return ok
}
