package settings

import (
	"encoding/json"
	"time"
)

// Setting keys. Every key has a compiled-in system default (defaults.go).
const (
	KeyPAYEBrackets        = "PAYE_BRACKETS"
	KeyTaxExemption        = "TAX_EXEMPTION"
	KeyPensionRate         = "PENSION_RATE"
	KeyNHFRate             = "NHF_RATE"
	KeyNSITFRate           = "NSITF_RATE"
	KeyITFRate             = "ITF_RATE"
	KeyGrossFormula        = "GROSS_FORMULA"
	KeyTaxableFormula      = "TAXABLE_FORMULA"
	KeyUniversalComponents = "UNIVERSAL_COMPONENTS"
)

// FormulaKeys are the settings whose values are CEL expressions and support
// the validate action.
var FormulaKeys = []string{KeyGrossFormula, KeyTaxableFormula}

// Setting is one keyed configuration row, versioned on every write.
type Setting struct {
	Key       string
	Value     json.RawMessage
	Version   int
	UpdatedBy string
	UpdatedAt time.Time
}

// HistoryEntry is one append-only audit record for a setting write.
type HistoryEntry struct {
	ID             string
	Key            string
	UpdatedBy      string
	Reason         string
	ChangesSummary string
	PreviousValue  json.RawMessage
	NewValue       json.RawMessage
	UpdatedAt      time.Time
}
