package payrollrun

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusDraft      Status = "draft"
	StatusCalculated Status = "calculated"
	StatusApproved   Status = "approved"
	StatusExported   Status = "exported"
	StatusCancelled  Status = "cancelled"
)

// Action enum
type Action string

const (
	ActionCalculate Action = "calculate"
	ActionApprove   Action = "approve"
	ActionExport    Action = "export"
	ActionDelete    Action = "delete"
)

// Run is one payroll-period processing batch.
type Run struct {
	ID            string
	RunName       string
	ClientID      string
	Month         int
	Year          int
	Status        Status
	EmployeeCount int
	TotalGross    decimal.Decimal
	TotalNet      decimal.Decimal
	ApprovedBy    *string
	ApprovedAt    *time.Time
	ExportedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LineItem is one employee's computed line within a run.
type LineItem struct {
	ID             string
	RunID          string
	EmployeeID     string
	EmployeeCode   string
	EmployeeName   string
	PayGradeName   string
	DaysPresent    int
	PeriodDays     int
	Prorated       bool
	Gross          decimal.Decimal
	Pension        decimal.Decimal
	NHF            decimal.Decimal
	NSITF          decimal.Decimal
	PAYE           decimal.Decimal
	TotalDeduction decimal.Decimal
	Net            decimal.Decimal
}

// The lifecycle is strictly forward-only:
//
//	draft --calculate--> calculated --approve--> approved --export--> exported
//	draft --delete--> (removed)
//	calculated --calculate--> calculated (recalculation)
//	calculated --delete--> (removed)
//	exported --export--> exported (re-download)
var allowedActions = map[Status][]Action{
	StatusDraft:      {ActionCalculate, ActionDelete},
	StatusCalculated: {ActionCalculate, ActionApprove, ActionDelete},
	StatusApproved:   {ActionExport},
	StatusExported:   {ActionExport},
	StatusCancelled:  {},
}

// AllowedActions returns the exact action set available for a status.
func AllowedActions(s Status) []Action {
	return allowedActions[s]
}

// CanPerform reports whether the action is legal for the run's current status.
func (r Run) CanPerform(a Action) bool {
	for _, allowed := range allowedActions[r.Status] {
		if allowed == a {
			return true
		}
	}
	return false
}
