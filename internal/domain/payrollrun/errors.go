package payrollrun

import "errors"

var (
	ErrRunNotFound        = errors.New("payroll run not found")
	ErrRunExistsForPeriod = errors.New("a payroll run already exists for this period")
	ErrInvalidTransition  = errors.New("action not allowed in current run status")
	ErrNoEmployees        = errors.New("client has no active employees with pay grades")
	ErrAttendanceMissing  = errors.New("no validated attendance upload for this period")
	ErrSettingsIncomplete = errors.New("payroll settings are incomplete")
)
