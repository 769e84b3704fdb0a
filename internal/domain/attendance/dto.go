package attendance

import (
	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UploadRequest struct {
	ClientID     string
	PayrollMonth string
	FileName     string
	IsForPayroll bool
}

func (r *UploadRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientID) {
		errs = append(errs, validator.ValidationError{Field: "client_id", Message: "is required"})
	}
	if _, ok := validator.IsValidPayrollMonth(r.PayrollMonth); !ok {
		errs = append(errs, validator.ValidationError{Field: "payroll_month", Message: "must be in YYYY-MM format"})
	}
	if validator.IsEmpty(r.FileName) {
		errs = append(errs, validator.ValidationError{Field: "file", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UploadResponse struct {
	ID             string `json:"id"`
	FileName       string `json:"file_name"`
	PayrollMonth   string `json:"payroll_month"`
	Status         string `json:"status"`
	IsForPayroll   bool   `json:"is_for_payroll"`
	MatchedCount   int    `json:"matched_count"`
	UnmatchedCount int    `json:"unmatched_count"`
	TotalRecords   int    `json:"total_records"`
}

func ToUploadResponse(u Upload) UploadResponse {
	return UploadResponse{
		ID:             u.ID,
		FileName:       u.FileName,
		PayrollMonth:   u.PayrollMonth,
		Status:         string(u.Status),
		IsForPayroll:   u.IsForPayroll,
		MatchedCount:   u.MatchedCount,
		UnmatchedCount: u.UnmatchedCount,
		TotalRecords:   u.TotalRecords,
	}
}

type MatchedStaff struct {
	EmployeeID    string          `json:"employee_id"`
	EmployeeCode  string          `json:"employee_code"`
	EmployeeName  string          `json:"employee_name"`
	MatchKind     string          `json:"match_kind"`
	DaysPresent   int             `json:"days_present"`
	DaysAbsent    int             `json:"days_absent"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

type UnmatchedStaff struct {
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Reason       string `json:"reason"`
}

// ValidationReport is the preview payload for one validated upload.
type ValidationReport struct {
	Upload           UploadResponse   `json:"upload"`
	Matched          []MatchedStaff   `json:"matched"`
	Unmatched        []UnmatchedStaff `json:"unmatched"`
	Errors           []string         `json:"errors,omitempty"`
	TemplateCoverage decimal.Decimal  `json:"template_coverage"`
}
