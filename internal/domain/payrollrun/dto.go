package payrollrun

import (
	"time"

	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRunRequest struct {
	RunName  string `json:"run_name"`
	ClientID string `json:"client_id"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RunName) {
		errs = append(errs, validator.ValidationError{Field: "run_name", Message: "is required"})
	}
	if validator.IsEmpty(r.ClientID) {
		errs = append(errs, validator.ValidationError{Field: "client_id", Message: "is required"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2020 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LineItemResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeCode   string          `json:"employee_code"`
	EmployeeName   string          `json:"employee_name"`
	PayGradeName   string          `json:"pay_grade_name"`
	DaysPresent    int             `json:"days_present"`
	PeriodDays     int             `json:"period_days"`
	Prorated       bool            `json:"prorated"`
	Gross          decimal.Decimal `json:"gross"`
	Pension        decimal.Decimal `json:"pension"`
	NHF            decimal.Decimal `json:"nhf"`
	NSITF          decimal.Decimal `json:"nsitf"`
	PAYE           decimal.Decimal `json:"paye"`
	TotalDeduction decimal.Decimal `json:"total_deduction"`
	Net            decimal.Decimal `json:"net"`
}

type RunResponse struct {
	ID            string             `json:"id"`
	RunName       string             `json:"run_name"`
	ClientID      string             `json:"client_id"`
	Month         int                `json:"month"`
	Year          int                `json:"year"`
	Status        string             `json:"status"`
	EmployeeCount int                `json:"employee_count"`
	TotalGross    decimal.Decimal    `json:"total_gross"`
	TotalNet      decimal.Decimal    `json:"total_net"`
	Actions       []Action           `json:"actions"`
	ApprovedBy    *string            `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time         `json:"approved_at,omitempty"`
	ExportedAt    *time.Time         `json:"exported_at,omitempty"`
	PayrollItems  []LineItemResponse `json:"payroll_items,omitempty"`
}

func ToResponse(r Run, items []LineItem) RunResponse {
	resp := RunResponse{
		ID:            r.ID,
		RunName:       r.RunName,
		ClientID:      r.ClientID,
		Month:         r.Month,
		Year:          r.Year,
		Status:        string(r.Status),
		EmployeeCount: r.EmployeeCount,
		TotalGross:    r.TotalGross,
		TotalNet:      r.TotalNet,
		Actions:       AllowedActions(r.Status),
		ApprovedBy:    r.ApprovedBy,
		ApprovedAt:    r.ApprovedAt,
		ExportedAt:    r.ExportedAt,
	}
	for _, item := range items {
		resp.PayrollItems = append(resp.PayrollItems, LineItemResponse{
			ID:             item.ID,
			EmployeeID:     item.EmployeeID,
			EmployeeCode:   item.EmployeeCode,
			EmployeeName:   item.EmployeeName,
			PayGradeName:   item.PayGradeName,
			DaysPresent:    item.DaysPresent,
			PeriodDays:     item.PeriodDays,
			Prorated:       item.Prorated,
			Gross:          item.Gross,
			Pension:        item.Pension,
			NHF:            item.NHF,
			NSITF:          item.NSITF,
			PAYE:           item.PAYE,
			TotalDeduction: item.TotalDeduction,
			Net:            item.Net,
		})
	}
	return resp
}
