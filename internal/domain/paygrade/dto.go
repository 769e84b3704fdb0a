package paygrade

import (
	"path/filepath"
	"strings"

	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxUploadBytes caps bulk upload spreadsheets at 5 MiB.
const MaxUploadBytes = 5 << 20

var allowedUploadExts = []string{".xlsx"}

// ValidateUploadFile rejects a bulk upload before any parsing happens.
// Legacy .xls workbooks cannot be parsed, so they fail pre-flight with a
// field-keyed error instead of a generic parse failure later.
func ValidateUploadFile(filename string, size int64) error {
	var errs validator.ValidationErrors

	ext := strings.ToLower(filepath.Ext(filename))
	if !validator.IsInSlice(ext, allowedUploadExts) {
		errs = append(errs, validator.ValidationError{Field: "file", Message: "only .xlsx files are accepted; save legacy .xls workbooks as .xlsx"})
	}
	if size > MaxUploadBytes {
		errs = append(errs, validator.ValidationError{Field: "file", Message: "file exceeds the 5MB limit"})
	}
	if size == 0 {
		errs = append(errs, validator.ValidationError{Field: "file", Message: "file is empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreatePayGradeRequest struct {
	JobStructureID   string                     `json:"job_structure_id"`
	GradeName        string                     `json:"grade_name"`
	GradeCode        string                     `json:"grade_code"`
	PayStructureType string                     `json:"pay_structure_type"`
	Emoluments       map[string]decimal.Decimal `json:"emoluments"`
	Currency         string                     `json:"currency"`
}

func (r *CreatePayGradeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobStructureID) {
		errs = append(errs, validator.ValidationError{Field: "job_structure_id", Message: "is required"})
	}
	if validator.IsEmpty(r.GradeName) {
		errs = append(errs, validator.ValidationError{Field: "grade_name", Message: "is required"})
	}
	if !validator.IsValidCode(r.GradeCode) {
		errs = append(errs, validator.ValidationError{Field: "grade_code", Message: "must be 2-20 uppercase letters, digits or underscores"})
	}
	if validator.IsEmpty(r.PayStructureType) {
		errs = append(errs, validator.ValidationError{Field: "pay_structure_type", Message: "is required"})
	}
	if !validator.IsValidCurrency(r.Currency) {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "must be a three-letter currency code"})
	}
	for code, amount := range r.Emoluments {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "emoluments." + code, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayGradeRequest struct {
	ID               string
	GradeName        *string                     `json:"grade_name,omitempty"`
	PayStructureType *string                     `json:"pay_structure_type,omitempty"`
	Emoluments       *map[string]decimal.Decimal `json:"emoluments,omitempty"`
	Currency         *string                     `json:"currency,omitempty"`
	IsActive         *bool                       `json:"is_active,omitempty"`
}

func (r *UpdatePayGradeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GradeName != nil && validator.IsEmpty(*r.GradeName) {
		errs = append(errs, validator.ValidationError{Field: "grade_name", Message: "must not be empty"})
	}
	if r.Currency != nil && !validator.IsValidCurrency(*r.Currency) {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "must be a three-letter currency code"})
	}
	if r.Emoluments != nil {
		for code, amount := range *r.Emoluments {
			if amount.IsNegative() {
				errs = append(errs, validator.ValidationError{Field: "emoluments." + code, Message: "must be non-negative"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayGradeResponse struct {
	ID                string                     `json:"id"`
	JobStructureID    string                     `json:"job_structure_id"`
	GradeName         string                     `json:"grade_name"`
	GradeCode         string                     `json:"grade_code"`
	PayStructureType  string                     `json:"pay_structure_type"`
	Emoluments        map[string]decimal.Decimal `json:"emoluments"`
	Currency          string                     `json:"currency"`
	TotalCompensation decimal.Decimal            `json:"total_compensation"`
	IsActive          bool                       `json:"is_active"`
}

func ToResponse(p PayGrade) PayGradeResponse {
	return PayGradeResponse{
		ID:                p.ID,
		JobStructureID:    p.JobStructureID,
		GradeName:         p.GradeName,
		GradeCode:         p.GradeCode,
		PayStructureType:  p.PayStructureType,
		Emoluments:        p.Emoluments,
		Currency:          p.Currency,
		TotalCompensation: p.TotalCompensation(),
		IsActive:          p.IsActive,
	}
}

// ========== BULK UPLOAD DTOs ==========

type PreviewEmolument struct {
	ComponentCode string          `json:"component_code"`
	ComponentName string          `json:"component_name"`
	Category      string          `json:"category"`
	IsPensionable bool            `json:"is_pensionable"`
	Amount        decimal.Decimal `json:"amount"`
}

type PreviewRow struct {
	GradeName        string             `json:"grade_name"`
	GradeCode        string             `json:"grade_code"`
	PayStructureType string             `json:"pay_structure_type"`
	Currency         string             `json:"currency"`
	Emoluments       []PreviewEmolument `json:"emoluments"`
}

// Total mirrors PayGrade.TotalCompensation for preview rendering.
func (p PreviewRow) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.Emoluments {
		total = total.Add(e.Amount)
	}
	return total
}

type BulkConfirmRequest struct {
	PreviewData    []PreviewRow `json:"preview_data"`
	ClientID       string       `json:"client_id"`
	JobStructureID string       `json:"job_structure_id"`
}

func (r *BulkConfirmRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientID) {
		errs = append(errs, validator.ValidationError{Field: "client_id", Message: "is required"})
	}
	if validator.IsEmpty(r.JobStructureID) {
		errs = append(errs, validator.ValidationError{Field: "job_structure_id", Message: "is required"})
	}
	if len(r.PreviewData) == 0 {
		errs = append(errs, validator.ValidationError{Field: "preview_data", Message: "at least one row is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkConfirmResponse struct {
	SavedCount int `json:"saved_count"`
}
