package emolument

import (
	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
)

var validCategories = []string{
	string(CategoryBasic),
	string(CategoryAllowance),
	string(CategoryDeduction),
	string(CategoryBenefit),
}

type CreateComponentRequest struct {
	ClientID        string `json:"client_id"`
	ComponentCode   string `json:"component_code"`
	ComponentName   string `json:"component_name"`
	Category        string `json:"category"`
	PayrollCategory string `json:"payroll_category"`
	IsPensionable   bool   `json:"is_pensionable"`
	IsTaxable       bool   `json:"is_taxable"`
}

func (r *CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientID) {
		errs = append(errs, validator.ValidationError{Field: "client_id", Message: "is required"})
	}
	if !validator.IsValidCode(r.ComponentCode) {
		errs = append(errs, validator.ValidationError{Field: "component_code", Message: "must be 2-20 uppercase letters, digits or underscores"})
	}
	if validator.IsEmpty(r.ComponentName) {
		errs = append(errs, validator.ValidationError{Field: "component_name", Message: "is required"})
	}
	if !validator.IsInSlice(r.Category, validCategories) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be one of basic, allowance, deduction, benefit"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateComponentRequest struct {
	ID              string
	ComponentName   *string `json:"component_name,omitempty"`
	Category        *string `json:"category,omitempty"`
	PayrollCategory *string `json:"payroll_category,omitempty"`
	IsPensionable   *bool   `json:"is_pensionable,omitempty"`
	IsTaxable       *bool   `json:"is_taxable,omitempty"`
}

func (r *UpdateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ComponentName != nil && validator.IsEmpty(*r.ComponentName) {
		errs = append(errs, validator.ValidationError{Field: "component_name", Message: "must not be empty"})
	}
	if r.Category != nil && !validator.IsInSlice(*r.Category, validCategories) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be one of basic, allowance, deduction, benefit"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComponentResponse struct {
	ID              string  `json:"id"`
	ClientID        *string `json:"client_id,omitempty"`
	ComponentCode   string  `json:"component_code"`
	ComponentName   string  `json:"component_name"`
	Category        string  `json:"category"`
	PayrollCategory string  `json:"payroll_category,omitempty"`
	IsPensionable   bool    `json:"is_pensionable"`
	IsTaxable       bool    `json:"is_taxable"`
	IsUniversal     bool    `json:"is_universal"`
}

func ToResponse(c Component) ComponentResponse {
	return ComponentResponse{
		ID:              c.ID,
		ClientID:        c.ClientID,
		ComponentCode:   c.ComponentCode,
		ComponentName:   c.ComponentName,
		Category:        string(c.Category),
		PayrollCategory: c.PayrollCategory,
		IsPensionable:   c.IsPensionable,
		IsTaxable:       c.IsTaxable,
		IsUniversal:     c.IsUniversal(),
	}
}
