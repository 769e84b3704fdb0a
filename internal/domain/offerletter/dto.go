package offerletter

import (
	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateTemplateRequest struct {
	ClientID       string            `json:"client_id"`
	JobStructureID string            `json:"job_structure_id"`
	PayGradeID     string            `json:"pay_grade_id"`
	Header         map[string]string `json:"header"`
	Footer         map[string]string `json:"footer"`
	Content        []Node            `json:"content"`
	Variables      []Variable        `json:"variables"`
}

func (r *CreateTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientID) {
		errs = append(errs, validator.ValidationError{Field: "client_id", Message: "is required"})
	}
	if validator.IsEmpty(r.JobStructureID) {
		errs = append(errs, validator.ValidationError{Field: "job_structure_id", Message: "is required"})
	}
	if validator.IsEmpty(r.PayGradeID) {
		errs = append(errs, validator.ValidationError{Field: "pay_grade_id", Message: "is required"})
	}
	if len(r.Content) == 0 {
		errs = append(errs, validator.ValidationError{Field: "content", Message: "at least one node is required"})
	}
	if err := validateNodes(r.Content, r.Variables); err != nil {
		errs = append(errs, *err)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateNodes ensures every variable node references a declared variable.
func validateNodes(nodes []Node, variables []Variable) *validator.ValidationError {
	declared := make(map[string]bool, len(variables))
	for _, v := range variables {
		declared[v.Key] = true
	}
	for _, n := range nodes {
		switch n.Type {
		case NodeText:
		case NodeVariable:
			if !declared[n.Value] {
				return &validator.ValidationError{Field: "content", Message: "undeclared variable: " + n.Value}
			}
		default:
			return &validator.ValidationError{Field: "content", Message: "unknown node type: " + string(n.Type)}
		}
	}
	return nil
}

type UpdateTemplateRequest struct {
	ID        string
	Header    *map[string]string `json:"header,omitempty"`
	Footer    *map[string]string `json:"footer,omitempty"`
	Content   *[]Node            `json:"content,omitempty"`
	Variables *[]Variable        `json:"variables,omitempty"`
}

type TemplateResponse struct {
	ID             string            `json:"id"`
	ClientID       string            `json:"client_id"`
	JobStructureID string            `json:"job_structure_id"`
	PayGradeID     string            `json:"pay_grade_id"`
	Header         map[string]string `json:"header"`
	Footer         map[string]string `json:"footer"`
	Content        []Node            `json:"content"`
	Variables      []Variable        `json:"variables"`
}

func ToResponse(t Template) TemplateResponse {
	return TemplateResponse{
		ID:             t.ID,
		ClientID:       t.ClientID,
		JobStructureID: t.JobStructureID,
		PayGradeID:     t.PayGradeID,
		Header:         t.Header,
		Footer:         t.Footer,
		Content:        t.Content,
		Variables:      t.Variables,
	}
}

// SalaryComponentItem backs the variable-binding panel in the builder.
type SalaryComponentItem struct {
	ComponentCode string          `json:"component_code"`
	ComponentName string          `json:"component_name"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
}

type SalaryComponentsResponse struct {
	PayGradeID string                `json:"pay_grade_id"`
	Currency   string                `json:"currency"`
	Components []SalaryComponentItem `json:"components"`
	Total      decimal.Decimal       `json:"total"`
}
