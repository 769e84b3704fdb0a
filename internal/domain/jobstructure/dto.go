package jobstructure

import (
	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
)

var validPayStructures = []string{"monthly", "daily", "hourly", "annual"}

type CreateJobStructureRequest struct {
	ClientID       string   `json:"client_id"`
	JobCode        string   `json:"job_code"`
	JobTitle       string   `json:"job_title"`
	ContractType   string   `json:"contract_type"`
	ContractNature string   `json:"contract_nature"`
	PayStructures  []string `json:"pay_structures"`
}

func (r *CreateJobStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientID) {
		errs = append(errs, validator.ValidationError{Field: "client_id", Message: "is required"})
	}
	if !validator.IsValidCode(r.JobCode) {
		errs = append(errs, validator.ValidationError{Field: "job_code", Message: "must be 2-20 uppercase letters, digits or underscores"})
	}
	if validator.IsEmpty(r.JobTitle) {
		errs = append(errs, validator.ValidationError{Field: "job_title", Message: "is required"})
	}
	if r.ContractType != string(ContractTypeEmployment) && r.ContractType != string(ContractTypeService) {
		errs = append(errs, validator.ValidationError{Field: "contract_type", Message: "must be 'employment' or 'service'"})
	}
	if r.ContractNature != string(ContractNatureAtWill) && r.ContractNature != string(ContractNatureTenured) {
		errs = append(errs, validator.ValidationError{Field: "contract_nature", Message: "must be 'at_will' or 'tenured'"})
	}
	if len(r.PayStructures) == 0 {
		errs = append(errs, validator.ValidationError{Field: "pay_structures", Message: "at least one pay structure is required"})
	}
	for _, ps := range r.PayStructures {
		if !validator.IsInSlice(ps, validPayStructures) {
			errs = append(errs, validator.ValidationError{Field: "pay_structures", Message: "unknown pay structure type: " + ps})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateJobStructureRequest struct {
	ID             string
	JobTitle       *string   `json:"job_title,omitempty"`
	ContractType   *string   `json:"contract_type,omitempty"`
	ContractNature *string   `json:"contract_nature,omitempty"`
	PayStructures  *[]string `json:"pay_structures,omitempty"`
	IsActive       *bool     `json:"is_active,omitempty"`
}

func (r *UpdateJobStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.JobTitle != nil && validator.IsEmpty(*r.JobTitle) {
		errs = append(errs, validator.ValidationError{Field: "job_title", Message: "must not be empty"})
	}
	if r.ContractType != nil && *r.ContractType != string(ContractTypeEmployment) && *r.ContractType != string(ContractTypeService) {
		errs = append(errs, validator.ValidationError{Field: "contract_type", Message: "must be 'employment' or 'service'"})
	}
	if r.ContractNature != nil && *r.ContractNature != string(ContractNatureAtWill) && *r.ContractNature != string(ContractNatureTenured) {
		errs = append(errs, validator.ValidationError{Field: "contract_nature", Message: "must be 'at_will' or 'tenured'"})
	}
	if r.PayStructures != nil {
		if len(*r.PayStructures) == 0 {
			errs = append(errs, validator.ValidationError{Field: "pay_structures", Message: "at least one pay structure is required"})
		}
		for _, ps := range *r.PayStructures {
			if !validator.IsInSlice(ps, validPayStructures) {
				errs = append(errs, validator.ValidationError{Field: "pay_structures", Message: "unknown pay structure type: " + ps})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type JobStructureResponse struct {
	ID             string   `json:"id"`
	ClientID       string   `json:"client_id"`
	JobCode        string   `json:"job_code"`
	JobTitle       string   `json:"job_title"`
	ContractType   string   `json:"contract_type"`
	ContractNature string   `json:"contract_nature"`
	PayStructures  []string `json:"pay_structures"`
	IsActive       bool     `json:"is_active"`
}

func ToResponse(j JobStructure) JobStructureResponse {
	return JobStructureResponse{
		ID:             j.ID,
		ClientID:       j.ClientID,
		JobCode:        j.JobCode,
		JobTitle:       j.JobTitle,
		ContractType:   string(j.ContractType),
		ContractNature: string(j.ContractNature),
		PayStructures:  j.PayStructures,
		IsActive:       j.IsActive,
	}
}
