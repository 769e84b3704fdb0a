package jobstructure

import "time"

// ContractType enum
type ContractType string

const (
	ContractTypeEmployment ContractType = "employment"
	ContractTypeService    ContractType = "service"
)

// ContractNature enum
type ContractNature string

const (
	ContractNatureAtWill  ContractNature = "at_will"
	ContractNatureTenured ContractNature = "tenured"
)

// JobStructure is a named job category under a client, carrying the
// pay-structure types its pay grades may use.
type JobStructure struct {
	ID             string
	ClientID       string
	JobCode        string
	JobTitle       string
	ContractType   ContractType
	ContractNature ContractNature
	PayStructures  []string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
