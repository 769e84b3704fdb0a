package paygrade

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayGrade is a concrete compensation package scoped to a job structure.
// Emoluments is an open map keyed by component code.
type PayGrade struct {
	ID               string
	JobStructureID   string
	GradeName        string
	GradeCode        string
	PayStructureType string
	Emoluments       map[string]decimal.Decimal
	Currency         string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TotalCompensation is the unconditional sum of every emolument entry,
// regardless of component category.
func (p PayGrade) TotalCompensation() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range p.Emoluments {
		total = total.Add(amount)
	}
	return total
}
