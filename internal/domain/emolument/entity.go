package emolument

import "time"

// Category enum
type Category string

const (
	CategoryBasic     Category = "basic"
	CategoryAllowance Category = "allowance"
	CategoryDeduction Category = "deduction"
	CategoryBenefit   Category = "benefit"
)

// Component is a named pay element. Universal components have a nil ClientID
// and are read-only; client components are scoped and CRUD-able.
type Component struct {
	ID              string
	ClientID        *string
	ComponentCode   string
	ComponentName   string
	Category        Category
	PayrollCategory string
	IsPensionable   bool
	IsTaxable       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c Component) IsUniversal() bool {
	return c.ClientID == nil
}
