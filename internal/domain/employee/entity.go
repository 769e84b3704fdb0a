package employee

import "time"

type Employee struct {
	ID           string
	ClientID     string
	EmployeeCode string
	FullName     string
	Email        *string
	PayGradeID   *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
