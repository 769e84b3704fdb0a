package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, clientID string, employeeCode string) (Employee, error)
	ListByClientID(ctx context.Context, clientID string, activeOnly bool) ([]Employee, error)
	Update(ctx context.Context, e Employee) error
}
