package payrollrun

import "context"

type RunRepository interface {
	Create(ctx context.Context, r Run) (Run, error)
	GetByID(ctx context.Context, id string) (Run, error)
	GetByPeriod(ctx context.Context, clientID string, month, year int) (Run, error)
	List(ctx context.Context, clientID string) ([]Run, error)
	Update(ctx context.Context, r Run) error
	Delete(ctx context.Context, id string) error

	ReplaceLineItems(ctx context.Context, runID string, items []LineItem) error
	GetLineItems(ctx context.Context, runID string) ([]LineItem, error)
}
