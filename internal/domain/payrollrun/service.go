package payrollrun

import "context"

type RunService interface {
	Create(ctx context.Context, req CreateRunRequest) (RunResponse, error)
	Get(ctx context.Context, id string) (RunResponse, error)
	List(ctx context.Context, clientID string) ([]RunResponse, error)
	Calculate(ctx context.Context, id string) (RunResponse, error)
	Approve(ctx context.Context, id string) (RunResponse, error)
	// Export builds the run spreadsheet and flips a first export to exported.
	Export(ctx context.Context, id string) (data []byte, filename string, err error)
	Delete(ctx context.Context, id string) error
}
