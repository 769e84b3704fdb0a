package jobstructure

import "context"

type JobStructureService interface {
	Create(ctx context.Context, req CreateJobStructureRequest) (JobStructureResponse, error)
	Get(ctx context.Context, id string) (JobStructureResponse, error)
	ListByClient(ctx context.Context, clientID string, activeOnly bool) ([]JobStructureResponse, error)
	Update(ctx context.Context, req UpdateJobStructureRequest) (JobStructureResponse, error)
	Delete(ctx context.Context, id string) error
}
