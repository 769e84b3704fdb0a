package jobstructure

import "context"

type JobStructureRepository interface {
	Create(ctx context.Context, j JobStructure) (JobStructure, error)
	GetByID(ctx context.Context, id string) (JobStructure, error)
	ListByClientID(ctx context.Context, clientID string, activeOnly bool) ([]JobStructure, error)
	Update(ctx context.Context, j JobStructure) error
	Delete(ctx context.Context, id string) error
	CountPayGrades(ctx context.Context, id string) (int64, error)
}
