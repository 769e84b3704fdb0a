package paygrade

import "context"

type PayGradeRepository interface {
	Create(ctx context.Context, p PayGrade) (PayGrade, error)
	GetByID(ctx context.Context, id string) (PayGrade, error)
	GetByCode(ctx context.Context, jobStructureID string, gradeCode string) (PayGrade, error)
	ListByJobStructureID(ctx context.Context, jobStructureID string) ([]PayGrade, error)
	Update(ctx context.Context, p PayGrade) error
	// Upsert inserts or replaces a grade keyed by (job_structure_id, grade_code).
	Upsert(ctx context.Context, p PayGrade) (PayGrade, error)
	Delete(ctx context.Context, id string) error
}
