package offerletter

import "context"

type TemplateRepository interface {
	Create(ctx context.Context, t Template) (Template, error)
	GetByID(ctx context.Context, id string) (Template, error)
	GetByPayGradeID(ctx context.Context, payGradeID string) (Template, error)
	Update(ctx context.Context, t Template) error
	Delete(ctx context.Context, id string) error
}
