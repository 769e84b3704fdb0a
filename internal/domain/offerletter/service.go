package offerletter

import "context"

type TemplateService interface {
	Create(ctx context.Context, req CreateTemplateRequest) (TemplateResponse, error)
	GetForGrade(ctx context.Context, payGradeID string) (TemplateResponse, error)
	Update(ctx context.Context, req UpdateTemplateRequest) (TemplateResponse, error)
	Delete(ctx context.Context, id string) error
	GetSalaryComponents(ctx context.Context, payGradeID string) (SalaryComponentsResponse, error)
	// Render substitutes variables and produces the letter as a PDF.
	Render(ctx context.Context, payGradeID string, overrides map[string]string) ([]byte, string, error)
}
