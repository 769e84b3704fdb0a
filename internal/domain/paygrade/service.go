package paygrade

import (
	"context"

	"github.com/xuri/excelize/v2"
)

// BulkUploadResult is either a preview or a set of field-keyed errors,
// never both.
type BulkUploadResult struct {
	Preview []PreviewRow
	Errors  map[string][]string
}

type PayGradeService interface {
	Create(ctx context.Context, req CreatePayGradeRequest) (PayGradeResponse, error)
	Get(ctx context.Context, id string) (PayGradeResponse, error)
	ListByJobStructure(ctx context.Context, jobStructureID string) ([]PayGradeResponse, error)
	Update(ctx context.Context, req UpdatePayGradeRequest) (PayGradeResponse, error)
	Delete(ctx context.Context, id string) error

	// Bulk upload pipeline
	BuildTemplate(ctx context.Context, clientID string, jobStructureID string) (*excelize.File, string, error)
	ParseUpload(ctx context.Context, clientID string, jobStructureID string, rows [][]string) (BulkUploadResult, error)
	ConfirmUpload(ctx context.Context, req BulkConfirmRequest) (BulkConfirmResponse, error)
}
