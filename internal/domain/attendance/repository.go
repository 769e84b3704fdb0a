package attendance

import "context"

type UploadRepository interface {
	CreateUpload(ctx context.Context, u Upload) (Upload, error)
	GetUploadByID(ctx context.Context, id string) (Upload, error)
	ListUploads(ctx context.Context, clientID string, forPayrollOnly bool) ([]Upload, error)
	UpdateUpload(ctx context.Context, u Upload) error
	DeleteUpload(ctx context.Context, id string) error

	InsertRows(ctx context.Context, uploadID string, rows []Row) error
	GetRows(ctx context.Context, uploadID string) ([]Row, error)
	UpdateRowMatches(ctx context.Context, rows []Row) error
	// GetValidatedRows returns matched rows of the latest validated payroll
	// upload for the client and month, keyed by employee ID.
	GetValidatedRows(ctx context.Context, clientID string, payrollMonth string) (map[string]Row, error)
}
