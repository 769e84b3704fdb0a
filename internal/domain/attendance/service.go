package attendance

import (
	"context"
	"io"
)

type UploadService interface {
	// Template returns the CSV attendance template for a client.
	Template(ctx context.Context, clientID string) ([]byte, string, error)
	Upload(ctx context.Context, req UploadRequest, file io.Reader) (UploadResponse, error)
	Validate(ctx context.Context, uploadID string) (ValidationReport, error)
	Preview(ctx context.Context, uploadID string) (ValidationReport, error)
	List(ctx context.Context, clientID string, forPayrollOnly bool) ([]UploadResponse, error)
	Delete(ctx context.Context, uploadID string) error
}
