package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// UploadStatus enum
type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "pending"
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusValidated  UploadStatus = "validated"
	UploadStatusError      UploadStatus = "error"
)

// MatchKind enum
type MatchKind string

const (
	MatchDirect    MatchKind = "direct_id_matched"
	MatchFuzzy     MatchKind = "fuzzy_matched"
	MatchUnmatched MatchKind = "unmatched"
)

// Upload is one attendance spreadsheet submitted for a payroll period.
// IsForPayroll distinguishes payroll uploads from invoicing uploads stored
// in the same table.
type Upload struct {
	ID             string
	ClientID       string
	FileName       string
	StoredPath     string
	PayrollMonth   string // "YYYY-MM"
	Status         UploadStatus
	IsForPayroll   bool
	MatchedCount   int
	UnmatchedCount int
	TotalRecords   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Row is one parsed line of an upload, annotated during validation.
type Row struct {
	ID                string
	UploadID          string
	EmployeeCode      string
	EmployeeName      string
	DaysPresent       int
	DaysAbsent        int
	OvertimeHours     decimal.Decimal
	MatchKind         MatchKind
	MatchedEmployeeID *string
}
