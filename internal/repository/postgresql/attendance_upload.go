package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meridianhr/payroll-backend-go/internal/domain/attendance"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.UploadRepository {
	return &attendanceRepositoryImpl{db: db}
}

const uploadColumns = `id, client_id, file_name, stored_path, payroll_month, status, is_for_payroll, matched_count, unmatched_count, total_records, created_at, updated_at`

func scanUpload(row pgx.Row) (attendance.Upload, error) {
	var u attendance.Upload
	err := row.Scan(
		&u.ID,
		&u.ClientID,
		&u.FileName,
		&u.StoredPath,
		&u.PayrollMonth,
		&u.Status,
		&u.IsForPayroll,
		&u.MatchedCount,
		&u.UnmatchedCount,
		&u.TotalRecords,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// CreateUpload implements attendance.UploadRepository.
func (r *attendanceRepositoryImpl) CreateUpload(ctx context.Context, u attendance.Upload) (attendance.Upload, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_uploads (id, client_id, file_name, stored_path, payroll_month, status, is_for_payroll, matched_count, unmatched_count, total_records)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + uploadColumns

	created, err := scanUpload(q.QueryRow(ctx, query,
		u.ClientID,
		u.FileName,
		u.StoredPath,
		u.PayrollMonth,
		u.Status,
		u.IsForPayroll,
		u.MatchedCount,
		u.UnmatchedCount,
		u.TotalRecords,
	))
	if err != nil {
		return attendance.Upload{}, fmt.Errorf("failed to create attendance upload: %w", err)
	}

	return created, nil
}

// GetUploadByID implements attendance.UploadRepository.
func (r *attendanceRepositoryImpl) GetUploadByID(ctx context.Context, id string) (attendance.Upload, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + uploadColumns + ` FROM attendance_uploads WHERE id = $1`

	found, err := scanUpload(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Upload{}, attendance.ErrUploadNotFound
		}
		return attendance.Upload{}, fmt.Errorf("failed to get attendance upload: %w", err)
	}

	return found, nil
}

// ListUploads implements attendance.UploadRepository.
func (r *attendanceRepositoryImpl) ListUploads(ctx context.Context, clientID string, forPayrollOnly bool) ([]attendance.Upload, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + uploadColumns + `
		FROM attendance_uploads
		WHERE client_id = $1 AND ($2 = false OR is_for_payroll = true)
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, clientID, forPayrollOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance uploads: %w", err)
	}
	defer rows.Close()

	var uploads []attendance.Upload
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance upload: %w", err)
		}
		uploads = append(uploads, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance uploads: %w", err)
	}

	return uploads, nil
}

// UpdateUpload implements attendance.UploadRepository.
func (r *attendanceRepositoryImpl) UpdateUpload(ctx context.Context, u attendance.Upload) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_uploads
		SET status = $1, matched_count = $2, unmatched_count = $3, total_records = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, u.Status, u.MatchedCount, u.UnmatchedCount, u.TotalRecords, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance upload: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrUploadNotFound
	}

	return nil
}

// DeleteUpload implements attendance.UploadRepository.
func (r *attendanceRepositoryImpl) DeleteUpload(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// Rows cascade via FK.
	tag, err := q.Exec(ctx, `DELETE FROM attendance_uploads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance upload: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrUploadNotFound
	}

	return nil
}

// InsertRows implements attendance.UploadRepository.
func (r *attendanceRepositoryImpl) InsertRows(ctx context.Context, uploadID string, rows []attendance.Row) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_rows (id, upload_id, employee_code, employee_name, days_present, days_absent, overtime_hours, match_kind, matched_employee_id)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, row := range rows {
		_, err := q.Exec(ctx, query,
			uploadID,
			row.EmployeeCode,
			row.EmployeeName,
			row.DaysPresent,
			row.DaysAbsent,
			row.OvertimeHours,
			row.MatchKind,
			row.MatchedEmployeeID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert attendance row: %w", err)
		}
	}

	return nil
}

// GetRows implements attendance.UploadRepository.
func (r *attendanceRepositoryImpl) GetRows(ctx context.Context, uploadID string) ([]attendance.Row, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, upload_id, employee_code, employee_name, days_present, days_absent, overtime_hours, match_kind, matched_employee_id
		FROM attendance_rows
		WHERE upload_id = $1
		ORDER BY employee_code ASC
	`

	rows, err := q.Query(ctx, query, uploadID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance rows: %w", err)
	}
	defer rows.Close()

	var result []attendance.Row
	for rows.Next() {
		var row attendance.Row
		err := rows.Scan(
			&row.ID,
			&row.UploadID,
			&row.EmployeeCode,
			&row.EmployeeName,
			&row.DaysPresent,
			&row.DaysAbsent,
			&row.OvertimeHours,
			&row.MatchKind,
			&row.MatchedEmployeeID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return result, nil
}

// UpdateRowMatches implements attendance.UploadRepository.
func (r *attendanceRepositoryImpl) UpdateRowMatches(ctx context.Context, rows []attendance.Row) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_rows
		SET match_kind = $1, matched_employee_id = $2
		WHERE id = $3
	`

	for _, row := range rows {
		if _, err := q.Exec(ctx, query, row.MatchKind, row.MatchedEmployeeID, row.ID); err != nil {
			return fmt.Errorf("failed to update attendance row match: %w", err)
		}
	}

	return nil
}

// GetValidatedRows implements attendance.UploadRepository.
func (r *attendanceRepositoryImpl) GetValidatedRows(ctx context.Context, clientID string, payrollMonth string) (map[string]attendance.Row, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ar.id, ar.upload_id, ar.employee_code, ar.employee_name, ar.days_present, ar.days_absent, ar.overtime_hours, ar.match_kind, ar.matched_employee_id
		FROM attendance_rows ar
		JOIN attendance_uploads au ON au.id = ar.upload_id
		WHERE au.client_id = $1
		  AND au.payroll_month = $2
		  AND au.status = 'validated'
		  AND au.is_for_payroll = true
		  AND ar.matched_employee_id IS NOT NULL
		  AND au.created_at = (
			SELECT MAX(created_at)
			FROM attendance_uploads
			WHERE client_id = $1 AND payroll_month = $2 AND status = 'validated' AND is_for_payroll = true
		  )
	`

	rows, err := q.Query(ctx, query, clientID, payrollMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to get validated attendance rows: %w", err)
	}
	defer rows.Close()

	result := make(map[string]attendance.Row)
	for rows.Next() {
		var row attendance.Row
		err := rows.Scan(
			&row.ID,
			&row.UploadID,
			&row.EmployeeCode,
			&row.EmployeeName,
			&row.DaysPresent,
			&row.DaysAbsent,
			&row.OvertimeHours,
			&row.MatchKind,
			&row.MatchedEmployeeID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan validated attendance row: %w", err)
		}
		result[*row.MatchedEmployeeID] = row
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate validated attendance rows: %w", err)
	}

	return result, nil
}
