package attendance

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridianhr/payroll-backend-go/internal/domain/attendance"
	"github.com/meridianhr/payroll-backend-go/internal/domain/employee"
	"github.com/meridianhr/payroll-backend-go/internal/domain/payrollrun"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
)

var csvHeader = []string{"Employee Code", "Employee Name", "Days Present", "Days Absent", "Overtime Hours"}

type UploadServiceImpl struct {
	db           *database.DB
	repo         attendance.UploadRepository
	employeeRepo employee.EmployeeRepository
	runRepo      payrollrun.RunRepository
	storagePath  string
}

func NewUploadService(
	db *database.DB,
	repo attendance.UploadRepository,
	employeeRepo employee.EmployeeRepository,
	runRepo payrollrun.RunRepository,
	storagePath string,
) attendance.UploadService {
	return &UploadServiceImpl{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		runRepo:      runRepo,
		storagePath:  storagePath,
	}
}

// Template returns the CSV template prefilled with the client's active staff.
func (s *UploadServiceImpl) Template(ctx context.Context, clientID string) ([]byte, string, error) {
	staff, err := s.employeeRepo.ListByClientID(ctx, clientID, true)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, "", err
	}
	for _, e := range staff {
		if err := w.Write([]string{e.EmployeeCode, e.FullName, "", "", ""}); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), "Attendance_Template.csv", nil
}

// Upload parses and stores an attendance CSV. Matching happens later in
// Validate; rows land as unmatched.
func (s *UploadServiceImpl) Upload(ctx context.Context, req attendance.UploadRequest, file io.Reader) (attendance.UploadResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.UploadResponse{}, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return attendance.UploadResponse{}, fmt.Errorf("read upload: %w", err)
	}

	rows, parseErrs := parseCSV(data)
	if len(parseErrs) > 0 {
		return attendance.UploadResponse{}, fmt.Errorf("%s", strings.Join(parseErrs, "; "))
	}
	if len(rows) == 0 {
		return attendance.UploadResponse{}, attendance.ErrNoRows
	}

	storedPath, err := s.storeFile(req.ClientID, req.FileName, data)
	if err != nil {
		return attendance.UploadResponse{}, err
	}

	created, err := s.repo.CreateUpload(ctx, attendance.Upload{
		ClientID:     req.ClientID,
		FileName:     req.FileName,
		StoredPath:   storedPath,
		PayrollMonth: req.PayrollMonth,
		Status:       attendance.UploadStatusPending,
		IsForPayroll: req.IsForPayroll,
		TotalRecords: len(rows),
	})
	if err != nil {
		return attendance.UploadResponse{}, err
	}

	if err := s.repo.InsertRows(ctx, created.ID, rows); err != nil {
		return attendance.UploadResponse{}, err
	}

	return attendance.ToUploadResponse(created), nil
}

func (s *UploadServiceImpl) storeFile(clientID, fileName string, data []byte) (string, error) {
	dir := filepath.Join(s.storagePath, "attendance", clientID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}
	stored := filepath.Join(dir, uuid.NewString()+"_"+filepath.Base(fileName))
	if err := os.WriteFile(stored, data, 0o644); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return stored, nil
}

// parseCSV reads the template layout. The first record must be the header.
func parseCSV(data []byte) ([]attendance.Row, []string) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, []string{"invalid CSV: " + err.Error()}
	}
	if len(records) < 2 {
		return nil, nil
	}

	var errs []string
	var rows []attendance.Row
	for i, record := range records[1:] {
		lineNo := i + 2
		code := strings.TrimSpace(cell(record, 0))
		name := strings.TrimSpace(cell(record, 1))
		if code == "" && name == "" {
			continue
		}
		if code == "" {
			errs = append(errs, fmt.Sprintf("line %d: employee code is required", lineNo))
			continue
		}

		daysPresent, err := parseIntCell(cell(record, 2))
		if err != nil {
			errs = append(errs, fmt.Sprintf("line %d: days present must be a whole number", lineNo))
			continue
		}
		daysAbsent, err := parseIntCell(cell(record, 3))
		if err != nil {
			errs = append(errs, fmt.Sprintf("line %d: days absent must be a whole number", lineNo))
			continue
		}
		overtime, err := parseDecimalCell(cell(record, 4))
		if err != nil {
			errs = append(errs, fmt.Sprintf("line %d: overtime hours must be a number", lineNo))
			continue
		}
		if daysPresent < 0 || daysAbsent < 0 || overtime.IsNegative() {
			errs = append(errs, fmt.Sprintf("line %d: values must be non-negative", lineNo))
			continue
		}

		rows = append(rows, attendance.Row{
			EmployeeCode:  code,
			EmployeeName:  name,
			DaysPresent:   daysPresent,
			DaysAbsent:    daysAbsent,
			OvertimeHours: overtime,
			MatchKind:     attendance.MatchUnmatched,
		})
	}

	return rows, errs
}

func cell(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}

func parseIntCell(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseDecimalCell(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// Validate matches upload rows against the client register and marks the
// upload validated. Re-running revalidates from scratch.
func (s *UploadServiceImpl) Validate(ctx context.Context, uploadID string) (attendance.ValidationReport, error) {
	upload, err := s.repo.GetUploadByID(ctx, uploadID)
	if err != nil {
		return attendance.ValidationReport{}, err
	}

	rows, err := s.repo.GetRows(ctx, uploadID)
	if err != nil {
		return attendance.ValidationReport{}, err
	}

	staff, err := s.employeeRepo.ListByClientID(ctx, upload.ClientID, true)
	if err != nil {
		return attendance.ValidationReport{}, err
	}

	matched := matchRows(rows, staff)

	// A file where nothing matched is unusable for payroll; flag it instead
	// of marking it validated.
	upload.Status = attendance.UploadStatusValidated
	if matched == 0 {
		upload.Status = attendance.UploadStatusError
	}
	upload.MatchedCount = matched
	upload.UnmatchedCount = len(rows) - matched
	upload.TotalRecords = len(rows)

	if err := s.repo.UpdateRowMatches(ctx, rows); err != nil {
		return attendance.ValidationReport{}, err
	}
	if err := s.repo.UpdateUpload(ctx, upload); err != nil {
		return attendance.ValidationReport{}, err
	}

	return buildReport(upload, rows, len(staff)), nil
}

// matchRows annotates rows in place and returns the matched count. Direct
// employee-code matches win; the fallback compares normalized full names.
func matchRows(rows []attendance.Row, staff []employee.Employee) int {
	byCode := make(map[string]*employee.Employee, len(staff))
	byName := make(map[string]*employee.Employee, len(staff))
	for i := range staff {
		e := &staff[i]
		byCode[strings.ToUpper(e.EmployeeCode)] = e
		byName[normalizeName(e.FullName)] = e
	}

	matched := 0
	for i := range rows {
		row := &rows[i]
		if e, ok := byCode[strings.ToUpper(row.EmployeeCode)]; ok {
			row.MatchKind = attendance.MatchDirect
			row.MatchedEmployeeID = &e.ID
			matched++
			continue
		}
		if key := normalizeName(row.EmployeeName); key != "" {
			if e, ok := byName[key]; ok {
				row.MatchKind = attendance.MatchFuzzy
				row.MatchedEmployeeID = &e.ID
				matched++
				continue
			}
		}
		row.MatchKind = attendance.MatchUnmatched
		row.MatchedEmployeeID = nil
	}
	return matched
}

// normalizeName lowercases, strips punctuation and sorts name tokens so
// "Obi, Adaeze" and "adaeze OBI" compare equal.
func normalizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, name)

	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 {
		return ""
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func buildReport(upload attendance.Upload, rows []attendance.Row, activeStaff int) attendance.ValidationReport {
	report := attendance.ValidationReport{
		Upload:           attendance.ToUploadResponse(upload),
		TemplateCoverage: decimal.Zero,
	}

	for _, row := range rows {
		if row.MatchedEmployeeID != nil {
			report.Matched = append(report.Matched, attendance.MatchedStaff{
				EmployeeID:    *row.MatchedEmployeeID,
				EmployeeCode:  row.EmployeeCode,
				EmployeeName:  row.EmployeeName,
				MatchKind:     string(row.MatchKind),
				DaysPresent:   row.DaysPresent,
				DaysAbsent:    row.DaysAbsent,
				OvertimeHours: row.OvertimeHours,
			})
		} else {
			report.Unmatched = append(report.Unmatched, attendance.UnmatchedStaff{
				EmployeeCode: row.EmployeeCode,
				EmployeeName: row.EmployeeName,
				Reason:       "no matching employee on the client register",
			})
		}
	}

	if activeStaff > 0 {
		report.TemplateCoverage = decimal.NewFromInt(int64(len(report.Matched))).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(activeStaff))).
			Round(2)
	}

	return report
}

// Preview rebuilds the report from stored state without re-matching.
func (s *UploadServiceImpl) Preview(ctx context.Context, uploadID string) (attendance.ValidationReport, error) {
	upload, err := s.repo.GetUploadByID(ctx, uploadID)
	if err != nil {
		return attendance.ValidationReport{}, err
	}
	if upload.Status != attendance.UploadStatusValidated {
		return attendance.ValidationReport{}, attendance.ErrUploadNotValidated
	}

	rows, err := s.repo.GetRows(ctx, uploadID)
	if err != nil {
		return attendance.ValidationReport{}, err
	}

	staff, err := s.employeeRepo.ListByClientID(ctx, upload.ClientID, true)
	if err != nil {
		return attendance.ValidationReport{}, err
	}

	return buildReport(upload, rows, len(staff)), nil
}

func (s *UploadServiceImpl) List(ctx context.Context, clientID string, forPayrollOnly bool) ([]attendance.UploadResponse, error) {
	uploads, err := s.repo.ListUploads(ctx, clientID, forPayrollOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.UploadResponse, 0, len(uploads))
	for _, u := range uploads {
		responses = append(responses, attendance.ToUploadResponse(u))
	}
	return responses, nil
}

// Delete refuses to remove an upload whose period already has a payroll run
// past draft.
func (s *UploadServiceImpl) Delete(ctx context.Context, uploadID string) error {
	upload, err := s.repo.GetUploadByID(ctx, uploadID)
	if err != nil {
		return err
	}

	if upload.IsForPayroll {
		month, year, err := splitPayrollMonth(upload.PayrollMonth)
		if err == nil {
			run, err := s.runRepo.GetByPeriod(ctx, upload.ClientID, month, year)
			if err == nil && run.Status != payrollrun.StatusDraft {
				return attendance.ErrUploadInUse
			}
			if err != nil && !errors.Is(err, payrollrun.ErrRunNotFound) {
				return err
			}
		}
	}

	if upload.StoredPath != "" {
		_ = os.Remove(upload.StoredPath)
	}

	return s.repo.DeleteUpload(ctx, uploadID)
}

func splitPayrollMonth(payrollMonth string) (month, year int, err error) {
	parts := strings.SplitN(payrollMonth, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid payroll month: %s", payrollMonth)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return month, year, nil
}
