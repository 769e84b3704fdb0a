package attendance

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhr/payroll-backend-go/internal/domain/attendance"
	"github.com/meridianhr/payroll-backend-go/internal/domain/employee"
)

func TestParseCSV(t *testing.T) {
	data := []byte("Employee Code,Employee Name,Days Present,Days Absent,Overtime Hours\n" +
		"EMP001,Adaeze Obi,20,2,5.5\n" +
		"EMP002,Chidi Okafor,22,0,\n" +
		",,,,\n")

	rows, errs := parseCSV(data)
	require.Empty(t, errs)
	require.Len(t, rows, 2)

	assert.Equal(t, "EMP001", rows[0].EmployeeCode)
	assert.Equal(t, 20, rows[0].DaysPresent)
	assert.Equal(t, 2, rows[0].DaysAbsent)
	assert.True(t, rows[0].OvertimeHours.Equal(decimal.NewFromFloat(5.5)))
	assert.Equal(t, attendance.MatchUnmatched, rows[0].MatchKind)

	// Blank numeric cells default to zero.
	assert.True(t, rows[1].OvertimeHours.IsZero())
}

func TestParseCSVErrors(t *testing.T) {
	data := []byte("Employee Code,Employee Name,Days Present,Days Absent,Overtime Hours\n" +
		"EMP001,Adaeze Obi,twenty,2,0\n" +
		",Nameless Person,20,2,0\n" +
		"EMP003,Chidi Okafor,-1,0,0\n")

	rows, errs := parseCSV(data)
	assert.Empty(t, rows)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "line 2: days present must be a whole number")
	assert.Contains(t, errs[1], "line 3: employee code is required")
	assert.Contains(t, errs[2], "line 4: values must be non-negative")
}

func testStaff() []employee.Employee {
	return []employee.Employee{
		{ID: "id-1", EmployeeCode: "EMP001", FullName: "Adaeze Obi"},
		{ID: "id-2", EmployeeCode: "EMP002", FullName: "Chidi Okafor"},
		{ID: "id-3", EmployeeCode: "EMP003", FullName: "Bola Adeyemi"},
	}
}

func TestMatchRows(t *testing.T) {
	rows := []attendance.Row{
		{EmployeeCode: "emp001", EmployeeName: "A. N. Other"},     // direct, case-insensitive
		{EmployeeCode: "X999", EmployeeName: "OKAFOR, Chidi"},     // fuzzy on normalized name
		{EmployeeCode: "X998", EmployeeName: "Someone Unrelated"}, // unmatched
	}

	matched := matchRows(rows, testStaff())
	assert.Equal(t, 2, matched)

	assert.Equal(t, attendance.MatchDirect, rows[0].MatchKind)
	require.NotNil(t, rows[0].MatchedEmployeeID)
	assert.Equal(t, "id-1", *rows[0].MatchedEmployeeID)

	assert.Equal(t, attendance.MatchFuzzy, rows[1].MatchKind)
	require.NotNil(t, rows[1].MatchedEmployeeID)
	assert.Equal(t, "id-2", *rows[1].MatchedEmployeeID)

	assert.Equal(t, attendance.MatchUnmatched, rows[2].MatchKind)
	assert.Nil(t, rows[2].MatchedEmployeeID)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, normalizeName("Adaeze Obi"), normalizeName("OBI, Adaeze"))
	assert.Equal(t, normalizeName("Chidi  Okafor "), normalizeName("chidi okafor"))
	assert.NotEqual(t, normalizeName("Adaeze Obi"), normalizeName("Adaeze Obinna"))
	assert.Equal(t, "", normalizeName("--"))
}

func TestBuildReportCoverage(t *testing.T) {
	id := "id-1"
	upload := attendance.Upload{ID: "u1", Status: attendance.UploadStatusValidated}
	rows := []attendance.Row{
		{EmployeeCode: "EMP001", MatchKind: attendance.MatchDirect, MatchedEmployeeID: &id},
		{EmployeeCode: "X999", MatchKind: attendance.MatchUnmatched},
	}

	report := buildReport(upload, rows, 4)
	require.Len(t, report.Matched, 1)
	require.Len(t, report.Unmatched, 1)
	assert.True(t, report.TemplateCoverage.Equal(decimal.NewFromInt(25)))
}

type fakeUploadRepo struct {
	attendance.UploadRepository
	upload  attendance.Upload
	rows    []attendance.Row
	updated *attendance.Upload
}

func (f *fakeUploadRepo) GetUploadByID(_ context.Context, _ string) (attendance.Upload, error) {
	return f.upload, nil
}

func (f *fakeUploadRepo) GetRows(_ context.Context, _ string) ([]attendance.Row, error) {
	return f.rows, nil
}

func (f *fakeUploadRepo) UpdateRowMatches(_ context.Context, _ []attendance.Row) error {
	return nil
}

func (f *fakeUploadRepo) UpdateUpload(_ context.Context, u attendance.Upload) error {
	f.updated = &u
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	staff []employee.Employee
}

func (f *fakeEmployeeRepo) ListByClientID(_ context.Context, _ string, _ bool) ([]employee.Employee, error) {
	return f.staff, nil
}

func TestValidateFlagsFileWithNoMatches(t *testing.T) {
	repo := &fakeUploadRepo{
		upload: attendance.Upload{ID: "u1", ClientID: "c1", Status: attendance.UploadStatusPending},
		rows: []attendance.Row{
			{EmployeeCode: "X900", EmployeeName: "Nobody Known"},
			{EmployeeCode: "X901", EmployeeName: "Also Unknown"},
		},
	}
	svc := &UploadServiceImpl{repo: repo, employeeRepo: &fakeEmployeeRepo{staff: testStaff()}}

	report, err := svc.Validate(context.Background(), "u1")
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.Equal(t, attendance.UploadStatusError, repo.updated.Status)
	assert.Equal(t, 0, repo.updated.MatchedCount)
	assert.Equal(t, 2, repo.updated.UnmatchedCount)
	assert.Len(t, report.Unmatched, 2)
}

func TestValidateMarksMatchedUploadValidated(t *testing.T) {
	repo := &fakeUploadRepo{
		upload: attendance.Upload{ID: "u1", ClientID: "c1", Status: attendance.UploadStatusPending},
		rows: []attendance.Row{
			{EmployeeCode: "EMP001", EmployeeName: "Adaeze Obi"},
			{EmployeeCode: "X901", EmployeeName: "Also Unknown"},
		},
	}
	svc := &UploadServiceImpl{repo: repo, employeeRepo: &fakeEmployeeRepo{staff: testStaff()}}

	_, err := svc.Validate(context.Background(), "u1")
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.Equal(t, attendance.UploadStatusValidated, repo.updated.Status)
	assert.Equal(t, 1, repo.updated.MatchedCount)
}
