package payrollrun

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/meridianhr/payroll-backend-go/internal/domain/attendance"
	"github.com/meridianhr/payroll-backend-go/internal/domain/emolument"
	"github.com/meridianhr/payroll-backend-go/internal/domain/employee"
	"github.com/meridianhr/payroll-backend-go/internal/domain/paygrade"
	"github.com/meridianhr/payroll-backend-go/internal/domain/payrollrun"
	"github.com/meridianhr/payroll-backend-go/internal/domain/settings"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/formula"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/paycalc"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/xlsx"
	"github.com/meridianhr/payroll-backend-go/internal/repository/postgresql"
)

type RunServiceImpl struct {
	db             *database.DB
	repo           payrollrun.RunRepository
	employeeRepo   employee.EmployeeRepository
	gradeRepo      paygrade.PayGradeRepository
	componentRepo  emolument.ComponentRepository
	attendanceRepo attendance.UploadRepository
	settingsRepo   settings.SettingsRepository
	engine         *formula.Engine
}

func NewRunService(
	db *database.DB,
	repo payrollrun.RunRepository,
	employeeRepo employee.EmployeeRepository,
	gradeRepo paygrade.PayGradeRepository,
	componentRepo emolument.ComponentRepository,
	attendanceRepo attendance.UploadRepository,
	settingsRepo settings.SettingsRepository,
	engine *formula.Engine,
) payrollrun.RunService {
	return &RunServiceImpl{
		db:             db,
		repo:           repo,
		employeeRepo:   employeeRepo,
		gradeRepo:      gradeRepo,
		componentRepo:  componentRepo,
		attendanceRepo: attendanceRepo,
		settingsRepo:   settingsRepo,
		engine:         engine,
	}
}

func getUserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// ========== LIFECYCLE ==========

func (s *RunServiceImpl) Create(ctx context.Context, req payrollrun.CreateRunRequest) (payrollrun.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payrollrun.RunResponse{}, err
	}

	_, err := s.repo.GetByPeriod(ctx, req.ClientID, req.Month, req.Year)
	if err == nil {
		return payrollrun.RunResponse{}, payrollrun.ErrRunExistsForPeriod
	}
	if !errors.Is(err, payrollrun.ErrRunNotFound) {
		return payrollrun.RunResponse{}, err
	}

	created, err := s.repo.Create(ctx, payrollrun.Run{
		RunName:    req.RunName,
		ClientID:   req.ClientID,
		Month:      req.Month,
		Year:       req.Year,
		Status:     payrollrun.StatusDraft,
		TotalGross: decimal.Zero,
		TotalNet:   decimal.Zero,
	})
	if err != nil {
		return payrollrun.RunResponse{}, err
	}

	return payrollrun.ToResponse(created, nil), nil
}

func (s *RunServiceImpl) Get(ctx context.Context, id string) (payrollrun.RunResponse, error) {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}

	items, err := s.repo.GetLineItems(ctx, id)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}

	return payrollrun.ToResponse(run, items), nil
}

func (s *RunServiceImpl) List(ctx context.Context, clientID string) ([]payrollrun.RunResponse, error) {
	runs, err := s.repo.List(ctx, clientID)
	if err != nil {
		return nil, err
	}

	responses := make([]payrollrun.RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, payrollrun.ToResponse(run, nil))
	}
	return responses, nil
}

// Calculate computes every line item from pay grades, validated attendance
// and the statutory settings. Recalculating a calculated run replaces its
// line items wholesale.
func (s *RunServiceImpl) Calculate(ctx context.Context, id string) (payrollrun.RunResponse, error) {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}
	if !run.CanPerform(payrollrun.ActionCalculate) {
		return payrollrun.RunResponse{}, payrollrun.ErrInvalidTransition
	}

	staff, err := s.employeeRepo.ListByClientID(ctx, run.ClientID, true)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}
	var payable []employee.Employee
	for _, e := range staff {
		if e.PayGradeID != nil {
			payable = append(payable, e)
		}
	}
	if len(payable) == 0 {
		return payrollrun.RunResponse{}, payrollrun.ErrNoEmployees
	}

	payrollMonth := fmt.Sprintf("%04d-%02d", run.Year, run.Month)
	attendanceRows, err := s.attendanceRepo.GetValidatedRows(ctx, run.ClientID, payrollMonth)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}
	if len(attendanceRows) == 0 {
		return payrollrun.RunResponse{}, payrollrun.ErrAttendanceMissing
	}

	calcSettings, grossFormula, err := s.loadCalcSettings(ctx)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}

	components, err := s.componentRepo.ListForClient(ctx, run.ClientID)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}
	componentsByCode := make(map[string]emolument.Component, len(components))
	for _, c := range components {
		componentsByCode[c.ComponentCode] = c
	}

	periodDays := daysInMonth(run.Year, run.Month)
	gradeCache := make(map[string]paygrade.PayGrade)

	var items []payrollrun.LineItem
	totalGross := decimal.Zero
	totalNet := decimal.Zero

	for _, e := range payable {
		grade, ok := gradeCache[*e.PayGradeID]
		if !ok {
			grade, err = s.gradeRepo.GetByID(ctx, *e.PayGradeID)
			if err != nil {
				return payrollrun.RunResponse{}, fmt.Errorf("employee %s: %w", e.EmployeeCode, err)
			}
			gradeCache[grade.ID] = grade
		}

		daysPresent := periodDays
		if row, ok := attendanceRows[e.ID]; ok {
			daysPresent = row.DaysPresent
		}

		input := buildCalcInput(grade, componentsByCode, daysPresent, periodDays)

		if grossFormula != "" {
			v, err := s.engine.Evaluate(grossFormula, map[string]float64{
				"gross":       sumEmoluments(grade.Emoluments).InexactFloat64(),
				"basic":       input.Basic.InexactFloat64(),
				"pensionable": input.Pensionable.InexactFloat64(),
			})
			if err != nil {
				return payrollrun.RunResponse{}, fmt.Errorf("evaluate gross formula: %w", err)
			}
			input.Emoluments = map[string]decimal.Decimal{"GROSS": decimal.NewFromFloat(v)}
		}

		result, err := paycalc.Compute(input, calcSettings, s.engine)
		if err != nil {
			return payrollrun.RunResponse{}, fmt.Errorf("employee %s: %w", e.EmployeeCode, err)
		}

		items = append(items, payrollrun.LineItem{
			EmployeeID:     e.ID,
			EmployeeCode:   e.EmployeeCode,
			EmployeeName:   e.FullName,
			PayGradeName:   grade.GradeName,
			DaysPresent:    daysPresent,
			PeriodDays:     periodDays,
			Prorated:       result.Prorated,
			Gross:          result.Gross,
			Pension:        result.Pension,
			NHF:            result.NHF,
			NSITF:          result.NSITF,
			PAYE:           result.PAYE,
			TotalDeduction: result.TotalDeduction,
			Net:            result.Net,
		})
		totalGross = totalGross.Add(result.Gross)
		totalNet = totalNet.Add(result.Net)
	}

	run.Status = payrollrun.StatusCalculated
	run.EmployeeCount = len(items)
	run.TotalGross = totalGross
	run.TotalNet = totalNet

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.repo.ReplaceLineItems(txCtx, run.ID, items); err != nil {
			return err
		}
		return s.repo.Update(txCtx, run)
	})
	if err != nil {
		return payrollrun.RunResponse{}, err
	}

	saved, err := s.repo.GetLineItems(ctx, run.ID)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}
	return payrollrun.ToResponse(run, saved), nil
}

func (s *RunServiceImpl) Approve(ctx context.Context, id string) (payrollrun.RunResponse, error) {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}
	if !run.CanPerform(payrollrun.ActionApprove) {
		return payrollrun.RunResponse{}, payrollrun.ErrInvalidTransition
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}

	now := time.Now()
	run.Status = payrollrun.StatusApproved
	run.ApprovedBy = &userID
	run.ApprovedAt = &now

	if err := s.repo.Update(ctx, run); err != nil {
		return payrollrun.RunResponse{}, err
	}

	items, err := s.repo.GetLineItems(ctx, id)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}
	return payrollrun.ToResponse(run, items), nil
}

// Export builds the run workbook. The first export flips the run to
// exported; later calls re-download without changing state.
func (s *RunServiceImpl) Export(ctx context.Context, id string) ([]byte, string, error) {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !run.CanPerform(payrollrun.ActionExport) {
		return nil, "", payrollrun.ErrInvalidTransition
	}

	items, err := s.repo.GetLineItems(ctx, id)
	if err != nil {
		return nil, "", err
	}

	file, err := xlsx.BuildSheet("Payroll", exportRows(run, items))
	if err != nil {
		return nil, "", fmt.Errorf("build export workbook: %w", err)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("write export workbook: %w", err)
	}

	if run.Status != payrollrun.StatusExported {
		now := time.Now()
		run.Status = payrollrun.StatusExported
		run.ExportedAt = &now
		if err := s.repo.Update(ctx, run); err != nil {
			return nil, "", err
		}
	}

	filename := fmt.Sprintf("Payroll_%s.xlsx", strings.ReplaceAll(run.RunName, " ", "_"))
	return buf.Bytes(), filename, nil
}

func exportRows(run payrollrun.Run, items []payrollrun.LineItem) [][]interface{} {
	rows := [][]interface{}{
		{"Employee Code", "Employee Name", "Pay Grade", "Days Present", "Period Days",
			"Gross", "Pension", "NHF", "NSITF", "PAYE", "Total Deduction", "Net"},
	}
	for _, item := range items {
		rows = append(rows, []interface{}{
			item.EmployeeCode,
			item.EmployeeName,
			item.PayGradeName,
			item.DaysPresent,
			item.PeriodDays,
			item.Gross.InexactFloat64(),
			item.Pension.InexactFloat64(),
			item.NHF.InexactFloat64(),
			item.NSITF.InexactFloat64(),
			item.PAYE.InexactFloat64(),
			item.TotalDeduction.InexactFloat64(),
			item.Net.InexactFloat64(),
		})
	}
	rows = append(rows, []interface{}{
		"TOTAL", "", "", "", "",
		run.TotalGross.InexactFloat64(), "", "", "", "", "",
		run.TotalNet.InexactFloat64(),
	})
	return rows
}

func (s *RunServiceImpl) Delete(ctx context.Context, id string) error {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !run.CanPerform(payrollrun.ActionDelete) {
		return payrollrun.ErrInvalidTransition
	}
	return s.repo.Delete(ctx, id)
}

// ========== CALCULATION HELPERS ==========

type taxExemption struct {
	Fixed     decimal.Decimal `json:"fixed"`
	GrossRate decimal.Decimal `json:"gross_rate"`
}

// loadCalcSettings assembles the statutory parameters, falling back to the
// system defaults for any key never customized.
func (s *RunServiceImpl) loadCalcSettings(ctx context.Context) (paycalc.Settings, string, error) {
	get := func(key string) (json.RawMessage, error) {
		stored, err := s.settingsRepo.Get(ctx, key)
		if err == nil {
			return stored.Value, nil
		}
		if errors.Is(err, settings.ErrSettingNotFound) {
			return settings.SystemDefaults[key], nil
		}
		return nil, err
	}

	var cs paycalc.Settings

	raw, err := get(settings.KeyPAYEBrackets)
	if err != nil {
		return paycalc.Settings{}, "", err
	}
	if err := json.Unmarshal(raw, &cs.Brackets); err != nil {
		return paycalc.Settings{}, "", fmt.Errorf("decode %s: %w", settings.KeyPAYEBrackets, err)
	}
	if len(cs.Brackets) == 0 {
		return paycalc.Settings{}, "", payrollrun.ErrSettingsIncomplete
	}

	raw, err = get(settings.KeyTaxExemption)
	if err != nil {
		return paycalc.Settings{}, "", err
	}
	var exemption taxExemption
	if err := json.Unmarshal(raw, &exemption); err != nil {
		return paycalc.Settings{}, "", fmt.Errorf("decode %s: %w", settings.KeyTaxExemption, err)
	}
	cs.ExemptionFixed = exemption.Fixed
	cs.ExemptionRate = exemption.GrossRate

	rates := []struct {
		key string
		dst *decimal.Decimal
	}{
		{settings.KeyPensionRate, &cs.PensionRate},
		{settings.KeyNHFRate, &cs.NHFRate},
		{settings.KeyNSITFRate, &cs.NSITFRate},
		{settings.KeyITFRate, &cs.ITFRate},
	}
	for _, r := range rates {
		raw, err := get(r.key)
		if err != nil {
			return paycalc.Settings{}, "", err
		}
		if err := json.Unmarshal(raw, r.dst); err != nil {
			return paycalc.Settings{}, "", fmt.Errorf("decode %s: %w", r.key, err)
		}
	}

	raw, err = get(settings.KeyTaxableFormula)
	if err != nil {
		return paycalc.Settings{}, "", err
	}
	if err := json.Unmarshal(raw, &cs.TaxableOverride); err != nil {
		return paycalc.Settings{}, "", fmt.Errorf("decode %s: %w", settings.KeyTaxableFormula, err)
	}

	raw, err = get(settings.KeyGrossFormula)
	if err != nil {
		return paycalc.Settings{}, "", err
	}
	var grossFormula string
	if err := json.Unmarshal(raw, &grossFormula); err != nil {
		return paycalc.Settings{}, "", fmt.Errorf("decode %s: %w", settings.KeyGrossFormula, err)
	}

	return cs, grossFormula, nil
}

// buildCalcInput derives the statutory bases from component metadata:
// pensionable components feed the pension base, basic-category components
// feed the NHF base.
func buildCalcInput(grade paygrade.PayGrade, components map[string]emolument.Component, daysPresent, periodDays int) paycalc.Input {
	pensionable := decimal.Zero
	basic := decimal.Zero
	for code, amount := range grade.Emoluments {
		c, ok := components[code]
		if !ok {
			continue
		}
		if c.IsPensionable {
			pensionable = pensionable.Add(amount)
		}
		if c.Category == emolument.CategoryBasic {
			basic = basic.Add(amount)
		}
	}

	return paycalc.Input{
		Emoluments:  grade.Emoluments,
		Pensionable: pensionable,
		Basic:       basic,
		DaysPresent: daysPresent,
		PeriodDays:  periodDays,
	}
}

func sumEmoluments(emoluments map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range emoluments {
		total = total.Add(amount)
	}
	return total
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
