package paygrade

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/meridianhr/payroll-backend-go/internal/domain/emolument"
	"github.com/meridianhr/payroll-backend-go/internal/domain/jobstructure"
	"github.com/meridianhr/payroll-backend-go/internal/domain/offerletter"
	"github.com/meridianhr/payroll-backend-go/internal/domain/paygrade"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/xlsx"
	"github.com/meridianhr/payroll-backend-go/internal/repository/postgresql"
)

// Fixed template columns preceding the per-component columns.
var templateColumns = []string{"Grade Name", "Grade Code", "Pay Structure Type", "Currency"}

type PayGradeServiceImpl struct {
	db              *database.DB
	repo            paygrade.PayGradeRepository
	jobRepo         jobstructure.JobStructureRepository
	componentRepo   emolument.ComponentRepository
	offerLetterRepo offerletter.TemplateRepository
}

func NewPayGradeService(
	db *database.DB,
	repo paygrade.PayGradeRepository,
	jobRepo jobstructure.JobStructureRepository,
	componentRepo emolument.ComponentRepository,
	offerLetterRepo offerletter.TemplateRepository,
) paygrade.PayGradeService {
	return &PayGradeServiceImpl{
		db:              db,
		repo:            repo,
		jobRepo:         jobRepo,
		componentRepo:   componentRepo,
		offerLetterRepo: offerLetterRepo,
	}
}

// ========== CRUD ==========

func (s *PayGradeServiceImpl) Create(ctx context.Context, req paygrade.CreatePayGradeRequest) (paygrade.PayGradeResponse, error) {
	if err := req.Validate(); err != nil {
		return paygrade.PayGradeResponse{}, err
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobStructureID)
	if err != nil {
		return paygrade.PayGradeResponse{}, err
	}
	if !validator.IsInSlice(req.PayStructureType, job.PayStructures) {
		return paygrade.PayGradeResponse{}, paygrade.ErrInvalidPayStructure
	}

	if _, err := s.repo.GetByCode(ctx, req.JobStructureID, req.GradeCode); err == nil {
		return paygrade.PayGradeResponse{}, paygrade.ErrGradeCodeExists
	}

	if err := s.checkComponents(ctx, job.ClientID, req.Emoluments); err != nil {
		return paygrade.PayGradeResponse{}, err
	}

	created, err := s.repo.Create(ctx, paygrade.PayGrade{
		JobStructureID:   req.JobStructureID,
		GradeName:        req.GradeName,
		GradeCode:        req.GradeCode,
		PayStructureType: req.PayStructureType,
		Emoluments:       req.Emoluments,
		Currency:         req.Currency,
		IsActive:         true,
	})
	if err != nil {
		return paygrade.PayGradeResponse{}, err
	}

	return paygrade.ToResponse(created), nil
}

func (s *PayGradeServiceImpl) Get(ctx context.Context, id string) (paygrade.PayGradeResponse, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return paygrade.PayGradeResponse{}, err
	}
	return paygrade.ToResponse(found), nil
}

func (s *PayGradeServiceImpl) ListByJobStructure(ctx context.Context, jobStructureID string) ([]paygrade.PayGradeResponse, error) {
	grades, err := s.repo.ListByJobStructureID(ctx, jobStructureID)
	if err != nil {
		return nil, err
	}

	responses := make([]paygrade.PayGradeResponse, 0, len(grades))
	for _, p := range grades {
		responses = append(responses, paygrade.ToResponse(p))
	}
	return responses, nil
}

func (s *PayGradeServiceImpl) Update(ctx context.Context, req paygrade.UpdatePayGradeRequest) (paygrade.PayGradeResponse, error) {
	if err := req.Validate(); err != nil {
		return paygrade.PayGradeResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return paygrade.PayGradeResponse{}, err
	}

	job, err := s.jobRepo.GetByID(ctx, current.JobStructureID)
	if err != nil {
		return paygrade.PayGradeResponse{}, err
	}

	if req.GradeName != nil {
		current.GradeName = *req.GradeName
	}
	if req.PayStructureType != nil {
		if !validator.IsInSlice(*req.PayStructureType, job.PayStructures) {
			return paygrade.PayGradeResponse{}, paygrade.ErrInvalidPayStructure
		}
		current.PayStructureType = *req.PayStructureType
	}
	if req.Emoluments != nil {
		if err := s.checkComponents(ctx, job.ClientID, *req.Emoluments); err != nil {
			return paygrade.PayGradeResponse{}, err
		}
		current.Emoluments = *req.Emoluments
	}
	if req.Currency != nil {
		current.Currency = *req.Currency
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return paygrade.PayGradeResponse{}, err
	}

	return paygrade.ToResponse(current), nil
}

// Delete refuses to remove a grade that still owns an offer letter template.
func (s *PayGradeServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if _, err := s.offerLetterRepo.GetByPayGradeID(ctx, id); err == nil {
		return paygrade.ErrPayGradeHasOfferLetter
	}

	return s.repo.Delete(ctx, id)
}

func (s *PayGradeServiceImpl) checkComponents(ctx context.Context, clientID string, emoluments map[string]decimal.Decimal) error {
	if len(emoluments) == 0 {
		return nil
	}
	components, err := s.componentRepo.ListForClient(ctx, clientID)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(components))
	for _, c := range components {
		known[c.ComponentCode] = true
	}
	for code := range emoluments {
		if !known[code] {
			return paygrade.ErrUnknownComponent
		}
	}
	return nil
}

// ========== BULK UPLOAD ==========

// BuildTemplate produces the downloadable workbook: fixed columns plus one
// column per emolument component available to the client.
func (s *PayGradeServiceImpl) BuildTemplate(ctx context.Context, clientID string, jobStructureID string) (*excelize.File, string, error) {
	job, err := s.jobRepo.GetByID(ctx, jobStructureID)
	if err != nil {
		return nil, "", err
	}
	if job.ClientID != clientID {
		return nil, "", jobstructure.ErrJobStructureNotFound
	}

	components, err := s.componentRepo.ListForClient(ctx, clientID)
	if err != nil {
		return nil, "", err
	}

	header := make([]interface{}, 0, len(templateColumns)+len(components))
	for _, col := range templateColumns {
		header = append(header, col)
	}
	for _, c := range components {
		header = append(header, c.ComponentCode)
	}

	sample := []interface{}{"Officer Grade I", "GRD_01", job.PayStructures[0], "NGN"}
	for range components {
		sample = append(sample, 0)
	}

	file, err := xlsx.BuildSheet("Pay Grades", [][]interface{}{header, sample})
	if err != nil {
		return nil, "", fmt.Errorf("build template workbook: %w", err)
	}

	filename := fmt.Sprintf("PayGrades_JOB%s_Template.xlsx", job.ID)
	return file, filename, nil
}

// ParseUpload turns raw worksheet rows into a preview or a field-keyed error
// map. Nothing is persisted here.
func (s *PayGradeServiceImpl) ParseUpload(ctx context.Context, clientID string, jobStructureID string, rows [][]string) (paygrade.BulkUploadResult, error) {
	job, err := s.jobRepo.GetByID(ctx, jobStructureID)
	if err != nil {
		return paygrade.BulkUploadResult{}, err
	}
	if job.ClientID != clientID {
		return paygrade.BulkUploadResult{}, jobstructure.ErrJobStructureNotFound
	}

	components, err := s.componentRepo.ListForClient(ctx, clientID)
	if err != nil {
		return paygrade.BulkUploadResult{}, err
	}
	componentsByCode := make(map[string]emolument.Component, len(components))
	for _, c := range components {
		componentsByCode[c.ComponentCode] = c
	}

	preview, parseErrors := parseRows(rows, componentsByCode, job.PayStructures)
	if len(parseErrors) > 0 {
		return paygrade.BulkUploadResult{Errors: parseErrors}, nil
	}
	return paygrade.BulkUploadResult{Preview: preview}, nil
}

// parseRows is the pure core of the upload parser. The first row is the
// header; fixed columns are matched case-insensitively, every remaining
// column must name a known component code.
func parseRows(rows [][]string, components map[string]emolument.Component, allowedPayStructures []string) ([]paygrade.PreviewRow, map[string][]string) {
	errs := make(map[string][]string)
	addErr := func(field, msg string) {
		errs[field] = append(errs[field], msg)
	}

	if len(rows) < 2 {
		addErr("file", "the worksheet has no data rows")
		return nil, errs
	}

	header := rows[0]
	fixedIdx := make(map[string]int, len(templateColumns))
	componentIdx := make(map[int]string)

	for i, cell := range header {
		normalized := xlsx.NormalizeHeader(cell)
		matched := false
		for _, col := range templateColumns {
			if normalized == xlsx.NormalizeHeader(col) {
				fixedIdx[col] = i
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(cell))
		if _, ok := components[code]; ok {
			componentIdx[i] = code
			continue
		}
		if code != "" {
			addErr("file", "unknown column: "+cell)
		}
	}
	for _, col := range templateColumns {
		if _, ok := fixedIdx[col]; !ok {
			addErr("file", "missing column: "+col)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	var preview []paygrade.PreviewRow
	seenCodes := make(map[string]bool)

	for rowNum, row := range rows[1:] {
		field := fmt.Sprintf("row_%d", rowNum+2)
		if isBlankRow(row) {
			continue
		}

		p := paygrade.PreviewRow{
			GradeName:        xlsx.CellValue(row, fixedIdx["Grade Name"]),
			GradeCode:        strings.ToUpper(xlsx.CellValue(row, fixedIdx["Grade Code"])),
			PayStructureType: strings.ToLower(xlsx.CellValue(row, fixedIdx["Pay Structure Type"])),
			Currency:         strings.ToUpper(xlsx.CellValue(row, fixedIdx["Currency"])),
		}

		if validator.IsEmpty(p.GradeName) {
			addErr(field, "grade name is required")
		}
		if !validator.IsValidCode(p.GradeCode) {
			addErr(field, "grade code must be 2-20 uppercase letters, digits or underscores")
		}
		if seenCodes[p.GradeCode] {
			addErr(field, "duplicate grade code in file: "+p.GradeCode)
		}
		seenCodes[p.GradeCode] = true
		if !validator.IsInSlice(p.PayStructureType, allowedPayStructures) {
			addErr(field, "pay structure type not allowed: "+p.PayStructureType)
		}
		if !validator.IsValidCurrency(p.Currency) {
			addErr(field, "currency must be a three-letter code")
		}

		for idx, code := range componentIdx {
			raw := xlsx.CellValue(row, idx)
			if raw == "" {
				continue
			}
			amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
			if err != nil {
				addErr(field, code+" is not a number: "+raw)
				continue
			}
			if amount.IsNegative() {
				addErr(field, code+" must be non-negative")
				continue
			}
			c := components[code]
			p.Emoluments = append(p.Emoluments, paygrade.PreviewEmolument{
				ComponentCode: code,
				ComponentName: c.ComponentName,
				Category:      string(c.Category),
				IsPensionable: c.IsPensionable,
				Amount:        amount,
			})
		}

		preview = append(preview, p)
	}

	if len(preview) == 0 && len(errs) == 0 {
		addErr("file", "the worksheet has no data rows")
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return preview, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ConfirmUpload persists a confirmed preview in one transaction. The preview
// is re-validated against the job structure and component registry first, so
// a hand-crafted confirm request cannot bypass the upload rules. Rows upsert
// on (job_structure_id, grade_code) so a re-upload replaces prior values.
func (s *PayGradeServiceImpl) ConfirmUpload(ctx context.Context, req paygrade.BulkConfirmRequest) (paygrade.BulkConfirmResponse, error) {
	if err := req.Validate(); err != nil {
		return paygrade.BulkConfirmResponse{}, err
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobStructureID)
	if err != nil {
		return paygrade.BulkConfirmResponse{}, err
	}
	if job.ClientID != req.ClientID {
		return paygrade.BulkConfirmResponse{}, jobstructure.ErrJobStructureNotFound
	}

	components, err := s.componentRepo.ListForClient(ctx, req.ClientID)
	if err != nil {
		return paygrade.BulkConfirmResponse{}, err
	}
	componentsByCode := make(map[string]emolument.Component, len(components))
	for _, c := range components {
		componentsByCode[c.ComponentCode] = c
	}
	if errs := validateConfirmRows(req.PreviewData, componentsByCode, job.PayStructures); len(errs) > 0 {
		return paygrade.BulkConfirmResponse{}, errs
	}

	saved := 0
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, row := range req.PreviewData {
			emoluments := make(map[string]decimal.Decimal, len(row.Emoluments))
			for _, e := range row.Emoluments {
				emoluments[e.ComponentCode] = e.Amount
			}

			_, err := s.repo.Upsert(txCtx, paygrade.PayGrade{
				JobStructureID:   req.JobStructureID,
				GradeName:        row.GradeName,
				GradeCode:        row.GradeCode,
				PayStructureType: row.PayStructureType,
				Emoluments:       emoluments,
				Currency:         row.Currency,
				IsActive:         true,
			})
			if err != nil {
				return err
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return paygrade.BulkConfirmResponse{}, err
	}

	return paygrade.BulkConfirmResponse{SavedCount: saved}, nil
}

// validateConfirmRows applies the upload row rules to a confirmed preview.
// The preview travelled through the client between parse and confirm, so
// nothing it claims is trusted.
func validateConfirmRows(rows []paygrade.PreviewRow, components map[string]emolument.Component, allowedPayStructures []string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	addErr := func(field, msg string) {
		errs = append(errs, validator.ValidationError{Field: field, Message: msg})
	}

	seenCodes := make(map[string]bool)
	for i, row := range rows {
		field := fmt.Sprintf("preview_data_%d", i)

		if validator.IsEmpty(row.GradeName) {
			addErr(field, "grade name is required")
		}
		if !validator.IsValidCode(row.GradeCode) {
			addErr(field, "grade code must be 2-20 uppercase letters, digits or underscores")
		}
		if seenCodes[row.GradeCode] {
			addErr(field, "duplicate grade code: "+row.GradeCode)
		}
		seenCodes[row.GradeCode] = true
		if !validator.IsInSlice(row.PayStructureType, allowedPayStructures) {
			addErr(field, "pay structure type not allowed: "+row.PayStructureType)
		}
		if !validator.IsValidCurrency(row.Currency) {
			addErr(field, "currency must be a three-letter code")
		}

		for _, e := range row.Emoluments {
			if _, ok := components[e.ComponentCode]; !ok {
				addErr(field, "unknown component: "+e.ComponentCode)
				continue
			}
			if e.Amount.IsNegative() {
				addErr(field, e.ComponentCode+" must be non-negative")
			}
		}
	}

	return errs
}
