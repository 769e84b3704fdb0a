package offerletter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/meridianhr/payroll-backend-go/internal/domain/emolument"
	"github.com/meridianhr/payroll-backend-go/internal/domain/jobstructure"
	"github.com/meridianhr/payroll-backend-go/internal/domain/offerletter"
	"github.com/meridianhr/payroll-backend-go/internal/domain/paygrade"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/pdf"
)

type TemplateServiceImpl struct {
	db            *database.DB
	repo          offerletter.TemplateRepository
	gradeRepo     paygrade.PayGradeRepository
	jobRepo       jobstructure.JobStructureRepository
	componentRepo emolument.ComponentRepository
}

func NewTemplateService(
	db *database.DB,
	repo offerletter.TemplateRepository,
	gradeRepo paygrade.PayGradeRepository,
	jobRepo jobstructure.JobStructureRepository,
	componentRepo emolument.ComponentRepository,
) offerletter.TemplateService {
	return &TemplateServiceImpl{
		db:            db,
		repo:          repo,
		gradeRepo:     gradeRepo,
		jobRepo:       jobRepo,
		componentRepo: componentRepo,
	}
}

func (s *TemplateServiceImpl) Create(ctx context.Context, req offerletter.CreateTemplateRequest) (offerletter.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return offerletter.TemplateResponse{}, err
	}

	grade, err := s.gradeRepo.GetByID(ctx, req.PayGradeID)
	if err != nil {
		return offerletter.TemplateResponse{}, err
	}
	if grade.JobStructureID != req.JobStructureID {
		return offerletter.TemplateResponse{}, paygrade.ErrPayGradeNotFound
	}

	// One template per pay grade.
	_, err = s.repo.GetByPayGradeID(ctx, req.PayGradeID)
	if err == nil {
		return offerletter.TemplateResponse{}, offerletter.ErrTemplateExists
	}
	if !errors.Is(err, offerletter.ErrTemplateNotFound) {
		return offerletter.TemplateResponse{}, err
	}

	created, err := s.repo.Create(ctx, offerletter.Template{
		ClientID:       req.ClientID,
		JobStructureID: req.JobStructureID,
		PayGradeID:     req.PayGradeID,
		Header:         req.Header,
		Footer:         req.Footer,
		Content:        req.Content,
		Variables:      req.Variables,
	})
	if err != nil {
		return offerletter.TemplateResponse{}, err
	}

	return offerletter.ToResponse(created), nil
}

func (s *TemplateServiceImpl) GetForGrade(ctx context.Context, payGradeID string) (offerletter.TemplateResponse, error) {
	found, err := s.repo.GetByPayGradeID(ctx, payGradeID)
	if err != nil {
		return offerletter.TemplateResponse{}, err
	}
	return offerletter.ToResponse(found), nil
}

func (s *TemplateServiceImpl) Update(ctx context.Context, req offerletter.UpdateTemplateRequest) (offerletter.TemplateResponse, error) {
	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return offerletter.TemplateResponse{}, err
	}

	if req.Header != nil {
		current.Header = *req.Header
	}
	if req.Footer != nil {
		current.Footer = *req.Footer
	}
	if req.Content != nil {
		current.Content = *req.Content
	}
	if req.Variables != nil {
		current.Variables = *req.Variables
	}

	validateReq := offerletter.CreateTemplateRequest{
		ClientID:       current.ClientID,
		JobStructureID: current.JobStructureID,
		PayGradeID:     current.PayGradeID,
		Content:        current.Content,
		Variables:      current.Variables,
	}
	if err := validateReq.Validate(); err != nil {
		return offerletter.TemplateResponse{}, err
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return offerletter.TemplateResponse{}, err
	}

	return offerletter.ToResponse(current), nil
}

func (s *TemplateServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// GetSalaryComponents backs the variable-binding panel of the letter builder.
func (s *TemplateServiceImpl) GetSalaryComponents(ctx context.Context, payGradeID string) (offerletter.SalaryComponentsResponse, error) {
	grade, err := s.gradeRepo.GetByID(ctx, payGradeID)
	if err != nil {
		return offerletter.SalaryComponentsResponse{}, err
	}

	job, err := s.jobRepo.GetByID(ctx, grade.JobStructureID)
	if err != nil {
		return offerletter.SalaryComponentsResponse{}, err
	}

	components, err := s.componentRepo.ListForClient(ctx, job.ClientID)
	if err != nil {
		return offerletter.SalaryComponentsResponse{}, err
	}
	byCode := make(map[string]emolument.Component, len(components))
	for _, c := range components {
		byCode[c.ComponentCode] = c
	}

	resp := offerletter.SalaryComponentsResponse{
		PayGradeID: grade.ID,
		Currency:   grade.Currency,
		Total:      grade.TotalCompensation(),
	}

	codes := make([]string, 0, len(grade.Emoluments))
	for code := range grade.Emoluments {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		item := offerletter.SalaryComponentItem{
			ComponentCode: code,
			ComponentName: code,
			Amount:        grade.Emoluments[code],
		}
		if c, ok := byCode[code]; ok {
			item.ComponentName = c.ComponentName
			item.Category = string(c.Category)
		}
		resp.Components = append(resp.Components, item)
	}

	return resp, nil
}

// Render substitutes variables into the template and returns the letter PDF.
// Grade-derived variables (grade_name, currency, total_compensation) are
// always available without being declared.
func (s *TemplateServiceImpl) Render(ctx context.Context, payGradeID string, overrides map[string]string) ([]byte, string, error) {
	template, err := s.repo.GetByPayGradeID(ctx, payGradeID)
	if err != nil {
		return nil, "", err
	}

	grade, err := s.gradeRepo.GetByID(ctx, payGradeID)
	if err != nil {
		return nil, "", err
	}

	resolved := template.ResolveVariables(overrides)
	if _, ok := resolved["grade_name"]; !ok {
		resolved["grade_name"] = grade.GradeName
	}
	if _, ok := resolved["currency"]; !ok {
		resolved["currency"] = grade.Currency
	}
	if _, ok := resolved["total_compensation"]; !ok {
		resolved["total_compensation"] = grade.TotalCompensation().StringFixed(2)
	}

	doc := pdf.Document{
		Title:       "Offer of Employment",
		HeaderLines: mapLines(template.Header),
		Paragraphs:  renderParagraphs(template.Content, resolved),
		FooterLines: mapLines(template.Footer),
	}

	data, err := pdf.Render(doc)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("OfferLetter_%s.pdf", grade.GradeCode)
	return data, filename, nil
}

// renderParagraphs flattens the node list into paragraph text. Nodes are
// inline; explicit newlines inside text nodes split paragraphs.
func renderParagraphs(nodes []offerletter.Node, resolved map[string]string) []string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Type {
		case offerletter.NodeVariable:
			b.WriteString(resolved[n.Value])
		default:
			b.WriteString(n.Value)
		}
	}

	var paragraphs []string
	for _, para := range strings.Split(b.String(), "\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}

// mapLines renders a header/footer map in stable key order.
func mapLines(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		if m[k] != "" {
			lines = append(lines, m[k])
		}
	}
	return lines
}
