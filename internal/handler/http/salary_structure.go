package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridianhr/payroll-backend-go/internal/domain/emolument"
	"github.com/meridianhr/payroll-backend-go/internal/domain/jobstructure"
	"github.com/meridianhr/payroll-backend-go/internal/domain/paygrade"
	"github.com/meridianhr/payroll-backend-go/internal/handler/http/response"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/xlsx"
)

type SalaryStructureHandler interface {
	// Job structure handlers
	CreateJobStructure(w http.ResponseWriter, r *http.Request)
	GetJobStructure(w http.ResponseWriter, r *http.Request)
	ListJobStructures(w http.ResponseWriter, r *http.Request)
	UpdateJobStructure(w http.ResponseWriter, r *http.Request)
	DeleteJobStructure(w http.ResponseWriter, r *http.Request)

	// Pay grade handlers
	CreatePayGrade(w http.ResponseWriter, r *http.Request)
	GetPayGrade(w http.ResponseWriter, r *http.Request)
	ListPayGrades(w http.ResponseWriter, r *http.Request)
	UpdatePayGrade(w http.ResponseWriter, r *http.Request)
	DeletePayGrade(w http.ResponseWriter, r *http.Request)

	// Bulk upload pipeline
	DownloadBulkTemplate(w http.ResponseWriter, r *http.Request)
	BulkUpload(w http.ResponseWriter, r *http.Request)
	BulkConfirm(w http.ResponseWriter, r *http.Request)

	// Emolument component handlers
	CreateComponent(w http.ResponseWriter, r *http.Request)
	GetComponent(w http.ResponseWriter, r *http.Request)
	ListComponents(w http.ResponseWriter, r *http.Request)
	UpdateComponent(w http.ResponseWriter, r *http.Request)
	DeleteComponent(w http.ResponseWriter, r *http.Request)
}

type SalaryStructureHandlerImpl struct {
	jobService       jobstructure.JobStructureService
	gradeService     paygrade.PayGradeService
	componentService emolument.ComponentService
}

func NewSalaryStructureHandler(
	jobService jobstructure.JobStructureService,
	gradeService paygrade.PayGradeService,
	componentService emolument.ComponentService,
) SalaryStructureHandler {
	return &SalaryStructureHandlerImpl{
		jobService:       jobService,
		gradeService:     gradeService,
		componentService: componentService,
	}
}

// ==================== JOB STRUCTURE HANDLERS ====================

func (h *SalaryStructureHandlerImpl) CreateJobStructure(w http.ResponseWriter, r *http.Request) {
	var req jobstructure.CreateJobStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.jobService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Job structure created successfully", result)
}

func (h *SalaryStructureHandlerImpl) GetJobStructure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.jobService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *SalaryStructureHandlerImpl) ListJobStructures(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		response.BadRequest(w, "client_id query parameter is required", nil)
		return
	}
	activeOnly := r.URL.Query().Get("active_only") == "true"

	results, err := h.jobService.ListByClient(r.Context(), clientID, activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *SalaryStructureHandlerImpl) UpdateJobStructure(w http.ResponseWriter, r *http.Request) {
	var req jobstructure.UpdateJobStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.jobService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job structure updated successfully", result)
}

func (h *SalaryStructureHandlerImpl) DeleteJobStructure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.jobService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job structure deleted successfully", nil)
}

// ==================== PAY GRADE HANDLERS ====================

func (h *SalaryStructureHandlerImpl) CreatePayGrade(w http.ResponseWriter, r *http.Request) {
	var req paygrade.CreatePayGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.gradeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay grade created successfully", result)
}

func (h *SalaryStructureHandlerImpl) GetPayGrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.gradeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *SalaryStructureHandlerImpl) ListPayGrades(w http.ResponseWriter, r *http.Request) {
	jobStructureID := r.URL.Query().Get("job_structure_id")
	if jobStructureID == "" {
		response.BadRequest(w, "job_structure_id query parameter is required", nil)
		return
	}

	results, err := h.gradeService.ListByJobStructure(r.Context(), jobStructureID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *SalaryStructureHandlerImpl) UpdatePayGrade(w http.ResponseWriter, r *http.Request) {
	var req paygrade.UpdatePayGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.gradeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay grade updated successfully", result)
}

func (h *SalaryStructureHandlerImpl) DeletePayGrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.gradeService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay grade deleted successfully", nil)
}

// ==================== BULK UPLOAD HANDLERS ====================

func (h *SalaryStructureHandlerImpl) DownloadBulkTemplate(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	jobStructureID := r.URL.Query().Get("job_structure_id")
	if clientID == "" || jobStructureID == "" {
		response.BadRequest(w, "client_id and job_structure_id query parameters are required", nil)
		return
	}

	file, filename, err := h.gradeService.BuildTemplate(r.Context(), clientID, jobStructureID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		slog.Error("Bulk template write error", "error", err)
		response.InternalServerError(w, "Failed to build template file")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(buf.Bytes())
}

func (h *SalaryStructureHandlerImpl) BulkUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(paygrade.MaxUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	clientID := r.FormValue("client_id")
	jobStructureID := r.FormValue("job_structure_id")
	if clientID == "" || jobStructureID == "" {
		response.BadRequest(w, "client_id and job_structure_id form fields are required", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file form field is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	if err := paygrade.ValidateUploadFile(header.Filename, header.Size); err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := xlsx.ReadRows(file)
	if err != nil {
		slog.Error("BulkUpload parse error", "error", err)
		response.BadRequest(w, "File could not be read as a spreadsheet", nil)
		return
	}

	result, err := h.gradeService.ParseUpload(r.Context(), clientID, jobStructureID, rows)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if len(result.Errors) > 0 {
		response.UploadErrors(w, result.Errors)
		return
	}

	response.Success(w, map[string]interface{}{
		"preview_data": result.Preview,
	})
}

func (h *SalaryStructureHandlerImpl) BulkConfirm(w http.ResponseWriter, r *http.Request) {
	var req paygrade.BulkConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.gradeService.ConfirmUpload(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay grades saved successfully", result)
}

// ==================== EMOLUMENT COMPONENT HANDLERS ====================

func (h *SalaryStructureHandlerImpl) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var req emolument.CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.componentService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Emolument component created successfully", result)
}

func (h *SalaryStructureHandlerImpl) GetComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.componentService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *SalaryStructureHandlerImpl) ListComponents(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		response.BadRequest(w, "client_id query parameter is required", nil)
		return
	}

	results, err := h.componentService.ListForClient(r.Context(), clientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *SalaryStructureHandlerImpl) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	var req emolument.UpdateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.componentService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Emolument component updated successfully", result)
}

func (h *SalaryStructureHandlerImpl) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.componentService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Emolument component deleted successfully", nil)
}
