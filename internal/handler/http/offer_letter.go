package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridianhr/payroll-backend-go/internal/domain/offerletter"
	"github.com/meridianhr/payroll-backend-go/internal/handler/http/response"
)

type OfferLetterHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetForGrade(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	SalaryComponents(w http.ResponseWriter, r *http.Request)
	Render(w http.ResponseWriter, r *http.Request)
}

type OfferLetterHandlerImpl struct {
	templateService offerletter.TemplateService
}

func NewOfferLetterHandler(templateService offerletter.TemplateService) OfferLetterHandler {
	return &OfferLetterHandlerImpl{templateService: templateService}
}

func (h *OfferLetterHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req offerletter.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.templateService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Offer letter template created successfully", result)
}

func (h *OfferLetterHandlerImpl) GetForGrade(w http.ResponseWriter, r *http.Request) {
	payGradeID := chi.URLParam(r, "payGradeID")

	result, err := h.templateService.GetForGrade(r.Context(), payGradeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *OfferLetterHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req offerletter.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.templateService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Offer letter template updated successfully", result)
}

func (h *OfferLetterHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.templateService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Offer letter template deleted successfully", nil)
}

func (h *OfferLetterHandlerImpl) SalaryComponents(w http.ResponseWriter, r *http.Request) {
	payGradeID := chi.URLParam(r, "payGradeID")

	result, err := h.templateService.GetSalaryComponents(r.Context(), payGradeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *OfferLetterHandlerImpl) Render(w http.ResponseWriter, r *http.Request) {
	payGradeID := chi.URLParam(r, "payGradeID")

	var body struct {
		Overrides map[string]string `json:"overrides"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	data, filename, err := h.templateService.Render(r.Context(), payGradeID, body.Overrides)
	if err != nil {
		slog.Error("Offer letter render error", "pay_grade_id", payGradeID, "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}
