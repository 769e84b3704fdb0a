package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridianhr/payroll-backend-go/internal/domain/attendance"
	"github.com/meridianhr/payroll-backend-go/internal/handler/http/response"
)

// maxAttendanceUploadBytes caps attendance CSV uploads at 2 MiB.
const maxAttendanceUploadBytes = 2 << 20

type AttendanceHandler interface {
	DownloadTemplate(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	uploadService attendance.UploadService
}

func NewAttendanceHandler(uploadService attendance.UploadService) AttendanceHandler {
	return &AttendanceHandlerImpl{uploadService: uploadService}
}

func (h *AttendanceHandlerImpl) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	data, filename, err := h.uploadService.Template(r.Context(), clientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

func (h *AttendanceHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAttendanceUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file form field is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	req := attendance.UploadRequest{
		ClientID:     r.FormValue("client_id"),
		PayrollMonth: r.FormValue("payroll_month"),
		FileName:     header.Filename,
		IsForPayroll: r.FormValue("is_for_payroll") == "true",
	}

	result, err := h.uploadService.Upload(r.Context(), req, file)
	if err != nil {
		slog.Error("Attendance upload error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance file uploaded successfully", result)
}

func (h *AttendanceHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "id")

	report, err := h.uploadService.Validate(r.Context(), uploadID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance upload validated", report)
}

func (h *AttendanceHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "id")

	report, err := h.uploadService.Preview(r.Context(), uploadID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		response.BadRequest(w, "client_id query parameter is required", nil)
		return
	}
	forPayrollOnly := r.URL.Query().Get("for_payroll") == "true"

	results, err := h.uploadService.List(r.Context(), clientID, forPayrollOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *AttendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "id")

	if err := h.uploadService.Delete(r.Context(), uploadID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance upload deleted successfully", nil)
}
