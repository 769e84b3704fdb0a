package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridianhr/payroll-backend-go/internal/domain/settings"
	"github.com/meridianhr/payroll-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	ValidateFormula(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &SettingsHandlerImpl{settingsService: settingsService}
}

func (h *SettingsHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.settingsService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *SettingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	result, err := h.settingsService.Get(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *SettingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Key = chi.URLParam(r, "key")

	result, err := h.settingsService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Setting update error", "key", req.Key, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Setting updated successfully", result)
}

// resetReason is the audit entry recorded for every reset; callers confirm
// the action but do not choose the wording.
const resetReason = "Reset to system default"

func (h *SettingsHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	result, err := h.settingsService.Reset(r.Context(), key, resetReason)
	if err != nil {
		slog.Error("Setting reset error", "key", key, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Setting reset to system default", result)
}

func (h *SettingsHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	results, err := h.settingsService.History(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *SettingsHandlerImpl) ValidateFormula(w http.ResponseWriter, r *http.Request) {
	var req settings.ValidateFormulaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result := h.settingsService.ValidateFormula(r.Context(), req)
	response.Success(w, result)
}
