package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhr/payroll-backend-go/internal/domain/settings"
)

type fakeSettingsService struct {
	settings.SettingsService

	resetKey    string
	resetReason string
}

func (f *fakeSettingsService) Reset(ctx context.Context, key string, reason string) (settings.SettingResponse, error) {
	f.resetKey = key
	f.resetReason = reason
	return settings.SettingResponse{Key: key}, nil
}

func TestSettingsResetUsesFixedReason(t *testing.T) {
	svc := &fakeSettingsService{}
	handler := NewSettingsHandler(svc)

	r := chi.NewRouter()
	r.Post("/settings/{key}/reset", handler.Reset)

	// A caller-supplied reason in the body is ignored, not recorded.
	req := httptest.NewRequest(http.MethodPost, "/settings/tax_formula/reset", strings.NewReader(`{"reason":"because I said so"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tax_formula", svc.resetKey)
	assert.Equal(t, "Reset to system default", svc.resetReason)
}
