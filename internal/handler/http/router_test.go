package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhr/payroll-backend-go/internal/domain/user"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/jwt"
)

// stubHandlers satisfies every handler interface with a 200 response and
// records which route names were reached, so routing and middleware can be
// tested without services or a database.
type stubHandlers struct {
	reached []string
}

func (s *stubHandlers) hit(name string, w http.ResponseWriter) {
	s.reached = append(s.reached, name)
	w.WriteHeader(http.StatusOK)
}

func (s *stubHandlers) Login(w http.ResponseWriter, r *http.Request)           { s.hit("auth.login", w) }
func (s *stubHandlers) LoginWithGoogle(w http.ResponseWriter, r *http.Request) { s.hit("auth.google", w) }
func (s *stubHandlers) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	s.hit("auth.callback", w)
}
func (s *stubHandlers) Logout(w http.ResponseWriter, r *http.Request)       { s.hit("auth.logout", w) }
func (s *stubHandlers) RefreshToken(w http.ResponseWriter, r *http.Request) { s.hit("auth.refresh", w) }
func (s *stubHandlers) Profile(w http.ResponseWriter, r *http.Request)      { s.hit("auth.profile", w) }

func (s *stubHandlers) Create(w http.ResponseWriter, r *http.Request) { s.hit("create", w) }
func (s *stubHandlers) Get(w http.ResponseWriter, r *http.Request)    { s.hit("get", w) }
func (s *stubHandlers) List(w http.ResponseWriter, r *http.Request)   { s.hit("list", w) }
func (s *stubHandlers) Update(w http.ResponseWriter, r *http.Request) { s.hit("update", w) }
func (s *stubHandlers) Delete(w http.ResponseWriter, r *http.Request) { s.hit("delete", w) }

func (s *stubHandlers) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	s.hit("employee.create", w)
}
func (s *stubHandlers) GetEmployee(w http.ResponseWriter, r *http.Request) { s.hit("employee.get", w) }
func (s *stubHandlers) ListEmployees(w http.ResponseWriter, r *http.Request) {
	s.hit("employee.list", w)
}
func (s *stubHandlers) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	s.hit("employee.update", w)
}

func (s *stubHandlers) CreateJobStructure(w http.ResponseWriter, r *http.Request) { s.hit("js.create", w) }
func (s *stubHandlers) GetJobStructure(w http.ResponseWriter, r *http.Request)    { s.hit("js.get", w) }
func (s *stubHandlers) ListJobStructures(w http.ResponseWriter, r *http.Request)  { s.hit("js.list", w) }
func (s *stubHandlers) UpdateJobStructure(w http.ResponseWriter, r *http.Request) { s.hit("js.update", w) }
func (s *stubHandlers) DeleteJobStructure(w http.ResponseWriter, r *http.Request) { s.hit("js.delete", w) }

func (s *stubHandlers) CreatePayGrade(w http.ResponseWriter, r *http.Request) { s.hit("pg.create", w) }
func (s *stubHandlers) GetPayGrade(w http.ResponseWriter, r *http.Request)    { s.hit("pg.get", w) }
func (s *stubHandlers) ListPayGrades(w http.ResponseWriter, r *http.Request)  { s.hit("pg.list", w) }
func (s *stubHandlers) UpdatePayGrade(w http.ResponseWriter, r *http.Request) { s.hit("pg.update", w) }
func (s *stubHandlers) DeletePayGrade(w http.ResponseWriter, r *http.Request) { s.hit("pg.delete", w) }

func (s *stubHandlers) DownloadBulkTemplate(w http.ResponseWriter, r *http.Request) {
	s.hit("pg.template", w)
}
func (s *stubHandlers) BulkUpload(w http.ResponseWriter, r *http.Request)  { s.hit("pg.upload", w) }
func (s *stubHandlers) BulkConfirm(w http.ResponseWriter, r *http.Request) { s.hit("pg.confirm", w) }

func (s *stubHandlers) CreateComponent(w http.ResponseWriter, r *http.Request) { s.hit("comp.create", w) }
func (s *stubHandlers) GetComponent(w http.ResponseWriter, r *http.Request)    { s.hit("comp.get", w) }
func (s *stubHandlers) ListComponents(w http.ResponseWriter, r *http.Request)  { s.hit("comp.list", w) }
func (s *stubHandlers) UpdateComponent(w http.ResponseWriter, r *http.Request) { s.hit("comp.update", w) }
func (s *stubHandlers) DeleteComponent(w http.ResponseWriter, r *http.Request) { s.hit("comp.delete", w) }

func (s *stubHandlers) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	s.hit("att.template", w)
}
func (s *stubHandlers) Upload(w http.ResponseWriter, r *http.Request)   { s.hit("att.upload", w) }
func (s *stubHandlers) Validate(w http.ResponseWriter, r *http.Request) { s.hit("att.validate", w) }
func (s *stubHandlers) Preview(w http.ResponseWriter, r *http.Request)  { s.hit("att.preview", w) }

func (s *stubHandlers) Calculate(w http.ResponseWriter, r *http.Request) { s.hit("run.calculate", w) }
func (s *stubHandlers) Approve(w http.ResponseWriter, r *http.Request)   { s.hit("run.approve", w) }
func (s *stubHandlers) Export(w http.ResponseWriter, r *http.Request)    { s.hit("run.export", w) }

func (s *stubHandlers) GetForGrade(w http.ResponseWriter, r *http.Request) { s.hit("ol.get", w) }
func (s *stubHandlers) SalaryComponents(w http.ResponseWriter, r *http.Request) {
	s.hit("ol.components", w)
}
func (s *stubHandlers) Render(w http.ResponseWriter, r *http.Request) { s.hit("ol.render", w) }

func (s *stubHandlers) Reset(w http.ResponseWriter, r *http.Request)   { s.hit("settings.reset", w) }
func (s *stubHandlers) History(w http.ResponseWriter, r *http.Request) { s.hit("settings.history", w) }
func (s *stubHandlers) ValidateFormula(w http.ResponseWriter, r *http.Request) {
	s.hit("settings.validate", w)
}

func newTestRouter(t *testing.T) (http.Handler, jwt.Service, *stubHandlers) {
	t.Helper()
	stub := &stubHandlers{}
	jwtSvc := jwt.NewJWTService("router-test-secret", "15m", "168h")
	router := NewRouter(jwtSvc, Handlers{
		Auth:            stub,
		Client:          stub,
		SalaryStructure: stub,
		Attendance:      stub,
		PayrollRun:      stub,
		OfferLetter:     stub,
		Settings:        stub,
	}, []string{"http://localhost:3000"}, "test")
	return router, jwtSvc, stub
}

func accessTokenFor(t *testing.T, jwtSvc jwt.Service, role user.Role) string {
	t.Helper()
	token, _, err := jwtSvc.GenerateAccessToken("user-1", "user@example.com", role)
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouterPayrollApproveIsAdminOnly(t *testing.T) {
	router, jwtSvc, stub := newTestRouter(t)

	operator := accessTokenFor(t, jwtSvc, user.RoleOperator)
	rec := doRequest(router, http.MethodPost, "/api/v1/payroll/runs/run-1/approve", operator)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, stub.reached, "run.approve")

	admin := accessTokenFor(t, jwtSvc, user.RoleAdmin)
	rec = doRequest(router, http.MethodPost, "/api/v1/payroll/runs/run-1/approve", admin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, stub.reached, "run.approve")
}

func TestRouterOperatorKeepsNonApproveRunRoutes(t *testing.T) {
	router, jwtSvc, stub := newTestRouter(t)
	operator := accessTokenFor(t, jwtSvc, user.RoleOperator)

	rec := doRequest(router, http.MethodPost, "/api/v1/payroll/runs/run-1/calculate", operator)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, stub.reached, "run.calculate")

	rec = doRequest(router, http.MethodGet, "/api/v1/payroll/runs/run-1/export", operator)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterSettingsRoutes(t *testing.T) {
	router, jwtSvc, stub := newTestRouter(t)
	admin := accessTokenFor(t, jwtSvc, user.RoleAdmin)
	operator := accessTokenFor(t, jwtSvc, user.RoleOperator)

	cases := []struct {
		name   string
		method string
		path   string
		want   string
	}{
		{"list", http.MethodGet, "/api/v1/payroll/settings", "list"},
		{"validate formula", http.MethodPost, "/api/v1/payroll/settings/validate", "settings.validate"},
		{"history", http.MethodGet, "/api/v1/payroll/settings/history/tax_formula", "settings.history"},
		{"get", http.MethodGet, "/api/v1/payroll/settings/tax_formula", "get"},
		{"update", http.MethodPut, "/api/v1/payroll/settings/tax_formula", "update"},
		{"reset", http.MethodPost, "/api/v1/payroll/settings/tax_formula/reset", "settings.reset"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := doRequest(router, c.method, c.path, operator)
			assert.Equal(t, http.StatusForbidden, rec.Code, "operator must not reach %s", c.path)

			stub.reached = nil
			rec = doRequest(router, c.method, c.path, admin)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, stub.reached, c.want)
		})
	}
}

func TestRouterRejectsMissingToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/clients", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
