package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridianhr/payroll-backend-go/internal/domain/auth"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/jwt"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/oauth"
	"github.com/meridianhr/payroll-backend-go/internal/repository/postgresql"
	authService "github.com/meridianhr/payroll-backend-go/internal/service/auth"
)

var testHandlerDB *database.DB

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"
)

func handlerTestInit(t *testing.T) {
	t.Helper()
	if testHandlerDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testHandlerDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
}

func truncateHandlerTables(t *testing.T, ctx context.Context) {
	tables := []string{"refresh_tokens", "users"}

	for _, table := range tables {
		_, err := testHandlerDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createHandlerTestUser(t *testing.T, ctx context.Context, email string) string {
	var userID string
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	err := testHandlerDB.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, full_name, role, is_active)
		VALUES (uuidv7(), $1, $2, 'Test Operator', 'operator', true)
		RETURNING id
	`, email, string(hashedPassword)).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func createAuthHandler(t *testing.T) AuthHandler {
	userRepo := postgresql.NewUserRepository(testHandlerDB)
	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	jwtRepo := postgresql.NewJWTRepository(testHandlerDB)
	authSvc := authService.NewAuthService(testHandlerDB, userRepo, jwtSvc, jwtRepo)

	// OAuth endpoints are never reached in these tests
	googleSvc := oauth.NewGoogleService("test-client-id", "test-client-secret", "http://localhost:3000/callback", []string{"email"})

	return NewAuthHandler(jwtSvc, authSvc, googleSvc, "http://localhost:3000")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createAuthHandler(t)

	testEmail := fmt.Sprintf("login-%d@example.com", time.Now().UnixNano())
	createHandlerTestUser(t, ctx, testEmail)

	loginReq := auth.LoginRequest{
		Email:    testEmail,
		Password: "password123",
	}
	body, _ := json.Marshal(loginReq)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Success bool               `json:"success"`
		Data    auth.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.NotEmpty(t, envelope.Data.RefreshToken)

	// Refresh token must also land in an httponly cookie
	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "refresh_token" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "refresh_token cookie not set")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createAuthHandler(t)

	testEmail := fmt.Sprintf("wrongpass-%d@example.com", time.Now().UnixNano())
	createHandlerTestUser(t, ctx, testEmail)

	loginReq := auth.LoginRequest{
		Email:    testEmail,
		Password: "not-the-password",
	}
	body, _ := json.Marshal(loginReq)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	handlerTestInit(t)

	handler := createAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_RefreshToken_FromCookie(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createAuthHandler(t)

	testEmail := fmt.Sprintf("refresh-%d@example.com", time.Now().UnixNano())
	createHandlerTestUser(t, ctx, testEmail)

	body, _ := json.Marshal(auth.LoginRequest{Email: testEmail, Password: "password123"})
	loginRec := httptest.NewRecorder()
	handler.Login(loginRec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, loginRec.Code)

	var envelope struct {
		Data auth.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &envelope))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: envelope.Data.RefreshToken})
	rec := httptest.NewRecorder()
	handler.RefreshToken(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var refreshEnvelope struct {
		Data auth.AccessTokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshEnvelope))
	assert.NotEmpty(t, refreshEnvelope.Data.AccessToken)
}
