package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/meridianhr/payroll-backend-go/internal/config"
	appHTTP "github.com/meridianhr/payroll-backend-go/internal/handler/http"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/formula"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/jwt"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/oauth"
	"github.com/meridianhr/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/meridianhr/payroll-backend-go/internal/service/attendance"
	authService "github.com/meridianhr/payroll-backend-go/internal/service/auth"
	clientService "github.com/meridianhr/payroll-backend-go/internal/service/client"
	emolumentService "github.com/meridianhr/payroll-backend-go/internal/service/emolument"
	employeeService "github.com/meridianhr/payroll-backend-go/internal/service/employee"
	jobStructureService "github.com/meridianhr/payroll-backend-go/internal/service/jobstructure"
	offerLetterService "github.com/meridianhr/payroll-backend-go/internal/service/offerletter"
	payGradeService "github.com/meridianhr/payroll-backend-go/internal/service/paygrade"
	payrollRunService "github.com/meridianhr/payroll-backend-go/internal/service/payrollrun"
	settingsService "github.com/meridianhr/payroll-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	clientRepo := postgresql.NewClientRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	jobStructureRepo := postgresql.NewJobStructureRepository(db)
	payGradeRepo := postgresql.NewPayGradeRepository(db)
	componentRepo := postgresql.NewComponentRepository(db)
	offerLetterRepo := postgresql.NewOfferLetterRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRunRepo := postgresql.NewPayrollRunRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	formulaEngine, err := formula.NewEngine()
	if err != nil {
		log.Fatal("Failed to initialize formula engine:", err)
	}

	authSvc := authService.NewAuthService(db, userRepo, jwtSvc, jwtRepo)
	clientSvc := clientService.NewClientService(clientRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, clientRepo, payGradeRepo)
	jobStructureSvc := jobStructureService.NewJobStructureService(db, jobStructureRepo, clientRepo)
	payGradeSvc := payGradeService.NewPayGradeService(db, payGradeRepo, jobStructureRepo, componentRepo, offerLetterRepo)
	componentSvc := emolumentService.NewComponentService(db, componentRepo)
	offerLetterSvc := offerLetterService.NewTemplateService(db, offerLetterRepo, payGradeRepo, jobStructureRepo, componentRepo)
	attendanceSvc := attendanceService.NewUploadService(db, attendanceRepo, employeeRepo, payrollRunRepo, cfg.Storage.BasePath)
	payrollRunSvc := payrollRunService.NewRunService(db, payrollRunRepo, employeeRepo, payGradeRepo, componentRepo, attendanceRepo, settingsRepo, formulaEngine)
	settingsSvc := settingsService.NewSettingsService(db, settingsRepo, formulaEngine)

	handlers := appHTTP.Handlers{
		Auth:            appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL),
		Client:          appHTTP.NewClientHandler(clientSvc, employeeSvc),
		SalaryStructure: appHTTP.NewSalaryStructureHandler(jobStructureSvc, payGradeSvc, componentSvc),
		Attendance:      appHTTP.NewAttendanceHandler(attendanceSvc),
		PayrollRun:      appHTTP.NewPayrollRunHandler(payrollRunSvc),
		OfferLetter:     appHTTP.NewOfferLetterHandler(offerLetterSvc),
		Settings:        appHTTP.NewSettingsHandler(settingsSvc),
	}

	router := appHTTP.NewRouter(jwtSvc, handlers, []string{cfg.App.FrontendURL}, cfg.App.Env)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error:", err)
	}
}
