package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/meridianhr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth            AuthHandler
	Client          ClientHandler
	SalaryStructure SalaryStructureHandler
	Attendance      AttendanceHandler
	PayrollRun      PayrollRunHandler
	OfferLetter     OfferLetterHandler
	Settings        SettingsHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, corsOrigins []string, env string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", h.Auth.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/profile", h.Auth.Profile)

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", h.Client.List)
				r.Post("/", h.Client.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Client.Get)
					r.Put("/", h.Client.Update)

					r.Route("/employees", func(r chi.Router) {
						r.Get("/", h.Client.ListEmployees)
						r.Post("/", h.Client.CreateEmployee)
						r.Get("/{employeeID}", h.Client.GetEmployee)
						r.Put("/{employeeID}", h.Client.UpdateEmployee)
					})
				})
			})

			r.Route("/salary-structure", func(r chi.Router) {
				r.Route("/job-structures", func(r chi.Router) {
					r.Get("/", h.SalaryStructure.ListJobStructures)
					r.Post("/", h.SalaryStructure.CreateJobStructure)
					r.Get("/{id}", h.SalaryStructure.GetJobStructure)
					r.Put("/{id}", h.SalaryStructure.UpdateJobStructure)
					r.Delete("/{id}", h.SalaryStructure.DeleteJobStructure)
				})

				r.Route("/pay-grades", func(r chi.Router) {
					r.Get("/", h.SalaryStructure.ListPayGrades)
					r.Post("/", h.SalaryStructure.CreatePayGrade)
					r.Get("/bulk-template", h.SalaryStructure.DownloadBulkTemplate)
					r.Post("/bulk-upload", h.SalaryStructure.BulkUpload)
					r.Post("/bulk-confirm", h.SalaryStructure.BulkConfirm)
					r.Get("/{id}", h.SalaryStructure.GetPayGrade)
					r.Put("/{id}", h.SalaryStructure.UpdatePayGrade)
					r.Delete("/{id}", h.SalaryStructure.DeletePayGrade)
				})

				r.Route("/emolument-components", func(r chi.Router) {
					r.Get("/", h.SalaryStructure.ListComponents)
					r.Post("/", h.SalaryStructure.CreateComponent)
					r.Get("/{id}", h.SalaryStructure.GetComponent)
					r.Put("/{id}", h.SalaryStructure.UpdateComponent)
					r.Delete("/{id}", h.SalaryStructure.DeleteComponent)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/attendance-template/{clientID}", h.Attendance.DownloadTemplate)

				r.Route("/attendance-uploads", func(r chi.Router) {
					r.Get("/", h.Attendance.List)
					r.Post("/", h.Attendance.Upload)
					r.Post("/{id}/validate", h.Attendance.Validate)
					r.Get("/{id}/preview", h.Attendance.Preview)
					r.Delete("/{id}", h.Attendance.Delete)
				})

				r.Route("/runs", func(r chi.Router) {
					r.Get("/", h.PayrollRun.List)
					r.Post("/", h.PayrollRun.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.PayrollRun.Get)
						r.Post("/calculate", h.PayrollRun.Calculate)
						r.Get("/export", h.PayrollRun.Export)
						r.Delete("/", h.PayrollRun.Delete)

						// Admin only
						r.Group(func(r chi.Router) {
							r.Use(middleware.AdminOnly)
							r.Post("/approve", h.PayrollRun.Approve)
						})
					})
				})

				// Admin only
				r.Route("/settings", func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Settings.List)
					r.Post("/validate", h.Settings.ValidateFormula)
					r.Get("/history/{key}", h.Settings.History)
					r.Route("/{key}", func(r chi.Router) {
						r.Get("/", h.Settings.Get)
						r.Put("/", h.Settings.Update)
						r.Post("/reset", h.Settings.Reset)
					})
				})
			})

			r.Route("/offer-letters", func(r chi.Router) {
				r.Post("/", h.OfferLetter.Create)
				r.Put("/{id}", h.OfferLetter.Update)
				r.Delete("/{id}", h.OfferLetter.Delete)
				r.Route("/pay-grades/{payGradeID}", func(r chi.Router) {
					r.Get("/", h.OfferLetter.GetForGrade)
					r.Get("/salary-components", h.OfferLetter.SalaryComponents)
					r.Post("/render", h.OfferLetter.Render)
				})
			})

		})
	})
	return r
}
