package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gestionsoft/erp-backend-go/internal/handler/http/middleware"
	"github.com/gestionsoft/erp-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(JWTService jwt.Service, payrollHandler PayrollHandler, employeeHandler EmployeeHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "erp-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.RequireCompany)

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", payrollHandler.GetByPeriod)
				r.Post("/calculate", payrollHandler.Calculate)

				r.Route("/{id}", func(r chi.Router) {
					r.Post("/pay", payrollHandler.MarkPaid)
					r.Post("/reopen", payrollHandler.Reopen)
					r.Post("/annul", payrollHandler.Annul)
				})

				r.Route("/config", func(r chi.Router) {
					r.Get("/", payrollHandler.GetConfig)
					r.Get("/history", payrollHandler.GetConfigHistory)
					r.Put("/", payrollHandler.UpsertConfig)
				})

				r.Route("/variables", func(r chi.Router) {
					r.Get("/", payrollHandler.ListVariables)
					r.Put("/", payrollHandler.UpsertVariable)
					r.Delete("/{key}", payrollHandler.DeleteVariable)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEligible)
				r.Get("/{id}", employeeHandler.GetByID)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
