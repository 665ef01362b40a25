package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/workforce-management/internal/attendance"
	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/internal/employee"
	"github.com/frahmantamala/workforce-management/internal/transport/middleware"
	"github.com/frahmantamala/workforce-management/internal/transport/swagger"
	"github.com/frahmantamala/workforce-management/internal/upload"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	rbac *auth.RBACAuthorization,
	attendanceHandler *attendance.Handler,
	employeeHandler *employee.Handler,
	uploadHandler *upload.Handler,
	uploadDir string,
	allowedOrigins string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Spec document and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Uploaded attendance photos are served as static files.
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Post("/auth/login", authHandler.Login)
		}

		if authHandler == nil {
			return
		}

		// Everything below requires a valid token.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/auth/me", authHandler.Me)

			if uploadHandler != nil {
				pr.Post("/uploads", uploadHandler.Upload)
			}

			if attendanceHandler != nil {
				pr.Route("/attendances", func(ar chi.Router) {
					// Self-bound routes; the employee scope comes from the
					// principal, never from the request.
					ar.Post("/check-in", attendanceHandler.CheckIn)
					ar.Post("/check-out", attendanceHandler.CheckOut)
					ar.Get("/current", attendanceHandler.GetCurrent)
					ar.Get("/current/today", attendanceHandler.GetCurrentToday)

					// Administrative routes, limited to privileged roles.
					ar.Group(func(mr chi.Router) {
						mr.Use(rbac.RequirePrivileged())
						mr.Get("/all", attendanceHandler.GetAll)
						mr.Get("/employee/{employeeID}", attendanceHandler.GetByEmployee)
						mr.Patch("/{id}", attendanceHandler.Update)
						mr.Delete("/{id}", attendanceHandler.Delete)
					})
				})
			}

			if employeeHandler != nil {
				pr.Route("/employees", func(er chi.Router) {
					er.Use(rbac.RequirePrivileged())
					er.Post("/", employeeHandler.Create)
					er.Get("/", employeeHandler.GetAll)
					er.Get("/{id}", employeeHandler.GetByID)
					er.Patch("/{id}", employeeHandler.Update)
					er.Delete("/{id}", employeeHandler.Delete)
				})
			}
		})
	})
}
