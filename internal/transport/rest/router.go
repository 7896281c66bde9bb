package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/profile"
	"github.com/frahmantamala/hr-management/internal/timeoff"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/internal/transport/swagger"
	"github.com/frahmantamala/hr-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles the route handlers so RegisterAllRoutes keeps a sane
// signature.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Attendance *attendance.Handler
	TimeOff    *timeoff.Handler
	Profile    *profile.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORSMiddleware(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Public signup and email verification
		r.Post("/signup", h.User.Signup)
		r.Get("/verify-email", h.User.VerifyEmail)

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			// Current user account
			pr.Patch("/users/me", h.User.UpdateProfile)
			pr.Get("/profile", h.Profile.GetOwnProfile)
			pr.Patch("/profile/details", h.Profile.UpdateOwnDetails)
			pr.Patch("/profile/salary", h.Profile.UpdateOwnSalary)

			// Attendance routes
			pr.Route("/attendance", func(ar chi.Router) {
				ar.Post("/check-in", h.Attendance.CheckIn)
				ar.Post("/check-out", h.Attendance.CheckOut)
				ar.Get("/today", h.Attendance.TodayStatus)
				ar.Get("/", h.Attendance.GetRange)

				ar.Group(func(mr chi.Router) {
					mr.Use(auth.RequireHR(logger))
					mr.Get("/managed", h.Attendance.GetManagedRange)
				})
			})

			// Time-off routes
			pr.Route("/time-off", func(tr chi.Router) {
				tr.Post("/", h.TimeOff.CreateRequest)
				tr.Get("/", h.TimeOff.ListOwn)
				tr.Get("/allocation", h.TimeOff.GetAllocation)

				tr.Group(func(mr chi.Router) {
					mr.Use(auth.RequireHR(logger))
					mr.Get("/managed", h.TimeOff.ListManaged)
					mr.Patch("/{id}/approve", h.TimeOff.Approve)
					mr.Patch("/{id}/reject", h.TimeOff.Reject)
				})
			})

			// HR employee management routes
			pr.Group(func(mr chi.Router) {
				mr.Use(auth.RequireHR(logger))
				mr.Route("/employees", func(er chi.Router) {
					er.Post("/", h.User.AddEmployee)
					er.Get("/", h.User.ListEmployees)
					er.Get("/{id}", h.Profile.GetEmployeeProfile)
					er.Patch("/{id}/details", h.Profile.UpdateEmployeeDetails)
					er.Get("/{id}/salary", h.Profile.GetEmployeeSalary)
					er.Patch("/{id}/salary", h.Profile.UpdateEmployeeSalary)
				})
			})
		})
	})
}
