package fleet

import (
	"github.com/go-chi/chi/v5"

	"github.com/MemorialTransportation/web-backend/internal/employee"
	"github.com/MemorialTransportation/web-backend/internal/middleware"
)

// SetupRoutes serves the fleet API. Every route needs an employee session;
// the status summary is limited to office roles.
func SetupRoutes(h *Handlers, sessions middleware.SessionReader) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.SessionMiddleware(sessions))

	r.Get("/trucks", h.ListTrucks)
	r.With(middleware.RoleMiddleware(
		string(employee.RoleDispatcher),
		string(employee.RoleManager),
		string(employee.RoleAdmin),
	)).Get("/summary", h.Summary)

	return r
}
