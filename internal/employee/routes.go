package employee

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/MemorialTransportation/web-backend/internal/middleware"
)

func SetupRoutes(h *Handlers, sessions middleware.SessionReader, limiter *middleware.LoginLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.With(chimiddleware.AllowContentType("application/json"), limiter.Middleware).Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.With(middleware.SessionMiddleware(sessions)).Get("/session", h.Session)

	return r
}
