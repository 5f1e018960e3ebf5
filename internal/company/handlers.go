package company

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MemorialTransportation/web-backend/internal/utils"
)

func SetupRoutes(p *Profile) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=300")
		utils.WriteJSON(w, http.StatusOK, p)
	})
	return r
}
