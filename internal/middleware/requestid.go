package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/MemorialTransportation/web-backend/internal/utils"
)

// RequestID injects a request ID into the context and echoes it as a
// response header. An incoming X-Request-ID is kept.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(utils.WithRequestID(r.Context(), id)))
	})
}
