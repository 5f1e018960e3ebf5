package middleware

import (
	"net/http"

	"github.com/MemorialTransportation/web-backend/internal/session"
	"github.com/MemorialTransportation/web-backend/internal/utils"
)

// SessionReader reads the employee session carried by a request.
type SessionReader interface {
	Read(r *http.Request) (session.Token, error)
}

// SessionStore is a SessionReader that can also expire the session cookie.
type SessionStore interface {
	SessionReader
	Clear(w http.ResponseWriter)
}

// SessionMiddleware guards API routes: requests without a valid session get a
// 401 JSON error, the rest carry the session token in their context.
func SessionMiddleware(reader SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := reader.Read(r)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, utils.CodeUnauthorized, "Employee session required")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithSession(r.Context(), tok)))
		})
	}
}

// ViewGuard guards HTML views. It runs on every load: when the session is
// missing or no longer valid, the stale cookie is expired and the browser is
// sent to loginPath.
func ViewGuard(store SessionStore, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := store.Read(r)
			if err != nil {
				store.Clear(w)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r.WithContext(utils.WithSession(r.Context(), tok)))
		})
	}
}

// RoleMiddleware allows only sessions whose role is one of roles. It must run
// after SessionMiddleware or ViewGuard.
func RoleMiddleware(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := utils.GetSessionFromContext(r.Context())
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, utils.CodeUnauthorized, "Employee session required")
				return
			}

			if _, ok := allowed[tok.Role]; !ok {
				utils.WriteError(w, http.StatusForbidden, utils.CodeForbidden, "Insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware echoes back origins on the allow-list and answers preflight
// requests.
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			}

			w.Header().Set("Access-Control-Expose-Headers", "X-Data-Status, X-Request-ID, Retry-After")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
