package middleware

import (
	"net/http"
	"net/url"

	"github.com/MemorialTransportation/web-backend/internal/utils"
)

// OriginGuard rejects state-changing requests sent from another site. A request
// passes when its Origin is on the allow-list or names the host it was sent to.
// Without an Origin header, a browser's Sec-Fetch-Site of cross-site is refused
// and non-browser clients pass.
func OriginGuard(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			if !sameSite(r, allowed) {
				utils.WriteError(w, http.StatusForbidden, utils.CodeForbidden, "Cross-site request refused")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sameSite(r *http.Request, allowed map[string]struct{}) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return r.Header.Get("Sec-Fetch-Site") != "cross-site"
	}
	if _, ok := allowed[origin]; ok {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Host == r.Host
}
