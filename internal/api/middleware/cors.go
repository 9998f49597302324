package middleware

import "net/http"

// CORSHeaders returns a fresh copy of the cross-origin policy attached to
// every response. Range must be an allowed request header or browsers
// cannot ask for partial content, and Content-Length/Content-Range must be
// exposed or a media element cannot read them cross-origin to seek.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":   "*",
		"Access-Control-Allow-Methods":  "GET, OPTIONS",
		"Access-Control-Allow-Headers":  "Content-Type, Range",
		"Access-Control-Expose-Headers": "Content-Length, Content-Range",
	}
}

// CORS attaches the cross-origin policy to every response, success and
// failure alike, and answers preflight requests before any other handling.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range CORSHeaders() {
			w.Header().Set(k, v)
		}

		// Preflight never reaches the resolver.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
