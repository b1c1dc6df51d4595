package middleware

import (
	"net/http"
)

// FrontendCSP allows only same-origin resources; pages carry no inline script.
const FrontendCSP = "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'; form-action 'self'"

const hsts = "max-age=31536000; includeSubDomains"

var fixedHeaders = [][2]string{
	{"X-Frame-Options", "DENY"},
	{"X-Content-Type-Options", "nosniff"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()"},
	// pages embed the signed-in user's data; nothing may outlive a logout
	{"Cache-Control", "no-store"},
}

// SecurityHeadersWithCSP sets the fixed security headers, csp when non-empty,
// and HSTS when the site is served over HTTPS.
func SecurityHeadersWithCSP(isHTTPS bool, csp string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range fixedHeaders {
				h.Set(kv[0], kv[1])
			}
			if csp != "" {
				h.Set("Content-Security-Policy", csp)
			}
			if isHTTPS {
				h.Set("Strict-Transport-Security", hsts)
			}
			next.ServeHTTP(w, r)
		})
	}
}
