package middleware

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/studentcollab/collabhub/shared/csrf"
	"github.com/studentcollab/collabhub/shared/logger"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfCookieAge  = 24 * 60 * 60
)

type csrfContextKey struct{}

var csrfRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "collabhub_csrf_rejections_total",
		Help: "State-changing requests refused for a missing or mismatched CSRF token",
	},
	[]string{"reason"},
)

// CSRF is double-submit protection for the page forms: the token lives in a
// cookie and every state-changing request has to echo it back.
type CSRF struct {
	secure bool
}

func NewCSRF(secureCookies bool) *CSRF {
	return &CSRF{secure: secureCookies}
}

// Issue makes sure the browser holds a token and exposes it to templates.
func (c *CSRF) Issue(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(csrfCookieName); err == nil {
			token = cookie.Value
		}
		if token == "" {
			var err error
			if token, err = csrf.GenerateToken(); err != nil {
				logger.Log.Error("failed to generate CSRF token", "error", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   c.secure,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   csrfCookieAge,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfContextKey{}, token)))
	})
}

// Verify refuses unsafe requests whose form field (or X-CSRF-Token header)
// does not match the cookie.
func (c *CSRF) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(csrfCookieName)
		if err != nil {
			c.reject(w, r, "missing_cookie")
			return
		}

		submitted := r.Header.Get(csrfHeader)
		if submitted == "" {
			if err := r.ParseForm(); err != nil {
				logger.Log.Warn("failed to parse form", "path", r.URL.Path, "error", err)
				http.Error(w, "Invalid form data", http.StatusBadRequest)
				return
			}
			submitted = r.PostFormValue(csrfFormField)
		}

		if !csrf.ValidateToken(cookie.Value, submitted) {
			c.reject(w, r, "mismatch")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *CSRF) reject(w http.ResponseWriter, r *http.Request, reason string) {
	csrfRejections.WithLabelValues(reason).Inc()
	logger.Log.Warn("CSRF check failed", "path", r.URL.Path, "reason", reason)
	http.Error(w, "Form expired, reload the page and try again", http.StatusForbidden)
}

// CSRFToken returns the token Issue attached to the request.
func CSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfContextKey{}).(string)
	return token
}
