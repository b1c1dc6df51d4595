package middleware

import (
	"context"
	"net/http"

	"github.com/studentcollab/collabhub/shared/logger"
)

// AuthState is the guard's view of the session.
type AuthState int

const (
	Unauthenticated AuthState = iota
	Authenticated
)

func (s AuthState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// SessionChecker reports whether the durable login flag is set.
type SessionChecker interface {
	Verify(ctx context.Context) bool
}

// Guard gates protected pages on the session's login flag. The state is
// recomputed on every request.
type Guard struct {
	session   SessionChecker
	loginPath string
}

func NewGuard(session SessionChecker) *Guard {
	return &Guard{session: session, loginPath: "/login"}
}

func (g *Guard) State(ctx context.Context) AuthState {
	if g.session.Verify(ctx) {
		return Authenticated
	}
	return Unauthenticated
}

// Protect redirects unauthenticated requests to the login page without any
// message.
func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.State(r.Context()) != Authenticated {
			logger.Log.Debug("guard redirect", "path", r.URL.Path)
			http.Redirect(w, r, g.loginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectAuthenticated sends an already logged-in user from the auth pages
// to dest.
func (g *Guard) RedirectAuthenticated(dest string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && g.State(r.Context()) == Authenticated {
				http.Redirect(w, r, dest, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
