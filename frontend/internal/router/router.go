package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/studentcollab/collabhub/frontend/internal/handler"
	"github.com/studentcollab/collabhub/frontend/internal/middleware"
	"github.com/studentcollab/collabhub/frontend/internal/setup"
	mw "github.com/studentcollab/collabhub/shared/middleware"
	"github.com/studentcollab/collabhub/shared/middleware/metrics"
)

func SetupRouter(deps *setup.Dependencies) http.Handler {
	h := deps.Handler
	guard := deps.Guard

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeadersWithCSP(deps.Public.SecureCookies, mw.FrontendCSP))

	r.Handle("/metrics", metrics.Handler())

	// Live search over in-memory collections
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.Public.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Use(guard.Protect)
		r.Get("/threads", h.SearchThreadsHandler)
		r.Get("/notes", h.SearchNotesHandler)
		r.Get("/jobs", h.SearchJobsHandler)
	})

	// Pages
	r.Group(func(r chi.Router) {
		csrf := middleware.NewCSRF(deps.Public.SecureCookies)
		r.Use(csrf.Issue)
		r.Use(csrf.Verify)

		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(guard.RedirectAuthenticated("/main"))
			r.Get("/login", h.LoginGetHandler)
			r.Post("/login", h.LoginPostHandler)
			r.Get("/signup", h.SignupGetHandler)
			r.Post("/signup", h.SignupPostHandler)
			r.Get("/forgot-password", h.ForgotPasswordGetHandler)
			r.Post("/forgot-password", h.ForgotPasswordPostHandler)
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(guard.Protect)

			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/main", http.StatusSeeOther)
			})
			r.Post("/logout", h.LogoutHandler)

			r.Get("/main", h.MainGetHandler)
			r.Get("/main/profile", h.ProfileGetHandler)
			r.Get("/main/profile/edit", h.ProfileEditGetHandler)
			r.Post("/main/profile/edit", h.ProfileEditPostHandler)

			r.Get("/main/threads", h.ThreadsGetHandler)
			r.Post("/main/threads", h.ThreadCreatePostHandler)
			r.Post("/main/threads/{threadId}/delete", h.ThreadDeletePostHandler)
			r.Post("/main/threads/{threadId}/like", h.ThreadLikePostHandler)
			r.Post("/main/threads/{threadId}/comments", h.CommentCreatePostHandler)
			r.Post("/main/threads/{threadId}/comments/{commentId}/delete", h.CommentDeletePostHandler)
			r.Post("/main/threads/{threadId}/comments/{commentId}/replies", h.ReplyCreatePostHandler)

			r.Get("/main/notes", h.NotesGetHandler)
			r.Post("/main/notes", h.NoteCreatePostHandler)
			r.Post("/main/notes/{id}/delete", h.NoteDeletePostHandler)

			r.Get("/main/jobs", h.JobsGetHandler)
			r.Post("/main/jobs", h.JobCreatePostHandler)
			r.Post("/main/jobs/{id}/delete", h.JobDeletePostHandler)

			r.Get("/previous-year-question-paper", h.PapersGetHandler)
			r.Post("/previous-year-question-paper", h.PaperCreatePostHandler)
			r.Post("/previous-year-question-paper/{id}/delete", h.PaperDeletePostHandler)
		})
	})

	r.NotFound(handler.NotFoundHandler)
	r.MethodNotAllowed(handler.NotFoundHandler)

	return r
}
