package handler

import (
	"net/http"

	frontend_domain "github.com/studentcollab/collabhub/frontend/internal/domain"
	"github.com/studentcollab/collabhub/shared/api"
	internal_errors "github.com/studentcollab/collabhub/shared/errors"
	"github.com/studentcollab/collabhub/shared/logger"
	"github.com/studentcollab/collabhub/shared/validation"
)

const (
	msgSignupSuccess = "Signup successful! Please log in."
	msgResetLinkSent = "If this email exists, a reset link has been sent."
	msgLoggedOut     = "You have been logged out."
	msgLogoutFailed  = "Logout failed"
)

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	data := frontend_domain.LoginPageData{Username: h.popFlash(w, r, flashCookiePrefill)}
	h.renderTemplate(w, r, "login.html", data)
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if _, err := h.Session.Login(r.Context(), username, password); err != nil {
		logger.Log.Info("login failed", "user", username, "error", err)
		h.setFlash(w, flashCookiePrefill, username)
		h.redirectWithFlash(w, r, "/login", flashCookieError, internal_errors.Message(err))
		return
	}

	http.Redirect(w, r, "/main", http.StatusSeeOther)
}

func (h *Handler) SignupGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "signup.html", frontend_domain.SignupPageData{})
}

func (h *Handler) SignupPostHandler(w http.ResponseWriter, r *http.Request) {
	data := frontend_domain.SignupPageData{
		Name:     r.FormValue("name"),
		Username: r.FormValue("username"),
	}

	if err := h.Session.Signup(r.Context(), data.Name, data.Username, r.FormValue("password")); err != nil {
		logger.Log.Info("signup failed", "user", data.Username, "error", err)
		h.renderTemplateWithError(w, r, "signup.html", data, internal_errors.Message(err))
		return
	}

	// Signup does not log in: the user signs in with the new account.
	h.setFlash(w, flashCookiePrefill, data.Username)
	h.redirectWithFlash(w, r, "/login", flashCookieSuccess, msgSignupSuccess)
}

func (h *Handler) ForgotPasswordGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "forgot_password.html", frontend_domain.ForgotPasswordPageData{})
}

// ForgotPasswordPostHandler only checks the address format; no request is
// made and the answer never reveals whether the account exists.
func (h *Handler) ForgotPasswordPostHandler(w http.ResponseWriter, r *http.Request) {
	req := api.ForgotPasswordRequest{Email: r.FormValue("email")}
	if err := validation.Struct(req); err != nil {
		h.renderTemplateWithError(w, r, "forgot_password.html", frontend_domain.ForgotPasswordPageData{Email: req.Email}, internal_errors.Message(err))
		return
	}
	h.redirectWithFlash(w, r, "/forgot-password", flashCookieSuccess, msgResetLinkSent)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(r.Context()); err != nil {
		logger.Log.Error("logout", "error", err)
		h.redirectWithFlash(w, r, "/main", flashCookieError, msgLogoutFailed)
		return
	}
	h.redirectWithFlash(w, r, "/login", flashCookieSuccess, msgLoggedOut)
}
