package handler

import (
	"net/http"
	"slices"
	"strings"

	frontend_domain "github.com/studentcollab/collabhub/frontend/internal/domain"
	"github.com/studentcollab/collabhub/shared/api"
	"github.com/studentcollab/collabhub/shared/domain"
	internal_errors "github.com/studentcollab/collabhub/shared/errors"
	"github.com/studentcollab/collabhub/shared/logger"
)

const (
	msgProfileUpdated  = "Profile updated"
	msgLoginToEdit     = "Please log in to edit your profile."
	msgProfileFailed   = "Failed to update profile"
	defaultProfileName = "John Doe"
	defaultUsername    = "johndoe"
	defaultBio         = "Passionate student, loves coding and collaborating!"
)

var placeholderProfile = domain.Profile{
	Name:     defaultProfileName,
	Username: defaultUsername,
	Bio:      defaultBio,
	Skills:   []string{},
}

func (h *Handler) MainGetHandler(w http.ResponseWriter, r *http.Request) {
	name := h.Session.CurrentUser()
	if p, ok := h.Session.Profile(); ok && p.Name != "" {
		name = p.Name
	}
	h.renderTemplate(w, r, "main.html", frontend_domain.MainPageData{Name: name})
}

// ProfileGetHandler shows the cached profile refreshed from the backend.
// Without any profile the page falls back to placeholder values.
func (h *Handler) ProfileGetHandler(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.Session.Profile()
	if ok {
		fresh, err := h.Session.FetchProfile(r.Context(), profile.Username)
		if err != nil {
			logger.Log.Warn("showing cached profile", "user", profile.Username, "error", err)
		} else {
			profile = fresh
		}
	}

	data := frontend_domain.ProfilePageData{Profile: profile}
	if !ok {
		data.Profile = placeholderProfile
		data.Placeholder = true
	}
	data.Bio = h.TextProcessor.Render(data.Profile.Bio)
	h.renderTemplate(w, r, "profile.html", data)
}

func (h *Handler) ProfileEditGetHandler(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.Session.Profile()
	if !ok {
		h.redirectWithFlash(w, r, "/main/profile", flashCookieError, msgLoginToEdit)
		return
	}
	h.renderTemplate(w, r, "profile_edit.html", h.profileEditData(profile))
}

func (h *Handler) ProfileEditPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/main/profile/edit", flashCookieError, "Invalid form data")
		return
	}
	req := api.UpdateProfileRequest{
		Name:   strings.TrimSpace(r.PostForm.Get("name")),
		Bio:    r.PostForm.Get("bio"),
		Skills: h.allowedSkills(r.PostForm["skills"]),
	}

	if _, err := h.Session.UpdateProfile(r.Context(), req); err != nil {
		if internal_errors.StatusCode(err) == http.StatusUnauthorized {
			h.redirectWithFlash(w, r, "/main/profile", flashCookieError, msgLoginToEdit)
			return
		}
		logger.Log.Error("updating profile", "error", err)
		h.redirectWithFlash(w, r, "/main/profile/edit", flashCookieError, msgProfileFailed)
		return
	}
	h.redirectWithFlash(w, r, "/main/profile", flashCookieSuccess, msgProfileUpdated)
}

func (h *Handler) profileEditData(profile domain.Profile) frontend_domain.ProfileEditPageData {
	data := frontend_domain.ProfileEditPageData{Profile: profile}
	for _, skill := range h.Public.SkillOptions {
		data.Skills = append(data.Skills, frontend_domain.SkillOption{Name: skill, Checked: profile.HasSkill(skill)})
	}
	return data
}

// allowedSkills keeps the submitted skills that are offered, without
// duplicates, in submission order.
func (h *Handler) allowedSkills(submitted []string) []string {
	skills := []string{}
	for _, s := range submitted {
		if slices.Contains(h.Public.SkillOptions, s) && !slices.Contains(skills, s) {
			skills = append(skills, s)
		}
	}
	return skills
}
