package handler

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	frontend_domain "github.com/studentcollab/collabhub/frontend/internal/domain"
	"github.com/studentcollab/collabhub/frontend/internal/search"
	"github.com/studentcollab/collabhub/frontend/internal/syncengine"
)

const (
	notesPath  = "/main/notes"
	jobsPath   = "/main/jobs"
	papersPath = "/previous-year-question-paper"

	msgPaperFailed = "Failed to add paper"
)

// === Notes ===

func (h *Handler) NotesGetHandler(w http.ResponseWriter, r *http.Request) {
	errMsg := h.load(r, syncengine.FeedNotes, "Failed to load notes")
	query := r.URL.Query().Get("q")
	data := frontend_domain.NotesPageData{
		Notes: search.Notes(h.Engine.Repos().Notes.Snapshot(), query),
		Tags:  h.Public.NoteTags,
		Query: query,
	}
	h.renderTemplateWithError(w, r, "notes.html", data, errMsg)
}

func (h *Handler) NoteCreatePostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, notesPath, flashCookieError, "Invalid form data")
		return
	}
	var tags []string
	for _, tag := range r.PostForm["tags"] {
		if slices.Contains(h.Public.NoteTags, tag) && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	h.dispatch(w, r, syncengine.CreateNote{
		Title:    r.PostForm.Get("title"),
		FileName: r.PostForm.Get("file_name"),
		Tags:     tags,
	}, notesPath, "Failed to upload note")
}

func (h *Handler) NoteDeletePostHandler(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, syncengine.DeleteNote{ID: chi.URLParam(r, "id")}, notesPath, "Failed to delete note")
}

// === Jobs ===

func (h *Handler) JobsGetHandler(w http.ResponseWriter, r *http.Request) {
	errMsg := h.load(r, syncengine.FeedJobs, "Failed to load jobs")
	query := r.URL.Query().Get("q")
	data := frontend_domain.JobsPageData{
		Jobs:  search.Jobs(h.Engine.Repos().Jobs.Snapshot(), query),
		Query: query,
	}
	h.renderTemplateWithError(w, r, "jobs.html", data, errMsg)
}

func (h *Handler) JobCreatePostHandler(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, syncengine.CreateJob{
		Title:    r.FormValue("title"),
		Company:  r.FormValue("company"),
		Link:     r.FormValue("link"),
		Referrer: r.FormValue("referrer"),
	}, jobsPath, "Failed to post job")
}

func (h *Handler) JobDeletePostHandler(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, syncengine.DeleteJob{ID: chi.URLParam(r, "id")}, jobsPath, "Failed to delete job")
}

// === Question papers ===

func (h *Handler) PapersGetHandler(w http.ResponseWriter, r *http.Request) {
	errMsg := h.load(r, syncengine.FeedPapers, "Failed to load question papers")
	query := r.URL.Query().Get("q")
	data := frontend_domain.PapersPageData{
		Groups: search.GroupPapers(search.Papers(h.Engine.Repos().Papers.Snapshot(), query)),
		Query:  query,
	}
	h.renderTemplateWithError(w, r, "papers.html", data, errMsg)
}

func (h *Handler) PaperCreatePostHandler(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, syncengine.CreatePaper{
		Subject: r.FormValue("subject"),
		Year:    r.FormValue("year"),
		Link:    r.FormValue("link"),
	}, papersPath, msgPaperFailed)
}

func (h *Handler) PaperDeletePostHandler(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, syncengine.DeletePaper{ID: chi.URLParam(r, "id")}, papersPath, "Failed to delete paper")
}
