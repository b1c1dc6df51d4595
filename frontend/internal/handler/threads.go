package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	frontend_domain "github.com/studentcollab/collabhub/frontend/internal/domain"
	"github.com/studentcollab/collabhub/frontend/internal/search"
	"github.com/studentcollab/collabhub/frontend/internal/syncengine"
)

const (
	threadsPath         = "/main/threads"
	msgThreadsLoadError = "Failed to load threads"
)

// ThreadsGetHandler fetches threads only on the first view or on ?reload=1,
// so replies added locally stay visible while navigating.
func (h *Handler) ThreadsGetHandler(w http.ResponseWriter, r *http.Request) {
	errMsg := h.load(r, syncengine.FeedThreads, msgThreadsLoadError)

	query := r.URL.Query().Get("q")
	user := h.Session.CurrentUser()
	threads := search.Threads(h.Engine.Repos().Threads.Snapshot(), query)

	data := frontend_domain.ThreadsPageData{Query: query, Threads: make([]*frontend_domain.Thread, len(threads))}
	for i, t := range threads {
		data.Threads[i] = h.renderThread(t, user)
	}
	h.renderTemplateWithError(w, r, "threads.html", data, errMsg)
}

func (h *Handler) ThreadCreatePostHandler(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, syncengine.CreateThread{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}, threadsPath, "Failed to create thread")
}

func (h *Handler) ThreadDeletePostHandler(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, syncengine.DeleteThread{ThreadID: chi.URLParam(r, "threadId")}, threadsPath, "Failed to delete thread")
}

func (h *Handler) ThreadLikePostHandler(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadId")
	h.dispatch(w, r, syncengine.ToggleLike{ThreadID: threadID}, threadAnchor(threadID), "Failed to update like")
}

func (h *Handler) CommentCreatePostHandler(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadId")
	h.dispatch(w, r, syncengine.AddComment{
		ThreadID: threadID,
		Content:  r.FormValue("content"),
	}, threadAnchor(threadID), "Failed to add comment")
}

func (h *Handler) CommentDeletePostHandler(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadId")
	h.dispatch(w, r, syncengine.DeleteComment{
		ThreadID:  threadID,
		CommentID: chi.URLParam(r, "commentId"),
	}, threadAnchor(threadID), "Failed to delete comment")
}

func (h *Handler) ReplyCreatePostHandler(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadId")
	h.dispatch(w, r, syncengine.AddReply{
		ThreadID:  threadID,
		CommentID: chi.URLParam(r, "commentId"),
		Content:   r.FormValue("content"),
	}, threadAnchor(threadID), "")
}

func threadAnchor(threadID string) string {
	return threadsPath + "#thread-" + threadID
}
