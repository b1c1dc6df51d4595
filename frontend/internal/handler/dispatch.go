package handler

import (
	"errors"
	"net/http"

	"github.com/studentcollab/collabhub/frontend/internal/syncengine"
	internal_errors "github.com/studentcollab/collabhub/shared/errors"
)

const msgActionFailed = "Something went wrong. Please try again."

// dispatch runs intent and redirects back. A failure becomes an error flash:
// validation problems keep their message, anything else shows failMsg.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, intent syncengine.Intent, back, failMsg string) {
	out := h.Engine.Dispatch(r.Context(), intent)
	if !out.OK() {
		h.redirectWithFlash(w, r, back, flashCookieError, failureMessage(out.Err, failMsg))
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func failureMessage(err error, failMsg string) string {
	if errors.Is(err, internal_errors.ErrValidation) {
		return internal_errors.Message(err)
	}
	if failMsg == "" {
		return msgActionFailed
	}
	return failMsg
}

// load makes sure feed has been fetched once, or fetches it again when the
// request asks for a reload. The returned message is empty on success.
func (h *Handler) load(r *http.Request, feed syncengine.Feed, failMsg string) string {
	var out syncengine.Outcome
	if r.URL.Query().Get("reload") != "" {
		out = h.Engine.Dispatch(r.Context(), syncengine.Refresh{Feed: feed})
	} else {
		out = h.Engine.EnsureLoaded(r.Context(), feed)
	}
	if out.OK() {
		return ""
	}
	return failMsg
}
