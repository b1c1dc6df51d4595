package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	frontend_domain "github.com/studentcollab/collabhub/frontend/internal/domain"
	"github.com/studentcollab/collabhub/frontend/internal/middleware"
	"github.com/studentcollab/collabhub/shared/domain"
	"github.com/studentcollab/collabhub/shared/logger"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common frontend_domain.CommonTemplateData
}

func (h *Handler) getTemplate(name string) (*template.Template, bool) {
	h.tmplMu.RLock()
	defer h.tmplMu.RUnlock()
	t, ok := h.Templates[name]
	return t, ok
}

func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) frontend_domain.CommonTemplateData {
	return frontend_domain.CommonTemplateData{
		Error:     h.popFlash(w, r, flashCookieError),
		Success:   h.popFlash(w, r, flashCookieSuccess),
		User:      h.Session.CurrentUser(),
		LoggedIn:  h.Session.IsLoggedIn(),
		CSRFToken: middleware.CSRFToken(r),
		Path:      r.URL.Path,
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, name string, data any, errMsg string) {
	tmpl, ok := h.getTemplate(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.initCommonTemplateData(w, r)
	if errMsg != "" {
		common.Error = errMsg
	}

	wrapped := TemplateData{
		Data:   data,
		Common: common,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// renderThread turns a thread into its view model with user content
// rendered to safe HTML.
func (h *Handler) renderThread(thread domain.Thread, username string) *frontend_domain.Thread {
	rendered := &frontend_domain.Thread{
		Thread:    thread,
		Content:   h.TextProcessor.Render(thread.Content),
		Comments:  make([]*frontend_domain.Comment, len(thread.Comments)),
		LikedByMe: thread.LikedByUser(username),
	}
	for i, c := range thread.Comments {
		comment := &frontend_domain.Comment{
			Comment: c,
			Content: h.TextProcessor.Render(c.Content),
			Replies: make([]*frontend_domain.Reply, len(c.Replies)),
		}
		for j, reply := range c.Replies {
			comment.Replies[j] = &frontend_domain.Reply{Reply: reply, Content: h.TextProcessor.Render(reply.Content)}
		}
		rendered.Comments[i] = comment
	}
	return rendered
}
