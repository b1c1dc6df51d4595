package handler

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/studentcollab/collabhub/frontend/internal/markdown"
	"github.com/studentcollab/collabhub/frontend/internal/session"
	"github.com/studentcollab/collabhub/frontend/internal/syncengine"
	"github.com/studentcollab/collabhub/shared/config"
)

type Handler struct {
	tmplMu        sync.RWMutex
	Templates     map[string]*template.Template
	Public        config.Public
	TextProcessor *markdown.TextProcessor
	Session       *session.Session
	Engine        *syncengine.Engine
}

func New(templates map[string]*template.Template, publicCfg config.Public, textProcessor *markdown.TextProcessor, sess *session.Session, engine *syncengine.Engine) *Handler {
	return &Handler{
		Templates:     templates,
		Public:        publicCfg,
		TextProcessor: textProcessor,
		Session:       sess,
		Engine:        engine,
	}
}

// SetTemplates swaps the template set used by later renders.
func (h *Handler) SetTemplates(templates map[string]*template.Template) {
	h.tmplMu.Lock()
	defer h.tmplMu.Unlock()
	h.Templates = templates
}

// NotFoundHandler sends every unknown path to the login page.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
